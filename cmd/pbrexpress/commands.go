package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backmassage/pbrexpress/internal/check"
	"github.com/backmassage/pbrexpress/internal/config"
	"github.com/backmassage/pbrexpress/internal/display"
	"github.com/backmassage/pbrexpress/internal/logging"
	"github.com/backmassage/pbrexpress/internal/pipeline"
	"github.com/backmassage/pbrexpress/internal/rules"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in naming presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := [][]string{{"NAME", "ROWS", "COLUMNS"}}
			for _, name := range rules.Builtin() {
				p, err := rules.Lookup(name)
				if err != nil {
					return err
				}
				rows = append(rows, []string{name, fmt.Sprint(len(p.Rows)), fmt.Sprint(p.Columns())})
			}
			for _, line := range display.Columns(rows) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

// newCheckCmd prints the effective rule table for the given rule flags and
// exits non-zero when an alias is claimed by more than one role.
func newCheckCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show the effective rule table and alias overlaps",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd, &cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.NewLogger(&cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			table, err := pipeline.LoadTable(&cfg)
			if err != nil {
				return err
			}
			if !check.RunCheck(&cfg, table, log) {
				return errReported
			}
			return nil
		},
	}
	config.BindRuleFlags(cmd.Flags(), &cfg)
	return cmd
}
