// Command pbrexpress sorts PBR texture files into materials.
//
// It classifies every image by its role alias (diffuse, roughness, normal
// and so on), groups the images of one material set, and prints or writes
// the material plans for the chosen renderer.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/backmassage/pbrexpress/internal/check"
	"github.com/backmassage/pbrexpress/internal/config"
	"github.com/backmassage/pbrexpress/internal/display"
	"github.com/backmassage/pbrexpress/internal/logging"
	"github.com/backmassage/pbrexpress/internal/pipeline"
	"github.com/backmassage/pbrexpress/internal/planner"
	"github.com/backmassage/pbrexpress/internal/report"
	"github.com/backmassage/pbrexpress/internal/term"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "pbrexpress: %v\n", err)
		}
		return 1
	}
	return 0
}

// errReported marks a failure that was already logged; run only sets the
// exit code for it.
var errReported = errors.New("run failed")

func newRootCmd() *cobra.Command {
	cmd := newClassifyCmd("pbrexpress [flags] <file|folder>...")
	cmd.Short = "Sort PBR textures into materials"
	cmd.Long = `pbrexpress classifies texture images by the role aliases in their names,
groups the images of each material set and describes the shader network
for Karma or Mantra. Folders are processed one batch each; a file selection
is processed as a single batch.`
	cmd.Version = fmt.Sprintf("%s (%s)", version, commit)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	classifyCmd := newClassifyCmd("classify [flags] <file|folder>...")
	classifyCmd.Short = "Classify textures and assemble materials (same as the root command)"
	cmd.AddCommand(classifyCmd, newPresetsCmd(), newCheckCmd())
	return cmd
}

// newClassifyCmd builds a command that runs the classification pipeline
// with its own config and flag set.
func newClassifyCmd(use string) *cobra.Command {
	cfg := config.DefaultConfig()
	cmd := &cobra.Command{
		Use:  use,
		Args: cobra.ArbitraryArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Inputs = args
			return loadConfig(cmd, &cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return classify(cmd.Context(), &cfg)
		},
	}
	config.BindFlags(cmd.Flags(), &cfg)
	return cmd
}

// loadConfig layers the config file (explicit or ./.pbrexpress.yaml) under
// the parsed flags and validates the result.
func loadConfig(cmd *cobra.Command, cfg *config.Config) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	if path := config.FindConfigFile(cfg.ConfigFile, cwd); path != "" {
		if err := config.ApplyConfigFile(cmd.Flags(), cfg, path); err != nil {
			return err
		}
	}
	return cfg.Validate()
}

func classify(parent context.Context, cfg *config.Config) error {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	// Logger available: all output goes through log from here on.
	display.PrintBanner(os.Stdout)

	fsys := afero.NewOsFs()
	if err := check.Preflight(cfg, fsys); err != nil {
		log.Error("%v", err)
		return errReported
	}
	table, err := pipeline.LoadTable(cfg)
	if err != nil {
		log.Error("%v", err)
		return errReported
	}
	inputs, err := pipeline.ResolveInputs(fsys, cfg.Mode, cfg.Inputs)
	if err != nil {
		log.Error("%v", err)
		return errReported
	}

	log.Info("=== PBR Express v%s (%s) ===", version, commit)
	log.Info("Presets: %s", display.FormatList(table.Sources(), 0))
	log.Info("Renderer: %s, on duplicate: %s", cfg.Renderer, cfg.OnDuplicate)
	log.Info("")

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := &pipeline.Runner{Config: cfg, Table: table, Log: log}
	if cfg.OnDuplicate == config.DuplicateAsk {
		if term.IsTerminal(os.Stdin) {
			runner.Confirm = promptConfirm(os.Stdin, os.Stdout)
		} else {
			log.Warn("stdin is not a terminal; duplicate roles will abort the run")
		}
	}

	started := time.Now()
	res, err := runner.Run(ctx, inputs)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Warn("Stopped before all batches were classified")
		case errors.Is(err, pipeline.ErrEmptyInput):
			log.Error("No files found in %s", display.FormatList(cfg.Inputs, 3))
		default:
			log.Error("%v", err)
		}
		return errReported
	}

	plans := planner.BuildPlans(cfg, res.Groups())
	for _, p := range plans {
		logPlan(log, cfg.Verbose, p)
	}

	if cfg.Report != "" {
		if err := report.Write(cfg.Report, report.New(cfg, res, started, time.Now())); err != nil {
			log.Error("%v", err)
			return errReported
		}
		log.Success("Report written to %s", cfg.Report)
	}
	return nil
}

func logPlan(log *logging.Logger, verbose bool, p *planner.MaterialPlan) {
	log.Debug(verbose, "Plan %s: %s, %s, %s", p.Name, p.Shader,
		display.Count(len(p.Textures), "texture"), display.Count(len(p.Helpers), "helper"))
	for _, n := range p.Textures {
		target := "(unconnected)"
		if n.Connected() {
			target = n.Target
		}
		log.Debug(verbose, "  %s -> %s", n.Name, target)
	}
}

// promptConfirm asks once per duplicate error whether to continue without
// the conflicting textures. Anything but y/yes declines.
func promptConfirm(in io.Reader, out io.Writer) func(*pipeline.DuplicateRoleError) bool {
	reader := bufio.NewReader(in)
	return func(e *pipeline.DuplicateRoleError) bool {
		fmt.Fprintf(out, "Conflicting materials: %s\n", strings.Join(e.Keys(), ", "))
		fmt.Fprintln(out, e.Summary())
		fmt.Fprint(out, "Continue without the conflicting textures? [y/N] ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}
