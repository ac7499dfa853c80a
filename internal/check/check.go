// Package check provides rule-table diagnostics (the check subcommand) and
// pre-pipeline validation of inputs and output paths (Preflight).
package check

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/backmassage/pbrexpress/internal/config"
	"github.com/backmassage/pbrexpress/internal/display"
	"github.com/backmassage/pbrexpress/internal/naming"
	"github.com/backmassage/pbrexpress/internal/rules"
)

// Sentinel errors returned by Preflight.
var (
	ErrNoInputs           = errors.New("no input files or folders given")
	ErrInputNotFound      = errors.New("input not found")
	ErrPresetFileNotFound = errors.New("preset file not found")
	ErrReportDirMissing   = errors.New("report directory does not exist")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck prints the effective rule table: its source presets, the
// aliases of every role longest-first, and any alias claimed by more than
// one role. It returns false when overlaps were found. Informational only.
func RunCheck(cfg *config.Config, table *rules.Table, log Logger) bool {
	log.Info("=== Rule Table Check ===")
	log.Info("Presets: %s", display.FormatList(table.Sources(), 0))
	log.Info("Aliases: %d across %s", table.Len(), display.Count(len(table.Entries()), "role"))
	log.Debug(cfg.Verbose, "Image extensions accepted: %d", naming.ImageExtensions())

	checkRoles(table, log)
	ok := checkOverlaps(table, log)
	if ok {
		log.Success("No alias is claimed by more than one role")
	}
	return ok
}

// checkRoles lists every role with its aliases, in priority order. Roles
// without any alias are flagged since no file can ever be matched to them.
func checkRoles(table *rules.Table, log Logger) {
	rows := make([][]string, 0, len(rules.Roles))
	for _, role := range rules.Roles {
		aliases := table.Aliases(role)
		if len(aliases) == 0 {
			log.Warn("%s has no aliases", role)
			continue
		}
		rows = append(rows, []string{string(role), strings.Join(aliases, ", ")})
	}
	for _, line := range display.Columns(rows) {
		log.Info("  %s", line)
	}
}

// checkOverlaps warns about aliases shared by several roles. Matching
// resolves them by table order, which is rarely what a preset author meant.
func checkOverlaps(table *rules.Table, log Logger) bool {
	overlaps := table.Overlaps()
	if len(overlaps) == 0 {
		return true
	}
	aliases := make([]string, 0, len(overlaps))
	for a := range overlaps {
		aliases = append(aliases, a)
	}
	sort.Strings(aliases)
	for _, a := range aliases {
		names := make([]string, len(overlaps[a]))
		for i, r := range overlaps[a] {
			names[i] = string(r)
		}
		log.Warn("Alias %q is claimed by %s; %s wins", a, strings.Join(names, " and "), names[0])
	}
	return false
}

// Preflight is the pre-pipeline validation: it verifies that inputs were
// given and exist, that a configured preset file exists, and that the
// report directory exists. Returns the first failure.
func Preflight(cfg *config.Config, fsys afero.Fs) error {
	if len(cfg.Inputs) == 0 {
		return ErrNoInputs
	}
	for _, in := range cfg.Inputs {
		if ok, _ := afero.Exists(fsys, in); !ok {
			return fmt.Errorf("%w: %s", ErrInputNotFound, in)
		}
	}
	if cfg.PresetFile != "" {
		if ok, _ := afero.Exists(fsys, cfg.PresetFile); !ok {
			return fmt.Errorf("%w: %s", ErrPresetFileNotFound, cfg.PresetFile)
		}
	}
	if cfg.Report != "" {
		dir := filepath.Dir(cfg.Report)
		if ok, _ := afero.DirExists(fsys, dir); !ok {
			return fmt.Errorf("%w: %s", ErrReportDirMissing, dir)
		}
	}
	return nil
}
