package config

// This file binds CLI flags onto a Config and layers the config file under
// them. Flags are grouped into input, naming rules, grouping, and display.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flag names shared with the file overlay.
const (
	flagMode        = "mode"
	flagPreset      = "preset"
	flagCustom      = "custom"
	flagPresetFile  = "preset-file"
	flagOnDuplicate = "on-duplicate"
	flagSkipUnknown = "skip-unknown"
	flagRenderer    = "renderer"
	flagColor       = "color"
	flagNoColor     = "no-color"
	flagVerbose     = "verbose"
	flagLog         = "log"
	flagReport      = "report"
	flagConfig      = "config"
)

// BindFlags registers every configurable flag on fs, writing into cfg.
// Defaults shown in help are the current cfg values.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	defineInputFlags(fs, cfg)
	defineRuleFlags(fs, cfg)
	defineGroupingFlags(fs, cfg)
	defineDisplayFlags(fs, cfg)
}

// BindRuleFlags registers only the naming-rule flags plus --config; used by
// subcommands that build the rule table but classify nothing.
func BindRuleFlags(fs *pflag.FlagSet, cfg *Config) {
	defineRuleFlags(fs, cfg)
	fs.StringVar(&cfg.ConfigFile, flagConfig, "", "Config file (.yaml/.yml/.toml)")
}

// defineInputFlags registers -m/--mode and --config.
func defineInputFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.VarP(&inputModeValue{&cfg.Mode}, flagMode, "m", "Input mode: auto | file | folder")
	fs.StringVar(&cfg.ConfigFile, flagConfig, "", "Config file (.yaml/.yml/.toml; default ./"+DefaultConfigFile+")")
}

// defineRuleFlags registers -p/--preset, --custom, --preset-file.
func defineRuleFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringSliceVarP(&cfg.Presets, flagPreset, "p", cfg.Presets, "Naming preset(s), merged in order (default: \"default\" unless --custom or --preset-file is given)")
	fs.StringSliceVar(&cfg.Custom, flagCustom, cfg.Custom, "Custom aliases, one per role column (7 or 10, comma separated, empty allowed)")
	fs.StringVar(&cfg.PresetFile, flagPresetFile, cfg.PresetFile, "YAML/TOML file with additional presets")
}

// defineGroupingFlags registers --on-duplicate, --skip-unknown, -r/--renderer.
func defineGroupingFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.Var(&duplicateModeValue{&cfg.OnDuplicate}, flagOnDuplicate, "Duplicate role in one material: fail | drop | ask")
	fs.BoolVar(&cfg.SkipUnknown, flagSkipUnknown, cfg.SkipUnknown, "Leave redirected textures without a role out of materials")
	fs.VarP(&rendererValue{&cfg.Renderer}, flagRenderer, "r", "Shader wiring to describe: karma | mantra")
}

// defineDisplayFlags registers --color, --no-color, -v/--verbose, -l/--log, -o/--report.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.Var(&colorModeValue{&cfg.ColorMode}, flagColor, "Colored logs: auto | always | never")
	fs.Var(&noColorValue{&cfg.ColorMode}, flagNoColor, "Same as --color=never")
	fs.Lookup(flagNoColor).NoOptDefVal = "true"
	fs.BoolVarP(&cfg.Verbose, flagVerbose, "v", cfg.Verbose, "Verbose output")
	fs.StringVarP(&cfg.LogFile, flagLog, "l", cfg.LogFile, "Append logs to file")
	fs.StringVarP(&cfg.Report, flagReport, "o", cfg.Report, "Write a run report (.yaml/.yml/.toml/.json)")
}

// ApplyConfigFile loads path beneath the flags already parsed into cfg:
// values from flags the user set win, everything else comes from the file
// (or stays at its default). Inputs are preserved.
func ApplyConfigFile(fs *pflag.FlagSet, cfg *Config, path string) error {
	merged := DefaultConfig()
	if err := LoadFile(path, &merged); err != nil {
		return err
	}
	changed := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}
	if changed(flagMode) {
		merged.Mode = cfg.Mode
	}
	if changed(flagPreset) {
		merged.Presets = cfg.Presets
	}
	if changed(flagCustom) {
		merged.Custom = cfg.Custom
	}
	if changed(flagPresetFile) {
		merged.PresetFile = cfg.PresetFile
	}
	if changed(flagOnDuplicate) {
		merged.OnDuplicate = cfg.OnDuplicate
	}
	if changed(flagSkipUnknown) {
		merged.SkipUnknown = cfg.SkipUnknown
	}
	if changed(flagRenderer) {
		merged.Renderer = cfg.Renderer
	}
	if changed(flagColor) || changed(flagNoColor) {
		merged.ColorMode = cfg.ColorMode
	}
	if changed(flagVerbose) {
		merged.Verbose = cfg.Verbose
	}
	if changed(flagLog) {
		merged.LogFile = cfg.LogFile
	}
	if changed(flagReport) {
		merged.Report = cfg.Report
	}
	merged.Inputs = cfg.Inputs
	*cfg = merged
	return nil
}

// pflag.Value adapters so enum types can be used with fs.Var.

type inputModeValue struct{ p *InputMode }

func (v *inputModeValue) String() string { return string(*v.p) }
func (v *inputModeValue) Type() string   { return "mode" }
func (v *inputModeValue) Set(s string) error {
	switch m := InputMode(strings.ToLower(s)); m {
	case ModeAuto, ModeFile, ModeFolder:
		*v.p = m
	default:
		return fmt.Errorf("invalid mode %q (use 'auto', 'file' or 'folder')", s)
	}
	return nil
}

type duplicateModeValue struct{ p *DuplicateMode }

func (v *duplicateModeValue) String() string { return string(*v.p) }
func (v *duplicateModeValue) Type() string   { return "policy" }
func (v *duplicateModeValue) Set(s string) error {
	switch m := DuplicateMode(strings.ToLower(s)); m {
	case DuplicateFail, DuplicateDrop, DuplicateAsk:
		*v.p = m
	default:
		return fmt.Errorf("invalid duplicate policy %q (use 'fail', 'drop' or 'ask')", s)
	}
	return nil
}

type rendererValue struct{ p *Renderer }

func (v *rendererValue) String() string { return string(*v.p) }
func (v *rendererValue) Type() string   { return "renderer" }
func (v *rendererValue) Set(s string) error {
	switch r := Renderer(strings.ToLower(s)); r {
	case RendererKarma, RendererMantra:
		*v.p = r
	default:
		return fmt.Errorf("invalid renderer %q (use 'karma' or 'mantra')", s)
	}
	return nil
}

type colorModeValue struct{ p *ColorMode }

func (v *colorModeValue) String() string { return string(*v.p) }
func (v *colorModeValue) Type() string   { return "when" }
func (v *colorModeValue) Set(s string) error {
	switch c := ColorMode(strings.ToLower(s)); c {
	case ColorAuto, ColorAlways, ColorNever:
		*v.p = c
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}

// noColorValue is a boolean flag that sets the color mode to never.
type noColorValue struct{ p *ColorMode }

func (v *noColorValue) String() string   { return "false" }
func (v *noColorValue) Type() string     { return "bool" }
func (v *noColorValue) IsBoolFlag() bool { return true }
func (v *noColorValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "true", "1":
		*v.p = ColorNever
	case "false", "0":
	default:
		return fmt.Errorf("invalid value %q for --no-color", s)
	}
	return nil
}
