// Package config holds runtime configuration: defaults, config-file loading,
// CLI flag binding, and validation. Precedence is defaults < config file <
// flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/pbrexpress/internal/rules"
)

// DefaultConfigFile is picked up from the working directory when --config
// is not given.
const DefaultConfigFile = ".pbrexpress.yaml"

// --- Enum types for validated string fields ---

// InputMode selects how positional arguments become batches.
type InputMode string

const (
	ModeAuto   InputMode = "auto"   // Folder when every argument is a directory, else File (default).
	ModeFile   InputMode = "file"   // All arguments are files forming one batch.
	ModeFolder InputMode = "folder" // Each argument is a directory forming its own batch.
)

// DuplicateMode is the policy for two textures claiming one role in a set.
type DuplicateMode string

const (
	DuplicateFail DuplicateMode = "fail" // Abort the run (default).
	DuplicateDrop DuplicateMode = "drop" // Keep the first-seen texture.
	DuplicateAsk  DuplicateMode = "ask"  // Prompt on a terminal; fail otherwise.
)

// Renderer selects the shader wiring described for each material.
type Renderer string

const (
	RendererKarma  Renderer = "karma"  // MaterialX standard surface (default).
	RendererMantra Renderer = "mantra" // Principled shader.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by a config file and finally by flags before being passed (by
// pointer) to packages that need it.
type Config struct {
	// Inputs (set from positional args).
	Inputs []string  `yaml:"-" toml:"-"`
	Mode   InputMode `yaml:"mode" toml:"mode"`

	// Naming rules.
	Presets    []string `yaml:"presets" toml:"presets"`         // Empty: see PresetNames.
	Custom     []string `yaml:"custom" toml:"custom"`           // 7 or 10 aliases, one per role column.
	PresetFile string   `yaml:"preset_file" toml:"preset_file"` // Extra presets (YAML/TOML).

	// Grouping behavior.
	OnDuplicate DuplicateMode `yaml:"on_duplicate" toml:"on_duplicate"` // Default: "fail".
	SkipUnknown bool          `yaml:"skip_unknown" toml:"skip_unknown"` // Drop redirected role-less members.
	Renderer    Renderer      `yaml:"renderer" toml:"renderer"`         // Default: "karma".

	// Display and output.
	ColorMode ColorMode `yaml:"color" toml:"color"` // Default: "auto".
	Verbose   bool      `yaml:"verbose" toml:"verbose"`
	LogFile   string    `yaml:"log_file" toml:"log_file"` // Optional log file path.
	Report    string    `yaml:"report" toml:"report"`     // Optional report path (.yaml/.toml/.json).

	// ConfigFile is the file the settings were loaded from, if any.
	ConfigFile string `yaml:"-" toml:"-"`
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// the config file and flags are applied.
func DefaultConfig() Config {
	return Config{
		Mode:        ModeAuto,
		OnDuplicate: DuplicateFail,
		Renderer:    RendererKarma,
		ColorMode:   ColorAuto,
	}
}

// LoadFile decodes a YAML or TOML file (chosen by extension) over cfg.
// Keys absent from the file leave cfg untouched.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("config %s: unsupported format (use .yaml, .yml or .toml)", path)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.ConfigFile = path
	return nil
}

// FindConfigFile returns explicit when set, otherwise DefaultConfigFile in
// dir if it exists, otherwise "".
func FindConfigFile(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	candidate := filepath.Join(dir, DefaultConfigFile)
	if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
		return candidate
	}
	return ""
}

// PresetNames returns the built-in presets the rule table starts from. An
// explicit list wins. Without one, a custom row or preset file stands alone
// and only a bare config falls back to the default preset.
func (c *Config) PresetNames() []string {
	if len(c.Presets) > 0 {
		return c.Presets
	}
	if len(c.Custom) > 0 || c.PresetFile != "" {
		return nil
	}
	return []string{rules.DefaultPreset}
}

// Validate checks that enum fields hold valid values and that the custom
// alias list has a supported width.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeAuto, ModeFile, ModeFolder:
		// valid
	default:
		return errors.New("invalid mode (use 'auto', 'file' or 'folder')")
	}

	switch c.OnDuplicate {
	case DuplicateFail, DuplicateDrop, DuplicateAsk:
		// valid
	default:
		return errors.New("invalid duplicate policy (use 'fail', 'drop' or 'ask')")
	}

	switch c.Renderer {
	case RendererKarma, RendererMantra:
		// valid
	default:
		return errors.New("invalid renderer (use 'karma' or 'mantra')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if n := len(c.Custom); n != 0 && n != 7 && n != 10 {
		return fmt.Errorf("custom preset needs 7 or 10 aliases, got %d", n)
	}
	if c.Report != "" {
		switch strings.ToLower(filepath.Ext(c.Report)) {
		case ".yaml", ".yml", ".toml", ".json":
		default:
			return fmt.Errorf("report %s: unsupported format (use .yaml, .yml, .toml or .json)", c.Report)
		}
	}
	return nil
}
