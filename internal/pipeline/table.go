package pipeline

import (
	"github.com/backmassage/pbrexpress/internal/config"
	"github.com/backmassage/pbrexpress/internal/rules"
)

// LoadTable builds the rule table selected by cfg: the built-in presets of
// cfg.PresetNames in order, then every preset from cfg.PresetFile, then the
// custom alias row. A custom row or preset file given without explicit
// presets replaces the default table. Any failure is a *rules.ConfigError (or wraps one) and must be
// reported before a single file is classified.
func LoadTable(cfg *config.Config) (*rules.Table, error) {
	var presets []rules.Preset
	for _, name := range cfg.PresetNames() {
		p, err := rules.Lookup(name)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	if cfg.PresetFile != "" {
		extra, err := rules.LoadPresetFile(cfg.PresetFile)
		if err != nil {
			return nil, err
		}
		presets = append(presets, extra...)
	}
	if len(cfg.Custom) > 0 {
		p, err := rules.Custom("", cfg.Custom)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return rules.BuildTable(presets...)
}
