package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// presetFile is the on-disk layout shared by the YAML and TOML forms:
//
//	presets:
//	  - name: studio
//	    rows:
//	      - [albedo, ao, height, normal, rough, metal, alpha]
type presetFile struct {
	Presets []Preset `yaml:"presets" toml:"presets"`
}

// LoadPresetFile reads custom presets from a .yaml/.yml or .toml file.
// Every preset is validated; a malformed one yields a *ConfigError.
func LoadPresetFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}
	return ParsePresets(data, filepath.Ext(path))
}

// ParsePresets decodes preset definitions. ext selects the format and must
// be one of ".yaml", ".yml" or ".toml".
func ParsePresets(data []byte, ext string) ([]Preset, error) {
	var pf presetFile
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("failed to parse preset file: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("failed to parse preset file: %w", err)
		}
	default:
		return nil, &ConfigError{Reason: fmt.Sprintf("unsupported preset file type %q (use .yaml or .toml)", ext)}
	}

	if len(pf.Presets) == 0 {
		return nil, &ConfigError{Reason: "preset file defines no presets"}
	}
	for i, p := range pf.Presets {
		if strings.TrimSpace(p.Name) == "" {
			return nil, &ConfigError{Reason: fmt.Sprintf("preset %d has no name", i+1)}
		}
		if err := p.validate(); err != nil {
			return nil, err
		}
	}
	return pf.Presets, nil
}
