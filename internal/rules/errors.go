package rules

import "fmt"

// ConfigError reports a malformed or empty preset. It is fatal and is
// surfaced before any file is classified.
type ConfigError struct {
	Preset string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Preset == "" {
		return "naming rules: " + e.Reason
	}
	return fmt.Sprintf("naming rules: preset %q: %s", e.Preset, e.Reason)
}
