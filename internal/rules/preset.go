package rules

import (
	"fmt"
	"sort"
	"strings"
)

// Column counts accepted for a preset row. Seven columns cover DIFFUSE
// through OPACITY; ten cover every role.
const (
	ShortColumns = 7
	FullColumns  = 10
)

// DefaultPreset is the preset used when none is configured.
const DefaultPreset = "default"

// Preset is a named naming convention. Each row holds one alias per role in
// [Roles] order; an empty cell means the convention has no alias for that
// role.
type Preset struct {
	Name string     `yaml:"name" toml:"name"`
	Rows [][]string `yaml:"rows" toml:"rows"`
}

// Columns returns the row width, or 0 for a preset without rows.
func (p Preset) Columns() int {
	if len(p.Rows) == 0 {
		return 0
	}
	return len(p.Rows[0])
}

// validate checks row widths and alias spelling.
func (p Preset) validate() error {
	if len(p.Rows) == 0 {
		return &ConfigError{Preset: p.Name, Reason: "no rows"}
	}
	width := len(p.Rows[0])
	for i, row := range p.Rows {
		if len(row) != ShortColumns && len(row) != FullColumns {
			return &ConfigError{Preset: p.Name, Reason: fmt.Sprintf("row %d has %d columns (want %d or %d)", i+1, len(row), ShortColumns, FullColumns)}
		}
		if len(row) != width {
			return &ConfigError{Preset: p.Name, Reason: fmt.Sprintf("row %d has %d columns, row 1 has %d", i+1, len(row), width)}
		}
		for _, alias := range row {
			if strings.ContainsAny(alias, `/\`) {
				return &ConfigError{Preset: p.Name, Reason: fmt.Sprintf("alias %q contains a path separator", alias)}
			}
		}
	}
	return nil
}

// Rows are DIFFUSE, AO, DISPLACEMENT, NORMAL, ROUGHNESS, METALLIC, OPACITY,
// EMISSION, REFRACTION, SUBSURFACE.
var builtin = []Preset{
	{
		Name: "classic",
		Rows: [][]string{
			{"diffuse", "ao", "disp", "normal", "rough", "metallic", "opacity", "emission", "refraction", "sss"},
			{"diff", "ambientocclusion", "displacement", "normaldx", "roughness", "metalness", "alpha", "emissive", "transmission", "subsurface"},
			{"albedo", "occlusion", "height", "normal-ogl", "", "", "", "", "", ""},
			{"color", "", "", "normal_ogl", "", "", "", "", "", ""},
			{"basecolor", "", "", "opengl", "", "", "", "", "", ""},
			{"", "", "", "nor", "", "", "", "", "", ""},
			{"", "", "", "normal_dx", "", "", "", "", "", ""},
			{"", "", "", "normal-dx", "", "", "", "", "", ""},
		},
	},
	{
		Name: "substance",
		Rows: [][]string{
			{"basecolor", "mixed_ao", "height", "normal_opengl", "roughness", "metallic", "opacity", "emissive", "transmissive", "scattering"},
			{"base_color", "ambient_occlusion", "", "normal_directx", "", "", "", "", "", ""},
		},
	},
	{
		Name: "megascans",
		Rows: [][]string{
			{"albedo", "ao", "displacement", "normal", "roughness", "metalness", "opacity", "", "", "translucency"},
		},
	},
	{
		Name: "polyhaven",
		Rows: [][]string{
			{"diff", "ao", "disp", "nor_gl", "rough", "metal", "alpha", "emission", "", ""},
			{"diffuse", "", "displacement", "nor_dx", "roughness", "", "", "", "", ""},
			{"col", "", "", "normal_gl", "", "", "", "", "", ""},
		},
	},
	{
		Name: "ambientcg",
		Rows: [][]string{
			{"color", "ambientocclusion", "displacement", "normalgl", "roughness", "metalness", "opacity", "emission", "", ""},
			{"", "", "", "normaldx", "", "", "", "", "", ""},
		},
	},
	{
		Name: "minimal",
		Rows: [][]string{
			{"diffuse", "ao", "displacement", "normal", "roughness", "metallic", "opacity"},
		},
	},
}

// Builtin returns the names of the built-in presets, the default first.
func Builtin() []string {
	names := []string{DefaultPreset}
	for _, p := range builtin {
		names = append(names, p.Name)
	}
	return names
}

// Lookup resolves a built-in preset by name (case-insensitive). The default
// preset is the union of every built-in convention.
func Lookup(name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == DefaultPreset {
		return defaultPreset(), nil
	}
	for _, p := range builtin {
		if p.Name == key {
			return clonePreset(p), nil
		}
	}
	known := Builtin()
	sort.Strings(known)
	return Preset{}, &ConfigError{Preset: name, Reason: "unknown preset (known: " + strings.Join(known, ", ") + ")"}
}

// Custom builds a single-row preset from user-supplied aliases, one per role
// in [Roles] order. Exactly 7 or 10 values are accepted; empty values mean
// the role has no alias.
func Custom(name string, aliases []string) (Preset, error) {
	if name == "" {
		name = "custom"
	}
	row := make([]string, len(aliases))
	nonEmpty := 0
	for i, a := range aliases {
		row[i] = strings.TrimSpace(a)
		if row[i] != "" {
			nonEmpty++
		}
	}
	p := Preset{Name: name, Rows: [][]string{row}}
	if err := p.validate(); err != nil {
		return Preset{}, err
	}
	if nonEmpty == 0 {
		return Preset{}, &ConfigError{Preset: name, Reason: "no aliases supplied"}
	}
	return p, nil
}

func defaultPreset() Preset {
	p := Preset{Name: DefaultPreset}
	for _, b := range builtin {
		for _, row := range b.Rows {
			p.Rows = append(p.Rows, widen(row))
		}
	}
	return p
}

// widen pads a 7-column row to the full width so rows can be merged.
func widen(row []string) []string {
	out := make([]string, FullColumns)
	copy(out, row)
	return out
}

func clonePreset(p Preset) Preset {
	out := Preset{Name: p.Name, Rows: make([][]string, len(p.Rows))}
	for i, row := range p.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}
