package pipeline

import (
	"github.com/backmassage/pbrexpress/internal/naming"
	"github.com/backmassage/pbrexpress/internal/rules"
)

// Record is one logical texture after classification. It is a comparable
// value: two records with equal fields are the same texture (this is how
// the tiles of one UDIM texture collapse to a single record).
type Record struct {
	ResolvedPath string     `yaml:"path" toml:"path" json:"path"`
	Stem         string     `yaml:"stem" toml:"stem" json:"stem"`
	Role         rules.Role `yaml:"role,omitempty" toml:"role,omitempty" json:"role,omitempty"`
	Key          string     `yaml:"key,omitempty" toml:"key,omitempty" json:"key,omitempty"`
	Extension    string     `yaml:"extension" toml:"extension" json:"extension"`
}

// HasRole reports whether the record matched a role alias.
func (r Record) HasRole() bool { return r.Role != rules.RoleNone }

// Name is the display name carried forward for node creation.
func (r Record) Name() string { return naming.DisplayName(r.Stem, r.Role) }

// Binding is one (role, path, extension) entry handed to the
// node-construction side. Role is empty for redirected members.
type Binding struct {
	Role         rules.Role `yaml:"role,omitempty" toml:"role,omitempty" json:"role,omitempty"`
	ResolvedPath string     `yaml:"path" toml:"path" json:"path"`
	Extension    string     `yaml:"extension" toml:"extension" json:"extension"`
}
