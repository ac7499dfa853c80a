package planner

import (
	"github.com/backmassage/pbrexpress/internal/config"
	"github.com/backmassage/pbrexpress/internal/rules"
)

// Signature is the output type an image node is set to.
type Signature string

const (
	SignatureColor  Signature = "color3"
	SignatureFloat  Signature = "float"
	SignatureVector Signature = "vector3"
)

// Shader node types created per material.
const (
	ShaderKarma  = "mtlxstandard_surface"
	ShaderMantra = "principledshader::2.0"
)

// MaterialPlan holds everything needed to build one material's shader
// network. It is produced by BuildPlan and consumed by the node-creation
// side, which never needs to look at roles again.
type MaterialPlan struct {
	Name     string          `yaml:"name" toml:"name" json:"name"`
	Renderer config.Renderer `yaml:"renderer" toml:"renderer" json:"renderer"`
	Shader   string          `yaml:"shader" toml:"shader" json:"shader"`

	// Image nodes (Karma) or texture parameters (Mantra), in member order.
	Textures []TextureNode `yaml:"textures" toml:"textures" json:"textures"`

	// Helper nodes between images and the shader (Karma only). Only
	// helpers with at least one connected image are listed.
	Helpers []HelperNode `yaml:"helpers,omitempty" toml:"helpers,omitempty" json:"helpers,omitempty"`
}

// TextureNode describes one texture of the material.
type TextureNode struct {
	Name      string     `yaml:"name" toml:"name" json:"name"`
	File      string     `yaml:"file" toml:"file" json:"file"`
	Role      rules.Role `yaml:"role,omitempty" toml:"role,omitempty" json:"role,omitempty"`
	Signature Signature  `yaml:"signature,omitempty" toml:"signature,omitempty" json:"signature,omitempty"`
	// Target is "<node>.<input>" for Karma or the texture parameter for
	// Mantra. Empty when the texture is created but left unconnected.
	Target string `yaml:"target,omitempty" toml:"target,omitempty" json:"target,omitempty"`
	// Toggle is the Mantra parameter enabling Target.
	Toggle string `yaml:"toggle,omitempty" toml:"toggle,omitempty" json:"toggle,omitempty"`
}

// Connected reports whether the texture feeds anything.
func (n TextureNode) Connected() bool { return n.Target != "" }

// HelperNode is an intermediate node and the shader input its output feeds.
type HelperNode struct {
	Name   string `yaml:"name" toml:"name" json:"name"`
	Type   string `yaml:"type" toml:"type" json:"type"`
	Target string `yaml:"target" toml:"target" json:"target"`
}
