package planner

import "github.com/backmassage/pbrexpress/internal/rules"

// Helper node names inside a Karma material.
const (
	helperMultiply     = "base_color_multiply"
	helperNormalMap    = "normalmap"
	helperRemap        = "displacement_remap"
	helperDisplacement = "displacement"
)

// karmaWire is the Karma wiring of one role.
type karmaWire struct {
	signature Signature
	target    string
	helpers   []string // helpers this role needs, nearest first
}

var karmaWiring = map[rules.Role]karmaWire{
	rules.RoleDiffuse:      {SignatureColor, helperMultiply + ".in1", []string{helperMultiply}},
	rules.RoleAO:           {SignatureFloat, helperMultiply + ".in2", []string{helperMultiply}},
	rules.RoleDisplacement: {SignatureFloat, helperRemap + ".in", []string{helperRemap, helperDisplacement}},
	rules.RoleNormal:       {SignatureVector, helperNormalMap + ".in", []string{helperNormalMap}},
	rules.RoleRoughness:    {SignatureFloat, ShaderKarma + ".specular_roughness", nil},
	rules.RoleMetallic:     {SignatureFloat, ShaderKarma + ".metalness", nil},
	rules.RoleOpacity:      {SignatureColor, ShaderKarma + ".opacity", nil},
	rules.RoleEmission:     {SignatureFloat, ShaderKarma + ".emission", nil},
	rules.RoleRefraction:   {SignatureFloat, ShaderKarma + ".transmission", nil},
	rules.RoleSubsurface:   {SignatureColor, ShaderKarma + ".subsurface_color", nil},
}

// karmaHelpers lists every helper in creation order.
var karmaHelpers = []HelperNode{
	{Name: helperMultiply, Type: "mtlxmultiply", Target: ShaderKarma + ".base_color"},
	{Name: helperNormalMap, Type: "mtlxnormalmap", Target: ShaderKarma + ".normal"},
	{Name: helperRemap, Type: "mtlxremap", Target: helperDisplacement + ".displacement"},
	{Name: helperDisplacement, Type: "mtlxdisplacement", Target: "output.displacement"},
}

// wireKarma sets signature and target of every image node and returns the
// helpers in use. Role-less images get a color signature and no target.
func wireKarma(nodes []TextureNode) []HelperNode {
	used := make(map[string]bool)
	for i := range nodes {
		w, ok := karmaWiring[nodes[i].Role]
		if !ok {
			nodes[i].Signature = SignatureColor
			continue
		}
		nodes[i].Signature = w.signature
		nodes[i].Target = w.target
		for _, h := range w.helpers {
			used[h] = true
		}
	}
	var helpers []HelperNode
	for _, h := range karmaHelpers {
		if used[h.Name] {
			helpers = append(helpers, h)
		}
	}
	return helpers
}
