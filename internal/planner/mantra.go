package planner

import "github.com/backmassage/pbrexpress/internal/rules"

// mantraParm is the principled shader (texture, toggle) parameter pair of
// one role.
type mantraParm struct {
	texture, toggle string
}

// Refraction and subsurface maps have no texture slot on the principled
// shader; they are listed but left unconnected.
var mantraParms = map[rules.Role]mantraParm{
	rules.RoleDiffuse:      {"basecolor_texture", "basecolor_useTexture"},
	rules.RoleAO:           {"occlusion_texture", "occlusion_useTexture"},
	rules.RoleDisplacement: {"dispTex_texture", "dispTex_enable"},
	rules.RoleNormal:       {"baseNormal_texture", "baseBumpAndNormal_enable"},
	rules.RoleRoughness:    {"rough_texture", "rough_useTexture"},
	rules.RoleMetallic:     {"metallic_texture", "metallic_useTexture"},
	rules.RoleOpacity:      {"opaccolor_texture", "opaccolor_useTexture"},
	rules.RoleEmission:     {"emitcolor_texture", "emitcolor_useTexture"},
}

func wireMantra(nodes []TextureNode) {
	for i := range nodes {
		if p, ok := mantraParms[nodes[i].Role]; ok {
			nodes[i].Target = p.texture
			nodes[i].Toggle = p.toggle
		}
	}
}
