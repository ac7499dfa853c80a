package rules

import "strings"

// Role is a semantic PBR texture channel. The zero value means "no role".
type Role string

const (
	RoleNone         Role = ""
	RoleDiffuse      Role = "DIFFUSE"
	RoleAO           Role = "AO"
	RoleDisplacement Role = "DISPLACEMENT"
	RoleNormal       Role = "NORMAL"
	RoleRoughness    Role = "ROUGHNESS"
	RoleMetallic     Role = "METALLIC"
	RoleOpacity      Role = "OPACITY"
	RoleEmission     Role = "EMISSION"
	RoleRefraction   Role = "REFRACTION"
	RoleSubsurface   Role = "SUBSURFACE"
)

// Roles lists every role in table (priority) order. Preset columns are
// position-mapped onto this order.
var Roles = []Role{
	RoleDiffuse,
	RoleAO,
	RoleDisplacement,
	RoleNormal,
	RoleRoughness,
	RoleMetallic,
	RoleOpacity,
	RoleEmission,
	RoleRefraction,
	RoleSubsurface,
}

// Priority returns the role's position in [Roles], or -1 for RoleNone and
// unknown values. Lower sorts first.
func (r Role) Priority() int {
	for i, known := range Roles {
		if r == known {
			return i
		}
	}
	return -1
}

// Label is the lowercase role name used for generated node names.
func (r Role) Label() string {
	return strings.ToLower(string(r))
}
