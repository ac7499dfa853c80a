package naming

import "github.com/backmassage/pbrexpress/internal/rules"

// MaxNameLength is the longest stem carried forward as a node name.
const MaxNameLength = 70

// genericName labels a member without a role whose stem is too long.
const genericName = "image"

// DisplayName returns the node name for a texture: the stem itself, or the
// role label when the stem is longer than MaxNameLength. It has no effect
// on matching or grouping.
func DisplayName(stem string, role rules.Role) string {
	if len(stem) <= MaxNameLength && stem != "" {
		return stem
	}
	if role == rules.RoleNone {
		return genericName
	}
	return role.Label()
}
