package pipeline

import (
	"fmt"
	"sort"

	"github.com/backmassage/pbrexpress/internal/rules"
)

// DuplicatePolicy decides what Assemble does when two textures of one
// material set claim the same role.
type DuplicatePolicy string

const (
	PolicyFail DuplicatePolicy = "fail" // return a *DuplicateRoleError, build no groups
	PolicyDrop DuplicatePolicy = "drop" // keep the first-seen texture, drop the rest
)

// AssembleOptions controls group assembly.
type AssembleOptions struct {
	Policy DuplicatePolicy
	// SkipUnknown drops role-less (redirected) members. A group left with no
	// members is not emitted.
	SkipUnknown bool
}

// Conflict is one texture dropped (or, under PolicyFail, rejected) because
// its material set already had a texture for the same role.
type Conflict struct {
	Key     string     `yaml:"key" toml:"key" json:"key"`
	Role    rules.Role `yaml:"role" toml:"role" json:"role"`
	Kept    Record     `yaml:"kept" toml:"kept" json:"kept"`
	Dropped Record     `yaml:"dropped" toml:"dropped" json:"dropped"`
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: %s claimed by %s and %s", c.Key, c.Role, c.Kept.ResolvedPath, c.Dropped.ResolvedPath)
}

// Group is one material set. Members are ordered by role priority, with
// role-less members last (sorted by path).
type Group struct {
	Key     string   `yaml:"key" toml:"key" json:"key"`
	Members []Record `yaml:"members" toml:"members" json:"members"`
}

// Entries returns the ordered (role, path, extension) list of the group.
func (g Group) Entries() []Binding {
	out := make([]Binding, len(g.Members))
	for i, m := range g.Members {
		out[i] = Binding{Role: m.Role, ResolvedPath: m.ResolvedPath, Extension: m.Extension}
	}
	return out
}

// Member returns the member with the given role.
func (g Group) Member(role rules.Role) (Record, bool) {
	for _, m := range g.Members {
		if m.Role == role && role != rules.RoleNone {
			return m, true
		}
	}
	return Record{}, false
}

// Unknown returns the role-less members.
func (g Group) Unknown() []Record {
	var out []Record
	for _, m := range g.Members {
		if !m.HasRole() {
			out = append(out, m)
		}
	}
	return out
}

// Assemble partitions records by key into groups sorted by key. Exact
// duplicates collapse; records without a key are ignored. Role collisions
// are resolved according to opts.Policy and always returned as conflicts.
func Assemble(records []Record, opts AssembleOptions) ([]Group, []Conflict, error) {
	type bucket struct {
		members []Record
		byRole  map[rules.Role]Record
	}
	buckets := make(map[string]*bucket)
	seen := make(map[Record]bool, len(records))
	var conflicts []Conflict

	for _, r := range records {
		if r.Key == "" || seen[r] {
			continue
		}
		seen[r] = true
		if opts.SkipUnknown && !r.HasRole() {
			continue
		}

		b := buckets[r.Key]
		if b == nil {
			b = &bucket{byRole: make(map[rules.Role]Record)}
			buckets[r.Key] = b
		}
		if r.HasRole() {
			if kept, dup := b.byRole[r.Role]; dup {
				conflicts = append(conflicts, Conflict{Key: r.Key, Role: r.Role, Kept: kept, Dropped: r})
				continue
			}
			b.byRole[r.Role] = r
		}
		b.members = append(b.members, r)
	}

	if len(conflicts) > 0 && opts.Policy != PolicyDrop {
		return nil, conflicts, &DuplicateRoleError{Conflicts: conflicts}
	}

	keys := make([]string, 0, len(buckets))
	for k, b := range buckets {
		if len(b.members) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		members := buckets[k].members
		sortMembers(members)
		groups = append(groups, Group{Key: k, Members: members})
	}
	return groups, conflicts, nil
}

func sortMembers(members []Record) {
	sort.SliceStable(members, func(i, j int) bool {
		pi, pj := rank(members[i]), rank(members[j])
		if pi != pj {
			return pi < pj
		}
		return members[i].ResolvedPath < members[j].ResolvedPath
	})
}

// rank orders roles by priority and puts role-less members after them.
func rank(r Record) int {
	if p := r.Role.Priority(); p >= 0 {
		return p
	}
	return len(rules.Roles)
}
