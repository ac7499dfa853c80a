package rules

import (
	"sort"
	"strings"
)

// Entry is one role's aliases, longest first.
type Entry struct {
	Role    Role
	Aliases []string
}

// Table is the immutable role → alias mapping consumed by the matcher.
// Roles appear in [Roles] order; a role with no alias in any preset is
// omitted. Aliases are lowercase, deduplicated per role, and sorted by
// descending length (ties alphabetically) so the most specific alias is
// tried first.
type Table struct {
	entries []Entry
	sources []string
}

// BuildTable merges one or more presets into a Table. It fails with a
// *ConfigError when no preset is given, a preset is malformed, or the merged
// presets supply no alias at all.
func BuildTable(presets ...Preset) (*Table, error) {
	if len(presets) == 0 {
		return nil, &ConfigError{Reason: "no preset selected"}
	}

	seen := make(map[Role]map[string]bool)
	byRole := make(map[Role][]string)
	var sources []string

	for _, p := range presets {
		if err := p.validate(); err != nil {
			return nil, err
		}
		sources = append(sources, p.Name)
		for _, row := range p.Rows {
			for col, raw := range row {
				alias := strings.ToLower(strings.TrimSpace(raw))
				if alias == "" {
					continue
				}
				role := Roles[col]
				if seen[role] == nil {
					seen[role] = make(map[string]bool)
				}
				if seen[role][alias] {
					continue
				}
				seen[role][alias] = true
				byRole[role] = append(byRole[role], alias)
			}
		}
	}

	t := &Table{sources: sources}
	for _, role := range Roles {
		aliases := byRole[role]
		if len(aliases) == 0 {
			continue
		}
		sort.Slice(aliases, func(i, j int) bool {
			if len(aliases[i]) != len(aliases[j]) {
				return len(aliases[i]) > len(aliases[j])
			}
			return aliases[i] < aliases[j]
		})
		t.entries = append(t.entries, Entry{Role: role, Aliases: aliases})
	}
	if len(t.entries) == 0 {
		name := ""
		if len(presets) == 1 {
			name = presets[0].Name
		}
		return nil, &ConfigError{Preset: name, Reason: "no aliases supplied"}
	}
	return t, nil
}

// Range calls fn for every (role, alias) pair in table order, stopping
// early when fn returns false.
func (t *Table) Range(fn func(role Role, alias string) bool) {
	for _, e := range t.entries {
		for _, a := range e.Aliases {
			if !fn(e.Role, a) {
				return
			}
		}
	}
}

// Entries returns a copy of the table contents.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		out[i] = Entry{Role: e.Role, Aliases: append([]string(nil), e.Aliases...)}
	}
	return out
}

// Aliases returns a copy of the aliases for role, longest first.
func (t *Table) Aliases(role Role) []string {
	for _, e := range t.entries {
		if e.Role == role {
			return append([]string(nil), e.Aliases...)
		}
	}
	return nil
}

// Len is the total number of aliases across all roles.
func (t *Table) Len() int {
	n := 0
	for _, e := range t.entries {
		n += len(e.Aliases)
	}
	return n
}

// Sources names the presets the table was built from, in order.
func (t *Table) Sources() []string {
	return append([]string(nil), t.sources...)
}

// Overlaps returns aliases claimed by more than one role, mapped to the
// roles that claim them in table order.
func (t *Table) Overlaps() map[string][]Role {
	claims := make(map[string][]Role)
	t.Range(func(role Role, alias string) bool {
		claims[alias] = append(claims[alias], role)
		return true
	})
	out := make(map[string][]Role)
	for alias, roles := range claims {
		if len(roles) > 1 {
			out[alias] = roles
		}
	}
	return out
}
