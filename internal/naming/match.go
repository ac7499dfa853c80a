package naming

import (
	"strings"

	"github.com/backmassage/pbrexpress/internal/rules"
)

// Match is the result of role matching. Role is rules.RoleNone and Alias is
// empty when nothing matched.
type Match struct {
	Role  rules.Role
	Alias string
}

// Ok reports whether a role was matched.
func (m Match) Ok() bool { return m.Role != rules.RoleNone }

// MatchRole finds the texture role of stem. An alias matches only as a
// whole token: bounded on both sides by the start/end of the stem or one
// of "_", "-", ".". Matching is case-insensitive, so "ao" is found in
// "rock_AO" but not in "chaos".
//
// When aliases of several roles match, the longest alias wins; on equal
// length the role that comes first in the table wins.
func MatchRole(stem string, table *rules.Table) Match {
	lower := asciiLower(stem)
	var best Match
	table.Range(func(role rules.Role, alias string) bool {
		if len(alias) <= len(best.Alias) {
			return true
		}
		if findToken(lower, alias) >= 0 {
			best = Match{Role: role, Alias: alias}
		}
		return true
	})
	return best
}

// findToken returns the byte offset of the first separator-bounded
// occurrence of token in s, or -1. Both arguments must already be lowercase.
func findToken(s, token string) int {
	if token == "" {
		return -1
	}
	from := 0
	for from <= len(s)-len(token) {
		i := strings.Index(s[from:], token)
		if i < 0 {
			return -1
		}
		i += from
		end := i + len(token)
		if (i == 0 || isSeparator(s[i-1])) && (end == len(s) || isSeparator(s[end])) {
			return i
		}
		from = i + 1
	}
	return -1
}

func isSeparator(b byte) bool {
	return b == '_' || b == '-' || b == '.'
}

// asciiLower lowercases ASCII letters only, so byte offsets in the result
// line up with the input.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
