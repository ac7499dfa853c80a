package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned when there is nothing to classify.
var ErrEmptyInput = errors.New("no input files to classify")

// DuplicateRoleError reports material sets in which two textures claim the
// same role. It is returned by [Assemble] under [PolicyFail].
type DuplicateRoleError struct {
	Conflicts []Conflict
}

func (e *DuplicateRoleError) Error() string {
	if len(e.Conflicts) == 0 {
		return "duplicate texture role"
	}
	c := e.Conflicts[0]
	msg := fmt.Sprintf("material %q has more than one %s texture (%s, %s)",
		c.Key, c.Role, c.Kept.ResolvedPath, c.Dropped.ResolvedPath)
	if n := len(e.Conflicts) - 1; n > 0 {
		msg += fmt.Sprintf(" and %d more conflict(s)", n)
	}
	return msg
}

// Keys returns the distinct material keys involved, in conflict order.
func (e *DuplicateRoleError) Keys() []string {
	var keys []string
	seen := make(map[string]bool)
	for _, c := range e.Conflicts {
		if !seen[c.Key] {
			seen[c.Key] = true
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// Summary renders one line per conflict for console output.
func (e *DuplicateRoleError) Summary() string {
	lines := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		lines[i] = c.String()
	}
	return strings.Join(lines, "\n")
}
