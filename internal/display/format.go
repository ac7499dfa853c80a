// Package display holds the banner and small human-readable formatting
// helpers shared by the CLI, the runner and the diagnostics.
package display

import (
	"fmt"
	"strings"
)

// Count renders n with the noun in singular or plural ("1 file", "3 files").
func Count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %s", n, Plural(noun))
}

// Plural returns a naive English plural of noun.
func Plural(noun string) string {
	switch {
	case noun == "":
		return noun
	case strings.HasSuffix(noun, "s"), strings.HasSuffix(noun, "x"),
		strings.HasSuffix(noun, "ch"), strings.HasSuffix(noun, "sh"):
		return noun + "es"
	default:
		return noun + "s"
	}
}

// FormatList joins items with ", ", showing at most max of them and a
// "(+N more)" tail for the rest. max <= 0 means no limit; an empty list
// renders as "-".
func FormatList(items []string, max int) string {
	if len(items) == 0 {
		return "-"
	}
	if max <= 0 || len(items) <= max {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(items[:max], ", "), len(items)-max)
}

// Columns left-aligns rows into columns separated by two spaces. Trailing
// whitespace is trimmed from each line.
func Columns(rows [][]string) []string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	lines := make([]string, len(rows))
	for r, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		lines[r] = strings.TrimRight(b.String(), " ")
	}
	return lines
}
