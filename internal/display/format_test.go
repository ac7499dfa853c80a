package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/backmassage/pbrexpress/internal/config"
	"github.com/backmassage/pbrexpress/internal/term"
)

func TestCount(t *testing.T) {
	tests := []struct {
		n    int
		noun string
		want string
	}{
		{0, "file", "0 files"},
		{1, "file", "1 file"},
		{2, "texture", "2 textures"},
		{1, "match", "1 match"},
		{3, "match", "3 matches"},
		{2, "alias", "2 aliases"},
		{5, "box", "5 boxes"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Count(tt.n, tt.noun); got != tt.want {
				t.Errorf("Count(%d, %q) = %q, want %q", tt.n, tt.noun, got, tt.want)
			}
		})
	}
}

func TestFormatList(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		max   int
		want  string
	}{
		{"empty", nil, 3, "-"},
		{"under limit", []string{"a", "b"}, 3, "a, b"},
		{"at limit", []string{"a", "b", "c"}, 3, "a, b, c"},
		{"over limit", []string{"a", "b", "c", "d", "e"}, 2, "a, b (+3 more)"},
		{"no limit", []string{"a", "b", "c"}, 0, "a, b, c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatList(tt.items, tt.max); got != tt.want {
				t.Errorf("FormatList() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColumns(t *testing.T) {
	got := Columns([][]string{
		{"DIFFUSE", "basecolor, diffuse"},
		{"AO", "ao"},
		{"NORMAL", ""},
	})
	want := []string{
		"DIFFUSE  basecolor, diffuse",
		"AO       ao",
		"NORMAL",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPrintBanner_Plain(t *testing.T) {
	term.Configure(config.ColorNever)
	var buf bytes.Buffer
	PrintBanner(&buf)
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("banner contains escape codes with colors off: %q", out)
	}
	if !strings.HasPrefix(out, banner[:10]) {
		t.Errorf("banner missing art: %q", out)
	}
}
