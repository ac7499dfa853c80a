package naming

import (
	"regexp"
	"strings"
)

// DefaultKey names a material set when neither the stem nor the directory
// yields a usable key.
const DefaultKey = "material"

var doubledSeparators = strings.NewReplacer("--", "-", "__", "_", "..", ".")

// reResolutionSuffix matches a trailing separator-bounded texture
// resolution tag such as "_2k" or "-16K".
var reResolutionSuffix = regexp.MustCompile(`(?i)[._\-](1|2|4|6|8|16|32)k$`)

// DeriveKey removes alias from stem and returns the remaining material-set
// key. The separator-bounded occurrence found by [MatchRole] is removed;
// if alias only occurs unbounded, its first case-insensitive occurrence is
// removed instead. Doubled separators are collapsed, a trailing resolution
// tag (1k to 32k) is dropped, and one trailing separator is trimmed along
// with one leading separator ("diffuse_wood" keys to "wood").
// An empty alias yields "".
//
//	wood_diffuse       → wood
//	wood_normal_ogl    → wood   (alias "normal_ogl")
//	wood_diffuse_2k    → wood
//	T_Rock_BaseColor   → T_Rock
func DeriveKey(stem, alias string) string {
	if alias == "" {
		return ""
	}
	lower := asciiLower(stem)
	token := asciiLower(alias)
	i := findToken(lower, token)
	if i < 0 {
		i = strings.Index(lower, token)
	}
	if i < 0 {
		return trimSeparators(collapseSeparators(stem))
	}
	key := collapseSeparators(stem[:i] + stem[i+len(token):])
	return trimSeparators(stripResolution(trimSeparators(key)))
}

// stripResolution drops one trailing resolution tag. A key that is nothing
// but the tag is kept.
func stripResolution(key string) string {
	loc := reResolutionSuffix.FindStringIndex(key)
	if loc == nil || loc[0] == 0 {
		return key
	}
	return key[:loc[0]]
}

// FallbackKey derives a key from the directory part of a path when the
// stem is nothing but the alias (e.g. textures/wood/diffuse.png → wood).
func FallbackKey(dir string) string {
	d := strings.TrimRight(dir, `/\`)
	if cut := strings.LastIndexAny(d, `/\`); cut >= 0 {
		d = d[cut+1:]
	}
	d = trimSeparators(collapseSeparators(strings.TrimSpace(d)))
	if d == "" || d == "." || d == ".." {
		return DefaultKey
	}
	return d
}

// collapseSeparators squeezes runs of the same separator to one.
func collapseSeparators(s string) string {
	for {
		next := doubledSeparators.Replace(s)
		if next == s {
			return s
		}
		s = next
	}
}

// trimSeparators strips one leading and one trailing separator.
func trimSeparators(s string) string {
	if s != "" && isSeparator(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	if s != "" && isSeparator(s[0]) {
		s = s[1:]
	}
	return s
}
