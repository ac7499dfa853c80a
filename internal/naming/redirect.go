package naming

import (
	"sort"
	"strings"
)

// KeyIndex holds the material-set keys derived from successfully matched
// files of one batch. Unrecognized files of the same batch are redirected
// into one of these sets when their stem contains its key.
type KeyIndex struct {
	keys  []string // original spelling, longest first
	lower []string // asciiLower(keys[i])
}

// BuildKeyIndex registers the distinct non-empty keys. Order of the input
// does not matter: the index is sorted longest first, ties alphabetically,
// so redirection prefers the most specific set.
func BuildKeyIndex(keys []string) KeyIndex {
	seen := make(map[string]bool, len(keys))
	var uniq []string
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		uniq = append(uniq, k)
	}
	sort.Slice(uniq, func(i, j int) bool {
		if len(uniq[i]) != len(uniq[j]) {
			return len(uniq[i]) > len(uniq[j])
		}
		return uniq[i] < uniq[j]
	})
	idx := KeyIndex{keys: uniq, lower: make([]string, len(uniq))}
	for i, k := range uniq {
		idx.lower[i] = asciiLower(k)
	}
	return idx
}

// Redirect returns the key whose text occurs in stem (case-insensitive),
// preferring the longest key. ok is false when no key fits.
func (idx KeyIndex) Redirect(stem string) (key string, ok bool) {
	lower := asciiLower(stem)
	for i, k := range idx.lower {
		if strings.Contains(lower, k) {
			return idx.keys[i], true
		}
	}
	return "", false
}
