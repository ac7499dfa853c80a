package naming

import (
	"errors"
	"fmt"
	"strings"
)

// UDIMToken is the placeholder written into a resolved path in place of a
// numeric tile, so that every tile of one texture resolves identically.
const UDIMToken = "<UDIM>"

// udimTokens are the placeholder spellings accepted in input names
// (compared case-insensitively).
var udimTokens = []string{"<udim>", "$f"}

// ErrInvalidExtension is returned by [Normalize] for names whose extension
// is missing or not on the image allow-list.
var ErrInvalidExtension = errors.New("not a supported image file")

// UDIMKind records how a filename marked itself as UDIM-tiled.
type UDIMKind int

const (
	UDIMNone UDIMKind = iota
	// UDIMNumbered is a numeric tile segment such as .1001.
	UDIMNumbered
	// UDIMPlaceholder is a literal placeholder already in the name.
	UDIMPlaceholder
)

// Parsed holds the structured result of filename normalization.
type Parsed struct {
	Dir          string // directory prefix including the trailing separator; "" for bare names
	Base         string // filename as given
	Stem         string // filename without directory, extension and UDIM segment
	Extension    string // lowercase, without the leading dot
	ResolvedPath string // input path with any numeric tile replaced by UDIMToken
	UDIM         UDIMKind
	Tile         string // numeric tile, when UDIM == UDIMNumbered
}

// IsUDIM reports whether the name carried a tile number or placeholder.
func (p Parsed) IsUDIM() bool { return p.UDIM != UDIMNone }

// Normalize splits rawPath into directory, stem and extension and detects
// UDIM markers. Both "/" and "\" are accepted as path separators.
//
// A bare 4-digit segment starting with "1" directly before the extension
// (rock_color.1001.exr) is a tile: it is dropped from the stem and replaced
// by UDIMToken in ResolvedPath. A placeholder token anywhere in the name is
// dropped from the stem and the path is kept as-is. Other dot-delimited
// segments stay in the stem; empty segments and stray image extensions are
// skipped.
func Normalize(rawPath string) (Parsed, error) {
	cut := strings.LastIndexAny(rawPath, `/\`)
	p := Parsed{
		Dir:          rawPath[:cut+1],
		Base:         rawPath[cut+1:],
		ResolvedPath: rawPath,
	}

	rest, ext, extRaw, ok := splitExtension(p.Base)
	if !ok {
		return p, fmt.Errorf("%w: %s", ErrInvalidExtension, p.Base)
	}
	p.Extension = ext

	segments := strings.Split(rest, ".")
	if n := len(segments); n >= 2 {
		last := segments[n-1]
		switch {
		case isTileNumber(last):
			p.UDIM = UDIMNumbered
			p.Tile = last
			segments = segments[:n-1]
			p.ResolvedPath = p.Dir + strings.Join(segments, ".") + "." + UDIMToken + "." + extRaw
		case isUDIMToken(last):
			p.UDIM = UDIMPlaceholder
			segments = segments[:n-1]
		}
	}

	kept := segments[:0:0]
	for _, seg := range segments {
		if seg == "" || IsImageExtension(seg) {
			continue
		}
		kept = append(kept, seg)
	}
	stem := strings.Join(kept, ".")

	if p.UDIM == UDIMNone {
		if s, found := stripUDIMToken(stem); found {
			p.UDIM = UDIMPlaceholder
			stem = s
		}
	}
	p.Stem = stem
	return p, nil
}

// splitExtension separates the extension from base. ext is lowercase
// without a dot; extRaw keeps the original spelling for path rewriting.
func splitExtension(base string) (rest, ext, extRaw string, ok bool) {
	lower := strings.ToLower(base)
	for _, c := range compoundExtensions {
		if len(base) > len(c) && strings.HasSuffix(lower, c) {
			cut := len(base) - len(c)
			return base[:cut], c[1:], base[cut+1:], true
		}
	}
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return "", "", "", false
	}
	ext = lower[i+1:]
	if !imageExtensions[ext] {
		return "", "", "", false
	}
	return base[:i], ext, base[i+1:], true
}

func isTileNumber(seg string) bool {
	if len(seg) != 4 || seg[0] != '1' {
		return false
	}
	for i := 1; i < 4; i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return false
		}
	}
	return true
}

func isUDIMToken(seg string) bool {
	lower := strings.ToLower(seg)
	for _, tok := range udimTokens {
		if lower == tok {
			return true
		}
	}
	return false
}

// stripUDIMToken removes an embedded placeholder (rock_<UDIM>_color) and
// tidies the separators it leaves behind.
func stripUDIMToken(stem string) (string, bool) {
	lower := asciiLower(stem)
	for _, tok := range udimTokens {
		i := strings.Index(lower, tok)
		if i < 0 {
			continue
		}
		s := stem[:i] + stem[i+len(tok):]
		return trimSeparators(collapseSeparators(s)), true
	}
	return stem, false
}
