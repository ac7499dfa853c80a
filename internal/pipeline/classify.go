package pipeline

import (
	"github.com/backmassage/pbrexpress/internal/naming"
	"github.com/backmassage/pbrexpress/internal/rules"
)

// Classification is the result of classifying one batch.
type Classification struct {
	// Records holds every distinct texture that ended up with a key, in
	// first-seen order. Redirected records have an empty Role.
	Records []Record
	// Hopeless holds distinct textures that matched no role and no key.
	Hopeless []Record
	Outcome  Outcome
	Stats    RunStats
}

// Classify runs normalization, role matching, key derivation, duplicate
// collapsing and the redirection pass over one batch of paths. Per-file
// problems never abort the batch: they are counted and listed in the
// returned Outcome. An empty batch returns ErrEmptyInput.
func Classify(paths []string, table *rules.Table) (*Classification, error) {
	if len(paths) == 0 {
		return nil, ErrEmptyInput
	}
	c := &Classification{}
	seen := make(map[Record]bool, len(paths))
	var records []Record

	for _, path := range paths {
		c.Stats.FilesProcessed++

		p, err := naming.Normalize(path)
		if err != nil {
			c.Stats.InvalidExtension++
			c.Outcome.InvalidExtension = append(c.Outcome.InvalidExtension, path)
			continue
		}
		if p.IsUDIM() {
			c.Stats.UDIMDetected++
			c.Outcome.UDIM = append(c.Outcome.UDIM, path)
		}

		rec := Record{
			ResolvedPath: p.ResolvedPath,
			Stem:         p.Stem,
			Extension:    p.Extension,
		}
		if m := naming.MatchRole(p.Stem, table); m.Ok() {
			rec.Role = m.Role
			rec.Key = naming.DeriveKey(p.Stem, m.Alias)
			if rec.Key == "" {
				rec.Key = naming.FallbackKey(p.Dir)
			}
		} else {
			c.Stats.Unrecognized++
			c.Outcome.Unrecognized = append(c.Outcome.Unrecognized, path)
		}

		if seen[rec] {
			continue
		}
		seen[rec] = true
		records = append(records, rec)
	}

	records, redirected, hopeless := Redirect(records, naming.BuildKeyIndex(KnownKeys(records)))
	c.Records = records
	c.Hopeless = hopeless
	c.Stats.Redirected = len(redirected)
	c.Stats.Hopeless = len(hopeless)
	for _, r := range redirected {
		c.Outcome.Redirected = append(c.Outcome.Redirected, r.ResolvedPath)
	}
	for _, r := range hopeless {
		c.Outcome.Hopeless = append(c.Outcome.Hopeless, r.ResolvedPath)
	}
	return c, nil
}

// KnownKeys returns the keys of records that matched a role, in order.
// Only these keys are eligible targets for redirection.
func KnownKeys(records []Record) []string {
	var keys []string
	for _, r := range records {
		if r.HasRole() && r.Key != "" {
			keys = append(keys, r.Key)
		}
	}
	return keys
}

// Redirect assigns a key to every record that has neither role nor key and
// whose stem contains one of the indexed keys. It returns the records that
// now carry a key (order preserved), the subset that was redirected, and
// those that remain hopeless.
func Redirect(records []Record, idx naming.KeyIndex) (kept, redirected, hopeless []Record) {
	kept = make([]Record, 0, len(records))
	for _, r := range records {
		if r.HasRole() || r.Key != "" {
			kept = append(kept, r)
			continue
		}
		key, ok := idx.Redirect(r.Stem)
		if !ok {
			hopeless = append(hopeless, r)
			continue
		}
		r.Key = key
		kept = append(kept, r)
		redirected = append(redirected, r)
	}
	return kept, redirected, hopeless
}
