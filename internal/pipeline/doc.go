// Package pipeline is the classification and grouping engine: it turns a
// batch of candidate texture paths into validated material groups.
//
// Types:
//   - Record (resolved path, stem, role, material-set key, extension)
//   - Group (one material set, at most one member per role)
//   - Outcome (per-file outcome lists for reporting)
//   - RunStats (counters, cumulative across batches)
//   - Runner (sequential multi-batch driver with logging)
//
// Functions:
//   - Discover(fs, root) → []string
//     Recursive walk, every file at any depth, sorted.
//   - ResolveInputs(fs, mode, args) → []Input
//     File mode: one batch of the given paths. Folder mode: one batch per
//     directory.
//   - Classify(paths, table) → Classification
//     normalize → match role → derive key → collapse duplicates → redirect.
//   - Assemble(records, opts) → []Group
//     Partition by key, enforce one member per role (fail or drop-conflicts).
//
// Everything is single-threaded and deterministic for a given input order:
// groups are emitted sorted by key and members in role-priority order.
package pipeline
