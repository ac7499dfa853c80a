// Package rules holds the naming-rule table: the mapping from PBR texture
// role to the keyword aliases that identify it in a filename.
//
// Types:
//   - Role: closed set of texture channels (DIFFUSE, AO, ... SUBSURFACE)
//   - Preset: a named naming convention, one or more role-ordered rows of
//     7 or 10 alias columns
//   - Table: the immutable, deduplicated, longest-first alias table built
//     from one or more presets
//
// Functions:
//   - Lookup(name) → Preset for the built-in conventions
//   - Custom(name, aliases) → Preset from a user-supplied row
//   - LoadPresetFile(path) → []Preset from YAML or TOML
//   - BuildTable(presets...) → *Table
//
// A Table is built once at startup and passed by pointer to the naming and
// pipeline packages; nothing mutates it afterwards.
package rules
