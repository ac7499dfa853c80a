// Package naming turns a texture filename into the pieces the grouping
// engine works with.
//
// Types:
//   - Parsed (directory, stem, extension, UDIM marker, resolved path)
//   - Match (role and the alias that identified it)
//   - KeyIndex (batch-wide material-set keys used for redirection)
//   - NameResolver (unique node names within one material)
//
// Functions:
//   - Normalize(rawPath) → Parsed
//     Extension allow-list check, UDIM tile/token detection and rewrite,
//     multi-dot stems rejoined.
//   - MatchRole(stem, table) → Match
//     Case-insensitive, separator-bounded alias search; longest alias wins.
//   - DeriveKey(stem, alias) → material-set key
//     Alias removed, separators collapsed and trimmed.
//   - BuildKeyIndex(keys).Redirect(stem) → key
//     Recovery of unrecognized files by key containment.
//   - DisplayName(stem, role) → node name
//
// Everything here works on filename strings only; no file is opened.
package naming
