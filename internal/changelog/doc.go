// Package changelog implements the Keep a Changelog section pipeline used by
// chlog.
//
// This package implements:
//   - Release heading parsing into a typed Release descriptor
//   - Section linking and structural validation (ordering, uniqueness,
//     placement of link definitions)
//   - Extraction of a single release's notes (query)
//   - Version bumps: promoting Unreleased into a dated release and
//     regenerating the compare-link definitions
//
// The package never reads or writes files; callers hand it a parsed
// markdown.Document and serialize the result themselves.
package changelog
