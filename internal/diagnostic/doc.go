// Package diagnostic collects structured problems found while loading and
// validating struct descriptors, so that all of them can be reported at
// once instead of stopping at the first.
//
// Key capabilities:
//   - Errors, warnings and infos keyed by a stable code
//   - Type and field path context for every entry
//   - "did you mean" suggestions
//   - Conversion into a single marked error
package diagnostic
