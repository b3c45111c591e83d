// Package match ranks schema names by similarity to a query.
//
// It backs the "did you mean" hints shown when a projection pattern selects
// nothing or a record type is not registered:
//   - NormalizeName: case-folds a dotted field path segment by segment
//   - Levenshtein: edit distance between two strings
//   - Rank and Suggest: order candidate names by similarity
package match
