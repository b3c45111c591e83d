// Package projection implements the field projection filter that prunes a
// source schema before conversion.
//
// A filter is a set of dotted path expressions, OR-ed together:
//
//	name;address.city;events.*.timestamp
//
// A "*" segment matches exactly one field name at its depth. A path is kept
// when it, or any of its ancestors, matches a pattern, so selecting a struct
// keeps everything below it.
//
// Path conventions used by the converter: list and set elements share the
// path of their collection, map keys and values add a "key" or "value"
// segment.
package projection
