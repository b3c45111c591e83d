// Package collection decides how lists, sets and maps are laid out in a
// columnar schema.
//
// When writing, the layout is fixed: ListShape and MapShape always build the
// canonical 3-level structure.
//
// When reading a schema produced elsewhere, the layout must be inferred.
// Older writers stored a list as a group holding a repeated field that is
// the element itself, or a one-field wrapper around the element, and the
// wrapper case is indistinguishable from the canonical layout by shape
// alone. Resolve settles it using the element schema the reader expects;
// see IsElementType for the rule.
package collection
