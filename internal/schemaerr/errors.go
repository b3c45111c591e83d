// Package schemaerr defines the error taxonomy shared by the conversion
// packages.
//
// Every error is built with a marker so callers can test the category with
// errors.Is regardless of how much context was wrapped around it:
//
//	if errors.Is(err, schemaerr.ErrEmptyProjection) { ... }
//	if errors.Is(err, schemaerr.ErrProjection) { ... }
//
// None of these errors is transient. The only remedy is a different input.
package schemaerr

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Families.
var (
	// ErrSchema marks structural problems of a source or target schema.
	ErrSchema = errors.New("schema error")
	// ErrProjection marks problems with the requested projection.
	ErrProjection = errors.New("projection error")
)

// Schema errors.
var (
	ErrUnsupportedType     = errors.New("unsupported type")
	ErrDuplicateFieldID    = errors.New("duplicate field id")
	ErrAmbiguousCollection = errors.New("ambiguous collection")
	ErrInvalidCollection   = errors.New("invalid collection")
	ErrInvalidDescriptor   = errors.New("invalid descriptor")
	ErrIncompatibleSchema  = errors.New("incompatible schema")
)

// Projection errors.
var (
	ErrConflictingSchemaSpecification = errors.New("conflicting schema specification")
	ErrEmptyProjection                = errors.New("empty projection")
	ErrClassResolution                = errors.New("record type resolution failure")
	ErrInvalidPattern                 = errors.New("invalid projection pattern")
)

func mark(err error, kind, family error) error {
	return errors.Mark(errors.Mark(err, kind), family)
}

// UnsupportedType reports a source type that cannot be instantiated as a
// schema node, such as the Stop and Void wire markers.
func UnsupportedType(path string, format string, args ...interface{}) error {
	return mark(errors.Newf("%s: unsupported type: "+format, append([]interface{}{display(path)}, args...)...),
		ErrUnsupportedType, ErrSchema)
}

// DuplicateFieldID reports two sibling fields sharing an id.
func DuplicateFieldID(path string, id int16, first, second string) error {
	return mark(errors.Newf("%s: fields %q and %q both declare id %d", display(path), first, second, id),
		ErrDuplicateFieldID, ErrSchema)
}

// AmbiguousCollection reports a repeated node that must be resolved without
// an expected element schema.
func AmbiguousCollection(path string) error {
	return mark(errors.Newf("%s: cannot resolve collection encoding without an expected element schema", display(path)),
		ErrAmbiguousCollection, ErrSchema)
}

// InvalidCollection reports an annotated collection group whose layout fits
// none of the known encodings.
func InvalidCollection(path string, format string, args ...interface{}) error {
	return mark(errors.Newf("%s: invalid collection: "+format, append([]interface{}{display(path)}, args...)...),
		ErrInvalidCollection, ErrSchema)
}

// IncompatibleSchema reports a column whose shape contradicts the struct
// descriptor it is read with.
func IncompatibleSchema(path string, format string, args ...interface{}) error {
	return mark(errors.Newf("%s: incompatible schema: "+format, append([]interface{}{display(path)}, args...)...),
		ErrIncompatibleSchema, ErrSchema)
}

// InvalidDescriptor reports a struct descriptor file that failed validation.
func InvalidDescriptor(source string, problems []string) error {
	return mark(errors.Newf("%s: %d problem(s): %s", display(source), len(problems), strings.Join(problems, "; ")),
		ErrInvalidDescriptor, ErrSchema)
}

// ConflictingSchemaSpecification reports a projection filter and an explicit
// read schema supplied together.
func ConflictingSchemaSpecification(filter, readSchema string) error {
	return mark(errors.Newf("column filter %q and an explicit read schema (%d bytes) are both specified, use only one",
		filter, len(readSchema)),
		ErrConflictingSchemaSpecification, ErrProjection)
}

// EmptyProjection reports a struct pruned down to zero children.
func EmptyProjection(path string, patterns []string) error {
	return mark(errors.Newf("%s: projection %q selects no columns", display(path), patterns),
		ErrEmptyProjection, ErrProjection)
}

// ClassResolution reports a record type that could not be determined
// unambiguously.
func ClassResolution(format string, args ...interface{}) error {
	return mark(errors.Newf("could not resolve record type: "+format, args...),
		ErrClassResolution, ErrProjection)
}

// InvalidPattern reports a projection pattern that cannot be compiled.
func InvalidPattern(pattern string, reason string) error {
	return mark(errors.Newf("projection pattern %q: %s", pattern, reason),
		ErrInvalidPattern, ErrProjection)
}

func display(path string) string {
	if path == "" {
		return "<root>"
	}

	return path
}
