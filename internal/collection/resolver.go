package collection

import (
	"fmt"

	"thrift-columnar/internal/columnar"
	"thrift-columnar/internal/schemaerr"
	"thrift-columnar/internal/thrift"
)

// Names of the synthetic levels written by ListShape and MapShape.
const (
	ListRepeatedName = "list"
	ElementName      = "element"
	MapRepeatedName  = "key_value"
	KeyName          = "key"
	ValueName        = "value"
)

// Encoding is the physical layout of a repeated collection.
type Encoding int

const (
	// Canonical3Level is an annotated outer group holding one repeated
	// group, which holds exactly one element field.
	Canonical3Level Encoding = iota
	// Legacy2Level is an outer group holding a repeated field that is either
	// the element itself or a single-field wrapper around it.
	Legacy2Level
)

// String returns a readable name of the encoding.
func (e Encoding) String() string {
	switch e {
	case Canonical3Level:
		return "3-level"
	case Legacy2Level:
		return "2-level"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ListShape builds the canonical layout of a list or set:
//
//	<rep> group <name> (LIST|SET) {
//	  repeated group list {
//	    <element>;
//	  }
//	}
//
// The element node is expected to be named ElementName already.
func ListShape(name string, rep columnar.Repetition, ann columnar.Annotation, fieldID int32, element columnar.Node) *columnar.Group {
	return columnar.NewGroup(name, rep, ann, fieldID,
		columnar.NewGroup(ListRepeatedName, columnar.Repeated, columnar.NoAnnotation, columnar.NoFieldID, element),
	)
}

// MapShape builds the canonical layout of a map:
//
//	<rep> group <name> (MAP) {
//	  repeated group key_value {
//	    required <key>;
//	    <value>;
//	  }
//	}
func MapShape(name string, rep columnar.Repetition, fieldID int32, key, value columnar.Node) *columnar.Group {
	return columnar.NewGroup(name, rep, columnar.AnnotationMap, fieldID,
		columnar.NewGroup(MapRepeatedName, columnar.Repeated, columnar.NoAnnotation, columnar.NoFieldID, key, value),
	)
}

// IsElementType reports whether repeated, the node directly under the
// repetition boundary of a list, is the element itself (true) or a synthetic
// single-field wrapper around it (false).
//
// It never guesses: a primitive or a group without exactly one field cannot
// be a wrapper. A single-field group is the element when the expected
// element is a struct that declares a field of that name. Anything else is a
// wrapper.
//
// A struct element whose only remaining field happens to carry the wrapper's
// inner name is classified as the element. Files do not record enough to do
// better.
func IsElementType(path string, repeated columnar.Node, expected *thrift.Field) (bool, error) {
	if expected == nil {
		return false, schemaerr.AmbiguousCollection(path)
	}

	g, ok := repeated.(*columnar.Group)
	if !ok || g.NumFields() != 1 {
		return true, nil
	}

	if st, ok := expected.Type().(*thrift.StructType); ok {
		_, member := st.FieldNames()[g.Field(0).Name()]
		return member, nil
	}

	return false, nil
}

// Decision is the resolved layout of one list or set column.
type Decision struct {
	// Path is the dotted path of the collection field.
	Path string
	// Encoding is the detected layout.
	Encoding Encoding
	// Repeated is the node directly under the repetition boundary.
	Repeated columnar.Node
	// Element is the node holding element values.
	Element columnar.Node
	// SkipLevels is the number of levels between the collection field and
	// the element: 0 for a bare repeated field, 1 when Repeated is the
	// element, 2 when Repeated is a wrapper.
	SkipLevels int
}

// IsWrapped reports whether a synthetic wrapper level must be skipped to
// reach the element.
func (d Decision) IsWrapped() bool {
	return d.Repeated != d.Element
}

// Resolve determines how a list or set stored as field is laid out, given
// the element schema the reader expects.
//
// field is normally an annotated group with one repeated child. A field that
// is itself repeated is the oldest layout, where the field is both the
// collection and its element.
func Resolve(path string, field columnar.Node, expected *thrift.Field) (Decision, error) {
	if expected == nil {
		return Decision{}, schemaerr.AmbiguousCollection(path)
	}

	if field.Repetition() == columnar.Repeated {
		return Decision{Path: path, Encoding: Legacy2Level, Repeated: field, Element: field}, nil
	}

	outer, ok := field.(*columnar.Group)
	if !ok {
		return Decision{}, schemaerr.InvalidCollection(path, "%s column is neither a group nor repeated", field.Repetition())
	}

	repeated, err := singleRepeatedChild(path, outer)
	if err != nil {
		return Decision{}, err
	}

	isElement, err := IsElementType(path, repeated, expected)
	if err != nil {
		return Decision{}, err
	}

	if isElement {
		return Decision{Path: path, Encoding: Legacy2Level, Repeated: repeated, Element: repeated, SkipLevels: 1}, nil
	}

	wrapper := repeated.(*columnar.Group)
	element := wrapper.Field(0)

	enc := Legacy2Level
	if wrapper.Name() == ListRepeatedName && element.Name() == ElementName {
		enc = Canonical3Level
	}

	return Decision{Path: path, Encoding: enc, Repeated: repeated, Element: element, SkipLevels: 2}, nil
}

// MapDecision is the resolved layout of one map column.
type MapDecision struct {
	Path     string
	Encoding Encoding
	Repeated *columnar.Group
	Key      columnar.Node
	// Value is nil when the file stores keys only.
	Value columnar.Node
}

// ResolveMap locates the repeated key/value level of a map column and its
// key and value children. Children named "key" and "value" are preferred;
// otherwise the first child is the key and the second the value.
func ResolveMap(path string, field columnar.Node) (MapDecision, error) {
	outer, ok := field.(*columnar.Group)
	if !ok {
		return MapDecision{}, schemaerr.InvalidCollection(path, "map column is not a group")
	}

	child, err := singleRepeatedChild(path, outer)
	if err != nil {
		return MapDecision{}, err
	}

	kv, ok := child.(*columnar.Group)
	if !ok || kv.NumFields() < 1 || kv.NumFields() > 2 {
		return MapDecision{}, schemaerr.InvalidCollection(path, "repeated level %q must be a group with a key and an optional value", child.Name())
	}

	d := MapDecision{Path: path, Encoding: Legacy2Level, Repeated: kv}
	if kv.Name() == MapRepeatedName && kv.Annotation() == columnar.NoAnnotation {
		d.Encoding = Canonical3Level
	}

	d.Key = kv.FieldByName(KeyName)
	d.Value = kv.FieldByName(ValueName)

	if d.Key == nil {
		d.Key = kv.Field(0)
		if kv.NumFields() == 2 {
			d.Value = kv.Field(1)
		}
	}

	return d, nil
}

func singleRepeatedChild(path string, outer *columnar.Group) (columnar.Node, error) {
	if outer.NumFields() != 1 {
		return nil, schemaerr.InvalidCollection(path, "expected exactly one repeated child, found %d fields", outer.NumFields())
	}

	child := outer.Field(0)
	if child.Repetition() != columnar.Repeated {
		return nil, schemaerr.InvalidCollection(path, "child %q is %s, not repeated", child.Name(), child.Repetition())
	}

	return child, nil
}
