package thrift

import (
	"thrift-columnar/internal/schemaerr"
)

// Field is a named, numbered member of a struct, or the synthetic element,
// key or value of a collection.
type Field struct {
	name        string
	id          int16
	requirement Requirement
	typ         Type
}

// NewField creates a field. Validation happens when the field is placed into
// a struct.
func NewField(name string, id int16, requirement Requirement, typ Type) *Field {
	return &Field{name: name, id: id, requirement: requirement, typ: typ}
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// ID returns the field's wire id.
func (f *Field) ID() int16 { return f.id }

// Requirement returns the presence contract of the field.
func (f *Field) Requirement() Requirement { return f.requirement }

// Type returns the field type.
func (f *Field) Type() Type { return f.typ }

// IsRequired reports whether the field is Required. DefaultOptional counts
// as optional.
func (f *Field) IsRequired() bool { return f.requirement == Required }

// WithType returns a copy of the field holding a different type.
func (f *Field) WithType(typ Type) *Field {
	return &Field{name: f.name, id: f.id, requirement: f.requirement, typ: typ}
}

// StructType is a record type: an ordered list of fields with unique ids.
type StructType struct {
	name   string
	fields []*Field
}

// NewStruct creates a struct from fields, preserving their order. It fails if
// two fields share an id or a field has no type. The name is only used for
// diagnostics and may be empty.
func NewStruct(name string, fields ...*Field) (*StructType, error) {
	seen := make(map[int16]string, len(fields))

	for _, f := range fields {
		if f == nil {
			return nil, schemaerr.UnsupportedType(name, "nil field")
		}

		if f.typ == nil {
			return nil, schemaerr.UnsupportedType(join(name, f.name), "field has no type")
		}

		if prev, ok := seen[f.id]; ok {
			return nil, schemaerr.DuplicateFieldID(name, f.id, prev, f.name)
		}

		seen[f.id] = f.name
	}

	return &StructType{name: name, fields: append([]*Field(nil), fields...)}, nil
}

// MustStruct is like NewStruct but panics on error.
func MustStruct(name string, fields ...*Field) *StructType {
	s, err := NewStruct(name, fields...)
	if err != nil {
		panic(err)
	}

	return s
}

// Name returns the struct's declared name, possibly empty.
func (s *StructType) Name() string { return s.name }

// Fields returns a copy of the struct's fields in declaration order.
func (s *StructType) Fields() []*Field {
	return append([]*Field(nil), s.fields...)
}

// NumFields returns the number of fields.
func (s *StructType) NumFields() int { return len(s.fields) }

// Field returns the i-th field.
func (s *StructType) Field(i int) *Field { return s.fields[i] }

// FieldByName returns the field with the given name, or nil.
func (s *StructType) FieldByName(name string) *Field {
	for _, f := range s.fields {
		if f.name == name {
			return f
		}
	}

	return nil
}

// FieldNames returns the set of field names.
func (s *StructType) FieldNames() map[string]struct{} {
	names := make(map[string]struct{}, len(s.fields))
	for _, f := range s.fields {
		names[f.name] = struct{}{}
	}

	return names
}

func join(parent, name string) string {
	if parent == "" {
		return name
	}

	return parent + "." + name
}
