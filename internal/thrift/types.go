package thrift

import (
	"fmt"
	"strings"

	"thrift-columnar/internal/schemaerr"
)

// Requirement is the presence contract of a field.
type Requirement int

const (
	// DefaultOptional applies when the IDL carries no explicit requirement,
	// e.g. for synthesized fields. It behaves like Optional.
	DefaultOptional Requirement = iota
	Required
	Optional
)

// String returns the IDL keyword for the requirement.
func (r Requirement) String() string {
	switch r {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case DefaultOptional:
		return "default"
	default:
		return fmt.Sprintf("Requirement(%d)", int(r))
	}
}

// ParseRequirement maps "required", "optional" and "default" (or an empty
// string) to a Requirement.
func ParseRequirement(s string) (Requirement, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "required":
		return Required, true
	case "optional":
		return Optional, true
	case "", "default":
		return DefaultOptional, true
	default:
		return 0, false
	}
}

// Type is one of the concrete source types declared in this package.
type Type interface {
	// TypeID returns the wire tag of the type.
	TypeID() TypeID
	sealed()
}

type (
	BoolType   struct{}
	ByteType   struct{}
	I16Type    struct{}
	I32Type    struct{}
	I64Type    struct{}
	DoubleType struct{}
	StringType struct{}
)

func (*BoolType) TypeID() TypeID   { return TypeBool }
func (*ByteType) TypeID() TypeID   { return TypeByte }
func (*I16Type) TypeID() TypeID    { return TypeI16 }
func (*I32Type) TypeID() TypeID    { return TypeI32 }
func (*I64Type) TypeID() TypeID    { return TypeI64 }
func (*DoubleType) TypeID() TypeID { return TypeDouble }
func (*StringType) TypeID() TypeID { return TypeString }
func (*EnumType) TypeID() TypeID   { return TypeEnum }
func (*StructType) TypeID() TypeID { return TypeStruct }
func (*ListType) TypeID() TypeID   { return TypeList }
func (*SetType) TypeID() TypeID    { return TypeSet }
func (*MapType) TypeID() TypeID    { return TypeMap }

func (*BoolType) sealed()   {}
func (*ByteType) sealed()   {}
func (*I16Type) sealed()    {}
func (*I32Type) sealed()    {}
func (*I64Type) sealed()    {}
func (*DoubleType) sealed() {}
func (*StringType) sealed() {}
func (*EnumType) sealed()   {}
func (*StructType) sealed() {}
func (*ListType) sealed()   {}
func (*SetType) sealed()    {}
func (*MapType) sealed()    {}

var (
	boolType   = &BoolType{}
	byteType   = &ByteType{}
	i16Type    = &I16Type{}
	i32Type    = &I32Type{}
	i64Type    = &I64Type{}
	doubleType = &DoubleType{}
	stringType = &StringType{}
)

// Scalar returns the scalar type for a wire tag. Stop and Void, and any tag
// that needs nested structure, are rejected with an unsupported type error.
func Scalar(id TypeID) (Type, error) {
	switch id {
	case TypeBool:
		return boolType, nil
	case TypeByte:
		return byteType, nil
	case TypeI16:
		return i16Type, nil
	case TypeI32:
		return i32Type, nil
	case TypeI64:
		return i64Type, nil
	case TypeDouble:
		return doubleType, nil
	case TypeString:
		return stringType, nil
	case TypeStop, TypeVoid:
		return nil, schemaerr.UnsupportedType("", "%s is a wire marker, not a field type", id)
	default:
		return nil, schemaerr.UnsupportedType("", "%s is not a scalar type", id)
	}
}

// MustScalar is like Scalar but panics on error. Intended for tests and
// static declarations.
func MustScalar(id TypeID) Type {
	t, err := Scalar(id)
	if err != nil {
		panic(err)
	}

	return t
}

// EnumValue is one member of an enum.
type EnumValue struct {
	ID   int32
	Name string
}

// EnumType is an enum with its values in declaration order.
type EnumType struct {
	values []EnumValue
}

// NewEnum creates an enum type. The slice is copied.
func NewEnum(values ...EnumValue) *EnumType {
	return &EnumType{values: append([]EnumValue(nil), values...)}
}

// Values returns a copy of the enum values.
func (e *EnumType) Values() []EnumValue {
	return append([]EnumValue(nil), e.values...)
}

// ListType is an ordered collection.
type ListType struct {
	elem *Field
}

// NewList creates a list of elem.
func NewList(elem *Field) *ListType { return &ListType{elem: elem} }

// Element returns the element field.
func (l *ListType) Element() *Field { return l.elem }

// SetType is an unordered collection of distinct values.
type SetType struct {
	elem *Field
}

// NewSet creates a set of elem.
func NewSet(elem *Field) *SetType { return &SetType{elem: elem} }

// Element returns the element field.
func (s *SetType) Element() *Field { return s.elem }

// MapType is an associative collection.
type MapType struct {
	key   *Field
	value *Field
}

// NewMap creates a map from key to value.
func NewMap(key, value *Field) *MapType { return &MapType{key: key, value: value} }

// Key returns the key field.
func (m *MapType) Key() *Field { return m.key }

// Value returns the value field.
func (m *MapType) Value() *Field { return m.value }

// ElementOf returns the element field of a list or set, and false for any
// other type.
func ElementOf(t Type) (*Field, bool) {
	switch tt := t.(type) {
	case *ListType:
		return tt.elem, true
	case *SetType:
		return tt.elem, true
	default:
		return nil, false
	}
}
