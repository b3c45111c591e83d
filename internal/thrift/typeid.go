package thrift

import (
	"strings"
)

//go:generate go tool stringer -type=TypeID -trimprefix=Type -output=typeid_string.go

// TypeID is the wire tag of a Thrift type. Values follow the Thrift binary
// protocol; TypeEnum is the extra tag used by descriptors to tell enums
// apart from plain i32 fields.
type TypeID byte

const (
	TypeStop   TypeID = 0
	TypeVoid   TypeID = 1
	TypeBool   TypeID = 2
	TypeByte   TypeID = 3
	TypeDouble TypeID = 4
	TypeI16    TypeID = 6
	TypeI32    TypeID = 8
	TypeI64    TypeID = 10
	TypeString TypeID = 11
	TypeStruct TypeID = 12
	TypeMap    TypeID = 13
	TypeSet    TypeID = 14
	TypeList   TypeID = 15
	TypeEnum   TypeID = 16
)

var typeIDsByName = map[string]TypeID{
	"stop":   TypeStop,
	"void":   TypeVoid,
	"bool":   TypeBool,
	"byte":   TypeByte,
	"i8":     TypeByte,
	"double": TypeDouble,
	"i16":    TypeI16,
	"i32":    TypeI32,
	"i64":    TypeI64,
	"string": TypeString,
	"binary": TypeString,
	"struct": TypeStruct,
	"map":    TypeMap,
	"set":    TypeSet,
	"list":   TypeList,
	"enum":   TypeEnum,
}

// ParseTypeID maps an IDL type keyword ("i32", "list", ...) to its TypeID.
// Matching is case-insensitive.
func ParseTypeID(name string) (TypeID, bool) {
	id, ok := typeIDsByName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// IsScalar reports whether the id denotes a leaf type without nested
// structure.
func (t TypeID) IsScalar() bool {
	switch t {
	case TypeBool, TypeByte, TypeDouble, TypeI16, TypeI32, TypeI64, TypeString:
		return true
	default:
		return false
	}
}

// IsContainer reports whether the id denotes list, set or map.
func (t TypeID) IsContainer() bool {
	switch t {
	case TypeMap, TypeSet, TypeList:
		return true
	default:
		return false
	}
}
