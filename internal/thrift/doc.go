// Package thrift models the source side of the conversion: record types
// declared in the Thrift IDL.
//
// A record type is a tree of fields. Each field has a name, a stable wire id,
// a presence requirement and a type drawn from a closed set:
//
//   - scalars: bool, byte, i16, i32, i64, double, string
//   - enum, carrying its ordered value list
//   - struct, carrying its ordered child fields
//   - list and set, carrying one element field
//   - map, carrying a key field and a value field
//
// The set is closed: Type has an unexported method, so every switch over
// concrete types in this module can be exhaustive and fail loudly on
// anything it does not recognize.
//
// Values are immutable once built. NewStruct and Scalar are the only
// validation points: the first rejects duplicate sibling ids, the second
// rejects the Stop and Void wire markers.
package thrift
