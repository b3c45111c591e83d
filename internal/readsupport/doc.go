// Package readsupport is the boundary between the schema converter and a
// columnar reader.
//
// Init decides which schema to request from a file: an explicit read
// schema, the projection of a record type, or the file schema itself.
// PrepareForRead reconciles the requested schema with the record type's
// descriptor, settling the layout of every list, set and map column, and
// hands the resulting Plan to a materializer strategy chosen by the caller.
//
// Record types and strategies are looked up through values the caller
// injects: a TypeRegistry and a Strategies map.
package readsupport
