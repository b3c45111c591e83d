// Package columnar models the target side of the conversion: the schema of
// a columnar file, built from typed leaf columns and groups with explicit
// repetition.
//
// The model is deliberately small and immutable. It can be printed in the
// storage format's textual notation, parsed from it (see ParseMessage), and
// exported to the schema types of the arrow and fraugster parquet writers.
package columnar
