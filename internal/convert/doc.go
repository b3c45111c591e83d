// Package convert translates a Thrift struct descriptor into a columnar
// message.
//
// The walk is depth-first and keeps source field order. Every source field
// becomes exactly one target field:
//
//	bool                    -> boolean
//	byte, i16, i32          -> int32
//	i64                     -> int64
//	double                  -> double
//	string                  -> binary (STRING)
//	enum                    -> binary (ENUM), values kept as metadata
//	struct                  -> group
//	list<T>, set<T>         -> group (LIST|SET) { repeated group list { element } }
//	map<K,V>                -> group (MAP) { repeated group key_value { key; value } }
//
// Required source fields become required target fields, everything else is
// optional. Collection elements and map keys are always required. Thrift
// field ids are carried over; the synthetic list, element, key_value, key and
// value levels have none.
//
// A projection filter prunes the source before translation, see Prune.
package convert
