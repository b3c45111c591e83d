// Package descriptor loads struct descriptors from YAML files and compiles
// them into thrift struct types.
//
// A descriptor file declares named structs and enums:
//
//	version: "1"
//	types:
//	  - name: Person
//	    fields:
//	      - {id: 1, name: name, requirement: required, type: string}
//	      - {id: 2, name: tags, type: list, element: string}
//	      - {id: 3, name: address, ref: Address}
//	      - id: 4
//	        name: scores
//	        type: map
//	        key: string
//	        value: {type: double, requirement: optional}
//	  - name: Address
//	    fields:
//	      - {id: 1, name: city, type: string}
//	  - name: Color
//	    values: [RED, GREEN, {id: 10, name: BLUE}]
//
// A type is a scalar keyword (bool, byte, i16, i32, i64, double, string), a
// container keyword (list, set, map) with element, key and value types, an
// inline struct or enum, or the name of a declared type. Compile reports
// every problem it finds through diagnostic.Diagnostics before failing.
package descriptor
