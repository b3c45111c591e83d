package convert

import (
	"thrift-columnar/internal/thrift"
)

func scalar(name string, id int16, req thrift.Requirement, typ thrift.TypeID) *thrift.Field {
	return thrift.NewField(name, id, req, thrift.MustScalar(typ))
}

func person() *thrift.StructType {
	return thrift.MustStruct("Person",
		scalar("name", 1, thrift.Required, thrift.TypeString),
		thrift.NewField("tags", 2, thrift.Optional,
			thrift.NewList(scalar("tag", 0, thrift.Required, thrift.TypeString))),
	)
}

func address() *thrift.StructType {
	return thrift.MustStruct("Address",
		scalar("city", 1, thrift.Required, thrift.TypeString),
		scalar("zip", 2, thrift.Optional, thrift.TypeI32),
	)
}

func event() *thrift.StructType {
	return thrift.MustStruct("Event",
		scalar("ts", 1, thrift.Required, thrift.TypeI64),
		scalar("kind", 2, thrift.Optional, thrift.TypeString),
	)
}

func color() *thrift.EnumType {
	return thrift.NewEnum(thrift.EnumValue{ID: 1, Name: "RED"}, thrift.EnumValue{ID: 2, Name: "GREEN"})
}

// record exercises every source type.
func record() *thrift.StructType {
	return thrift.MustStruct("Record",
		scalar("name", 1, thrift.Required, thrift.TypeString),
		thrift.NewField("address", 2, thrift.Optional, address()),
		thrift.NewField("events", 3, thrift.Optional,
			thrift.NewList(thrift.NewField("event", 0, thrift.Required, event()))),
		thrift.NewField("ids", 4, thrift.Optional,
			thrift.NewSet(scalar("id", 0, thrift.Optional, thrift.TypeI32))),
		thrift.NewField("byKey", 5, thrift.Optional,
			thrift.NewMap(
				scalar("k", 1, thrift.Optional, thrift.TypeString),
				thrift.NewField("v", 2, thrift.Optional, event()),
			)),
		thrift.NewField("color", 6, thrift.DefaultOptional, color()),
		scalar("active", 7, thrift.Required, thrift.TypeBool),
		scalar("score", 8, thrift.Optional, thrift.TypeDouble),
		scalar("b", 9, thrift.Optional, thrift.TypeByte),
		scalar("s", 10, thrift.Optional, thrift.TypeI16),
	)
}
