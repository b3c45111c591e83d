package convert

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"thrift-columnar/internal/collection"
	"thrift-columnar/internal/columnar"
	"thrift-columnar/internal/projection"
	"thrift-columnar/internal/schemaerr"
	"thrift-columnar/internal/thrift"
)

func TestConvertPerson(t *testing.T) {
	msg, err := Convert(person(), nil)
	require.NoError(t, err)

	require.Equal(t, 2, msg.NumFields())

	name, ok := msg.Field(0).(*columnar.Primitive)
	require.True(t, ok, spew.Sdump(msg.Field(0)))
	assert.Equal(t, "name", name.Name())
	assert.Equal(t, columnar.Required, name.Repetition())
	assert.Equal(t, columnar.Binary, name.PhysicalType())
	assert.Equal(t, columnar.AnnotationString, name.Annotation())
	assert.Equal(t, int32(1), name.FieldID())

	tags, ok := msg.Field(1).(*columnar.Group)
	require.True(t, ok, spew.Sdump(msg.Field(1)))
	assert.Equal(t, columnar.Optional, tags.Repetition())
	assert.Equal(t, columnar.AnnotationList, tags.Annotation())
	require.Equal(t, 1, tags.NumFields())

	inner, ok := tags.Field(0).(*columnar.Group)
	require.True(t, ok)
	assert.Equal(t, columnar.Repeated, inner.Repetition())
	require.Equal(t, 1, inner.NumFields())

	elem, ok := inner.Field(0).(*columnar.Primitive)
	require.True(t, ok)
	assert.Equal(t, columnar.Required, elem.Repetition())
	assert.Equal(t, columnar.AnnotationString, elem.Annotation())
	assert.Equal(t, columnar.NoFieldID, elem.FieldID())

	want := `message Person {
  required binary name (STRING) = 1;
  optional group tags (LIST) = 2 {
    repeated group list {
      required binary element (STRING);
    }
  }
}
`
	assert.Equal(t, want, msg.String())
}

func TestConvertTypeMapping(t *testing.T) {
	msg, err := Convert(record(), projection.Empty())
	require.NoError(t, err)

	want := `message Record {
  required binary name (STRING) = 1;
  optional group address = 2 {
    required binary city (STRING) = 1;
    optional int32 zip = 2;
  }
  optional group events (LIST) = 3 {
    repeated group list {
      required group element {
        required int64 ts = 1;
        optional binary kind (STRING) = 2;
      }
    }
  }
  optional group ids (LIST) = 4 {
    repeated group list {
      required int32 element;
    }
  }
  optional group byKey (MAP) = 5 {
    repeated group key_value {
      required binary key (STRING);
      optional group value {
        required int64 ts = 1;
        optional binary kind (STRING) = 2;
      }
    }
  }
  optional binary color (ENUM) = 6;
  required boolean active = 7;
  optional double score = 8;
  optional int32 b = 9;
  optional int32 s = 10;
}
`
	assert.Equal(t, want, msg.String())

	ids, ok := msg.FieldByName("ids").(*columnar.Group)
	require.True(t, ok)
	assert.Equal(t, columnar.AnnotationSet, ids.Annotation())

	colorNode, ok := msg.FieldByName("color").(*columnar.Primitive)
	require.True(t, ok)
	assert.Equal(t, columnar.AnnotationEnum, colorNode.Annotation())
	assert.Equal(t, []string{"RED", "GREEN"}, colorNode.EnumValues())
}

func TestConvertMessageName(t *testing.T) {
	msg, err := New(WithMessageName("Doc")).Convert(person(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Doc", msg.Name())

	anon := thrift.MustStruct("", scalar("x", 1, thrift.Required, thrift.TypeI32))

	msg, err = Convert(anon, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultMessageName, msg.Name())
}

func TestConvertPreservesOrderAndCounts(t *testing.T) {
	filters := []string{
		"",
		"name",
		"address.city",
		"events.ts",
		"byKey.key",
		"byKey.value.kind",
		"*.city",
		"ids;active",
		"address;events",
		"color;score;b;s",
	}

	for _, spec := range filters {
		t.Run(spec, func(t *testing.T) {
			f := projection.MustParse(spec)

			pruned, err := Prune(record(), f)
			require.NoError(t, err)

			msg, err := Convert(record(), f)
			require.NoError(t, err)

			assertShape(t, pruned, msg.Fields())
		})
	}
}

// assertShape checks that nodes mirror the fields of st one to one, in order,
// descending into nested structs.
func assertShape(t *testing.T, st *thrift.StructType, nodes []columnar.Node) {
	t.Helper()

	require.Len(t, nodes, st.NumFields(), "children of %s", st.Name())

	for i, f := range st.Fields() {
		assert.Equal(t, f.Name(), nodes[i].Name())
		assert.Equal(t, int32(f.ID()), nodes[i].FieldID())

		if nested, ok := f.Type().(*thrift.StructType); ok {
			g, ok := nodes[i].(*columnar.Group)
			require.True(t, ok, spew.Sdump(nodes[i]))
			assertShape(t, nested, g.Fields())
		}
	}
}

func TestConvertProjectionIdempotent(t *testing.T) {
	for _, spec := range []string{"name", "address.zip", "events", "byKey.key", "byKey.value.ts", "*.city;ids"} {
		t.Run(spec, func(t *testing.T) {
			f := projection.MustParse(spec)

			direct, err := Convert(record(), f)
			require.NoError(t, err)

			pruned, err := Prune(record(), f)
			require.NoError(t, err)

			viaPrune, err := Convert(pruned, projection.Empty())
			require.NoError(t, err)

			assert.Equal(t, direct.String(), viaPrune.String())
			assert.Equal(t, direct, viaPrune)

			again, err := Convert(pruned, f)
			require.NoError(t, err)
			assert.Equal(t, direct, again)
		})
	}
}

func TestConvertEmptyProjection(t *testing.T) {
	xy := thrift.MustStruct("XY",
		scalar("x", 1, thrift.Required, thrift.TypeI32),
		scalar("y", 2, thrift.Required, thrift.TypeI32),
	)

	msg, err := Convert(xy, projection.MustParse("nonexistent"))
	require.Error(t, err)
	assert.Nil(t, msg)
	assert.True(t, errors.Is(err, schemaerr.ErrEmptyProjection))
	assert.True(t, errors.Is(err, schemaerr.ErrProjection))
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestConvertDuplicateFieldID(t *testing.T) {
	_, err := thrift.NewStruct("Dup",
		scalar("a", 1, thrift.Required, thrift.TypeI32),
		scalar("b", 1, thrift.Optional, thrift.TypeString),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, schemaerr.ErrDuplicateFieldID))
	assert.True(t, errors.Is(err, schemaerr.ErrSchema))
}

func TestConvertRejectsEmptyStruct(t *testing.T) {
	root := thrift.MustStruct("Root",
		scalar("x", 1, thrift.Required, thrift.TypeI32),
		thrift.NewField("empty", 2, thrift.Optional, thrift.MustStruct("Empty")),
	)

	_, err := Convert(root, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, schemaerr.ErrUnsupportedType))
	assert.Contains(t, err.Error(), "empty")

	// A filter that avoids it converts fine.
	msg, err := Convert(root, projection.MustParse("x"))
	require.NoError(t, err)
	assert.Equal(t, 1, msg.NumFields())

	_, err = Convert(nil, nil)
	assert.True(t, errors.Is(err, schemaerr.ErrUnsupportedType))
}

func TestConvertMissingElement(t *testing.T) {
	root := thrift.MustStruct("Root",
		thrift.NewField("broken", 1, thrift.Optional, thrift.NewList(nil)),
	)

	_, err := Convert(root, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, schemaerr.ErrUnsupportedType))
	assert.Contains(t, err.Error(), "broken")
}

func TestConvertOutputParses(t *testing.T) {
	msg, err := Convert(record(), nil)
	require.NoError(t, err)

	parsed, err := columnar.ParseMessage(msg.String())
	require.NoError(t, err)

	// Enum values and the set annotation are not part of the text form.
	assert.Equal(t, msg.String(), parsed.String())
	assert.Equal(t, msg.Columns(), parsed.Columns())

	for i := 0; i < msg.NumFields(); i++ {
		assert.Equal(t, msg.Field(i).FieldID(), parsed.Field(i).FieldID(), msg.Field(i).Name())
	}
}

func TestConvertCollectionRoundTrip(t *testing.T) {
	src := record()

	msg, err := Convert(src, nil)
	require.NoError(t, err)

	for _, name := range []string{"events", "ids"} {
		t.Run(name, func(t *testing.T) {
			f := src.FieldByName(name)
			elem, ok := thrift.ElementOf(f.Type())
			require.True(t, ok)

			d, err := collection.Resolve(name, msg.FieldByName(name), elem)
			require.NoError(t, err)

			assert.Equal(t, collection.Canonical3Level, d.Encoding)
			assert.Equal(t, 2, d.SkipLevels)
			assert.Equal(t, collection.ElementName, d.Element.Name())
			assert.Equal(t, columnar.Required, d.Element.Repetition())

			_, isStruct := elem.Type().(*thrift.StructType)
			assert.Equal(t, isStruct, !d.Element.IsPrimitive())
		})
	}

	d, err := collection.ResolveMap("byKey", msg.FieldByName("byKey"))
	require.NoError(t, err)
	assert.Equal(t, collection.Canonical3Level, d.Encoding)
	assert.Equal(t, columnar.Required, d.Key.Repetition())
	require.NotNil(t, d.Value)
	assert.Equal(t, columnar.Optional, d.Value.Repetition())
}

func TestConvertWarnsOnUnmatchedPatterns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := New(WithLogger(zap.New(core)))

	msg, err := c.Convert(record(), projection.MustParse("name;adress"))
	require.NoError(t, err)
	assert.Equal(t, 1, msg.NumFields())

	entries := logs.FilterMessage("Projection pattern matched no field").All()
	require.Len(t, entries, 1)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "adress", ctx["pattern"])
	assert.Contains(t, ctx["suggestions"], "address")
}

func TestSourcePaths(t *testing.T) {
	paths := SourcePaths(thrift.MustStruct("R",
		scalar("name", 1, thrift.Required, thrift.TypeString),
		thrift.NewField("address", 2, thrift.Optional, address()),
		thrift.NewField("events", 3, thrift.Optional,
			thrift.NewList(thrift.NewField("e", 0, thrift.Required, event()))),
		thrift.NewField("m", 4, thrift.Optional, thrift.NewMap(
			scalar("k", 1, thrift.Required, thrift.TypeString),
			scalar("v", 2, thrift.Optional, thrift.TypeI32))),
	))

	assert.Equal(t, []string{
		"name",
		"address", "address.city", "address.zip",
		"events", "events.ts", "events.kind",
		"m", "m.key", "m.value",
	}, paths)
}
