package collection

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thrift-columnar/internal/columnar"
	"thrift-columnar/internal/schemaerr"
	"thrift-columnar/internal/thrift"
)

func stringElem() *thrift.Field {
	return thrift.NewField("tags", 1, thrift.Required, thrift.MustScalar(thrift.TypeString))
}

func pointElem(names ...string) *thrift.Field {
	fields := make([]*thrift.Field, len(names))
	for i, n := range names {
		fields[i] = thrift.NewField(n, int16(i+1), thrift.Required, thrift.MustScalar(thrift.TypeI32))
	}

	return thrift.NewField("points", 1, thrift.Required, thrift.MustStruct("Point", fields...))
}

func leaf(name string, rep columnar.Repetition) *columnar.Primitive {
	return columnar.NewPrimitive(name, rep, columnar.Int32, columnar.NoAnnotation, columnar.NoFieldID)
}

func group(name string, rep columnar.Repetition, children ...columnar.Node) *columnar.Group {
	return columnar.NewGroup(name, rep, columnar.NoAnnotation, columnar.NoFieldID, children...)
}

func TestIsElementType(t *testing.T) {
	tests := []struct {
		name     string
		repeated columnar.Node
		expected *thrift.Field
		want     bool
	}{
		{
			name:     "primitive is always the element",
			repeated: leaf("tags_tuple", columnar.Repeated),
			expected: stringElem(),
			want:     true,
		},
		{
			name:     "multi-field group is the element",
			repeated: group("points_tuple", columnar.Repeated, leaf("x", columnar.Required), leaf("y", columnar.Required)),
			expected: pointElem("x", "y"),
			want:     true,
		},
		{
			name:     "empty group is the element",
			repeated: group("points_tuple", columnar.Repeated),
			expected: pointElem("x"),
			want:     true,
		},
		{
			name:     "single field named like a struct member is the element",
			repeated: group("points_tuple", columnar.Repeated, leaf("x", columnar.Required)),
			expected: pointElem("x", "y"),
			want:     true,
		},
		{
			name: "single field not a struct member is a wrapper",
			repeated: group("list", columnar.Repeated,
				group("element", columnar.Required, leaf("x", columnar.Required), leaf("y", columnar.Required))),
			expected: pointElem("x", "y"),
			want:     false,
		},
		{
			name:     "single-field group around a scalar element is a wrapper",
			repeated: group("list", columnar.Repeated, leaf("element", columnar.Required)),
			expected: stringElem(),
			want:     false,
		},
		{
			// Known ambiguity: a projected struct element whose only field is
			// named like the wrapper's inner field looks like the element.
			name:     "struct member named element wins",
			repeated: group("list", columnar.Repeated, leaf("element", columnar.Required)),
			expected: pointElem("element", "other"),
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsElementType("f", tt.repeated, tt.expected)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsElementTypeWithoutExpectation(t *testing.T) {
	_, err := IsElementType("a.tags", leaf("tags", columnar.Repeated), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, schemaerr.ErrAmbiguousCollection))
	assert.Contains(t, err.Error(), "a.tags")
}

func TestResolveCanonical(t *testing.T) {
	element := columnar.NewPrimitive(ElementName, columnar.Required, columnar.Binary, columnar.AnnotationString, columnar.NoFieldID)
	field := ListShape("tags", columnar.Optional, columnar.AnnotationList, 2, element)

	d, err := Resolve("tags", field, stringElem())
	require.NoError(t, err)

	assert.Equal(t, Canonical3Level, d.Encoding)
	assert.Equal(t, 2, d.SkipLevels)
	assert.Same(t, element, d.Element)
	assert.Equal(t, ListRepeatedName, d.Repeated.Name())
	assert.True(t, d.IsWrapped())
}

func TestResolveLegacyElement(t *testing.T) {
	repeated := leaf("tags_tuple", columnar.Repeated)
	field := columnar.NewGroup("tags", columnar.Optional, columnar.AnnotationList, 2, repeated)

	d, err := Resolve("tags", field, stringElem())
	require.NoError(t, err)

	assert.Equal(t, Legacy2Level, d.Encoding)
	assert.Equal(t, 1, d.SkipLevels)
	assert.Same(t, repeated, d.Element)
	assert.False(t, d.IsWrapped())
}

func TestResolveLegacyWrapper(t *testing.T) {
	inner := group("points", columnar.Required, leaf("x", columnar.Required), leaf("y", columnar.Required))
	field := columnar.NewGroup("points", columnar.Optional, columnar.AnnotationList, 1,
		group("array", columnar.Repeated, inner))

	d, err := Resolve("points", field, pointElem("x", "y"))
	require.NoError(t, err)

	assert.Equal(t, Legacy2Level, d.Encoding)
	assert.Equal(t, 2, d.SkipLevels)
	assert.Same(t, inner, d.Element)
}

func TestResolveBareRepeated(t *testing.T) {
	field := leaf("ids", columnar.Repeated)

	d, err := Resolve("ids", field, stringElem())
	require.NoError(t, err)

	assert.Equal(t, Legacy2Level, d.Encoding)
	assert.Equal(t, 0, d.SkipLevels)
	assert.Same(t, field, d.Element)
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name  string
		field columnar.Node
		want  error
	}{
		{"optional primitive", leaf("x", columnar.Optional), schemaerr.ErrInvalidCollection},
		{"two children", columnar.NewGroup("x", columnar.Optional, columnar.AnnotationList, 1,
			leaf("a", columnar.Repeated), leaf("b", columnar.Repeated)), schemaerr.ErrInvalidCollection},
		{"child not repeated", columnar.NewGroup("x", columnar.Optional, columnar.AnnotationList, 1,
			leaf("a", columnar.Required)), schemaerr.ErrInvalidCollection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve("x", tt.field, stringElem())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))
			assert.True(t, errors.Is(err, schemaerr.ErrSchema))
		})
	}

	_, err := Resolve("x", leaf("x", columnar.Repeated), nil)
	assert.True(t, errors.Is(err, schemaerr.ErrAmbiguousCollection))
}

func TestResolveMap(t *testing.T) {
	key := columnar.NewPrimitive(KeyName, columnar.Required, columnar.Binary, columnar.AnnotationString, columnar.NoFieldID)
	value := leaf(ValueName, columnar.Optional)

	d, err := ResolveMap("m", MapShape("m", columnar.Optional, 3, key, value))
	require.NoError(t, err)
	assert.Equal(t, Canonical3Level, d.Encoding)
	assert.Same(t, key, d.Key)
	assert.Same(t, value, d.Value)

	legacy := columnar.NewGroup("m", columnar.Optional, columnar.AnnotationMap, 3,
		columnar.NewGroup("map", columnar.Repeated, columnar.AnnotationMapKeyValue, columnar.NoFieldID,
			leaf("k", columnar.Required), leaf("v", columnar.Optional)))

	d, err = ResolveMap("m", legacy)
	require.NoError(t, err)
	assert.Equal(t, Legacy2Level, d.Encoding)
	assert.Equal(t, "k", d.Key.Name())
	assert.Equal(t, "v", d.Value.Name())

	keysOnly := columnar.NewGroup("m", columnar.Optional, columnar.AnnotationMap, 3,
		group(MapRepeatedName, columnar.Repeated, key))

	d, err = ResolveMap("m", keysOnly)
	require.NoError(t, err)
	assert.Same(t, key, d.Key)
	assert.Nil(t, d.Value)

	_, err = ResolveMap("m", leaf("m", columnar.Optional))
	assert.True(t, errors.Is(err, schemaerr.ErrInvalidCollection))

	_, err = ResolveMap("m", columnar.NewGroup("m", columnar.Optional, columnar.AnnotationMap, 3,
		leaf("key_value", columnar.Repeated)))
	assert.True(t, errors.Is(err, schemaerr.ErrInvalidCollection))
}

func TestEncodingString(t *testing.T) {
	assert.Equal(t, "3-level", Canonical3Level.String())
	assert.Equal(t, "2-level", Legacy2Level.String())
}
