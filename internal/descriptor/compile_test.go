package descriptor

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thrift-columnar/internal/diagnostic"
	"thrift-columnar/internal/schemaerr"
	"thrift-columnar/internal/thrift"
)

func mustParse(t *testing.T, src string) *File {
	t.Helper()

	f, err := Parse([]byte(src), "inline.yaml")
	require.NoError(t, err)

	return f
}

func TestCompile(t *testing.T) {
	f, err := LoadFile("testdata/person.yaml")
	require.NoError(t, err)

	set, err := Compile(f)
	require.NoError(t, err)

	assert.Equal(t, []string{"Person", "Address"}, set.Names())
	assert.True(t, set.Diagnostics.IsValid())

	person, ok := set.Struct("Person")
	require.True(t, ok)
	require.Equal(t, 6, person.NumFields())

	name := person.Field(0)
	assert.Equal(t, thrift.Required, name.Requirement())
	assert.Equal(t, thrift.TypeString, name.Type().TypeID())

	tags, ok := person.FieldByName("tags").Type().(*thrift.ListType)
	require.True(t, ok)
	assert.Equal(t, thrift.TypeString, tags.Element().Type().TypeID())

	address, ok := set.Struct("Address")
	require.True(t, ok)
	assert.Same(t, address, person.FieldByName("address").Type())

	scores, ok := person.FieldByName("scores").Type().(*thrift.MapType)
	require.True(t, ok)
	assert.Equal(t, thrift.TypeString, scores.Key().Type().TypeID())
	assert.Equal(t, thrift.TypeDouble, scores.Value().Type().TypeID())
	assert.Equal(t, thrift.Optional, scores.Value().Requirement())

	color, ok := person.FieldByName("color").Type().(*thrift.EnumType)
	require.True(t, ok)
	assert.Equal(t, thrift.DefaultOptional, person.FieldByName("color").Requirement())
	assert.Len(t, color.Values(), 4)

	events, ok := person.FieldByName("events").Type().(*thrift.SetType)
	require.True(t, ok)
	event, ok := events.Element().Type().(*thrift.StructType)
	require.True(t, ok)
	assert.Equal(t, "Person.events", event.Name())
	assert.Equal(t, 2, event.NumFields())

	_, ok = set.Struct("Color")
	assert.False(t, ok, "enums are not record types")
}

func TestCompileAcrossFiles(t *testing.T) {
	a := mustParse(t, `
types:
  - name: Order
    fields:
      - {id: 1, name: customer, ref: Customer}
`)
	b := mustParse(t, `
types:
  - name: Customer
    fields:
      - {id: 1, name: name, type: string}
`)

	set, err := Compile(a, b)
	require.NoError(t, err)

	order, ok := set.Struct("Order")
	require.True(t, ok)
	assert.Equal(t, "Customer", order.Field(0).Type().(*thrift.StructType).Name())
}

func TestCompileDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		code string
	}{
		{
			name: "unsupported version",
			yaml: "version: \"2\"\ntypes: []\n",
			code: diagnostic.CodeUnsupportedVersion,
		},
		{
			name: "missing type name",
			yaml: "types:\n  - fields: [{id: 1, name: a, type: i32}]\n",
			code: diagnostic.CodeMissingName,
		},
		{
			name: "duplicate type",
			yaml: "types:\n  - {name: A, fields: [{id: 1, name: a, type: i32}]}\n  - {name: A, values: [X]}\n",
			code: diagnostic.CodeDuplicateType,
		},
		{
			name: "fields and values",
			yaml: "types:\n  - {name: A, fields: [{id: 1, name: a, type: i32}], values: [X]}\n",
			code: diagnostic.CodeConflictingDecl,
		},
		{
			name: "duplicate field id",
			yaml: "types:\n  - {name: A, fields: [{id: 1, name: a, type: i32}, {id: 1, name: b, type: i32}]}\n",
			code: diagnostic.CodeDuplicateFieldID,
		},
		{
			name: "duplicate field name",
			yaml: "types:\n  - {name: A, fields: [{id: 1, name: a, type: i32}, {id: 2, name: a, type: i32}]}\n",
			code: diagnostic.CodeDuplicateFieldName,
		},
		{
			name: "missing field name",
			yaml: "types:\n  - {name: A, fields: [{id: 1, type: i32}]}\n",
			code: diagnostic.CodeMissingName,
		},
		{
			name: "unknown type",
			yaml: "types:\n  - {name: A, fields: [{id: 1, name: a, type: strng}]}\n",
			code: diagnostic.CodeUnknownType,
		},
		{
			name: "stop is unsupported",
			yaml: "types:\n  - {name: A, fields: [{id: 1, name: a, type: stop}]}\n",
			code: diagnostic.CodeUnsupportedType,
		},
		{
			name: "void is unsupported",
			yaml: "types:\n  - {name: A, fields: [{id: 1, name: a, type: list, element: void}]}\n",
			code: diagnostic.CodeUnsupportedType,
		},
		{
			name: "bad requirement",
			yaml: "types:\n  - {name: A, fields: [{id: 1, name: a, type: i32, requirement: maybe}]}\n",
			code: diagnostic.CodeInvalidRequirement,
		},
		{
			name: "list without element",
			yaml: "types:\n  - {name: A, fields: [{id: 1, name: a, type: list}]}\n",
			code: diagnostic.CodeMissingType,
		},
		{
			name: "map without value",
			yaml: "types:\n  - {name: A, fields: [{id: 1, name: a, type: map, key: string}]}\n",
			code: diagnostic.CodeMissingType,
		},
		{
			name: "no type at all",
			yaml: "types:\n  - {name: A, fields: [{id: 1, name: a}]}\n",
			code: diagnostic.CodeMissingType,
		},
		{
			name: "unresolved ref",
			yaml: "types:\n  - {name: A, fields: [{id: 1, name: a, ref: B}]}\n",
			code: diagnostic.CodeUnresolvedRef,
		},
		{
			name: "self reference",
			yaml: "types:\n  - {name: Node, fields: [{id: 1, name: next, ref: Node}]}\n",
			code: diagnostic.CodeRecursiveRef,
		},
		{
			name: "mutual reference through a list",
			yaml: "types:\n  - {name: A, fields: [{id: 1, name: b, ref: B}]}\n" +
				"  - {name: B, fields: [{id: 1, name: as, type: list, element: {ref: A}}]}\n",
			code: diagnostic.CodeRecursiveRef,
		},
		{
			name: "duplicate enum value",
			yaml: "types:\n  - {name: E, values: [X, X]}\n",
			code: diagnostic.CodeDuplicateEnumValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustParse(t, tt.yaml)

			diags := Validate(f)
			assert.Contains(t, diags.Codes(), tt.code, "%v", diags.All())

			_, err := Compile(f)
			require.Error(t, err)
			assert.True(t, errors.Is(err, schemaerr.ErrInvalidDescriptor))
			assert.Contains(t, err.Error(), "inline.yaml")
		})
	}
}

func TestCompileSuggestions(t *testing.T) {
	f := mustParse(t, `
types:
  - name: Person
    fields:
      - {id: 1, name: address, ref: Adress}
      - {id: 2, name: age, type: i3}
  - name: Address
    fields:
      - {id: 1, name: city, type: string}
`)

	diags := Validate(f)
	require.Len(t, diags.Errors, 2)

	assert.Equal(t, diagnostic.CodeUnresolvedRef, diags.Errors[0].Code)
	assert.Equal(t, "address", diags.Errors[0].FieldPath)
	assert.Equal(t, []string{"Address"}, diags.Errors[0].Suggestions)

	assert.Equal(t, diagnostic.CodeUnknownType, diags.Errors[1].Code)
	assert.Contains(t, diags.Errors[1].Suggestions, "i32")
}

func TestCompileReportsEachProblemOnce(t *testing.T) {
	f := mustParse(t, `
types:
  - name: A
    fields:
      - {id: 1, name: b, ref: B}
      - {id: 2, name: b2, ref: B}
  - name: B
    fields:
      - {id: 1, name: a, ref: A}
`)

	diags := Validate(f)
	assert.Len(t, diags.Errors, 1, "%v", diags.All())
	assert.Equal(t, diagnostic.CodeRecursiveRef, diags.Errors[0].Code)
}

func TestCompileEmptyStructWarns(t *testing.T) {
	f := mustParse(t, "types:\n  - name: Marker\n")

	set, err := Compile(f)
	require.NoError(t, err)

	require.Len(t, set.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeEmptyStruct, set.Diagnostics.Warnings[0].Code)

	st, ok := set.Struct("Marker")
	require.True(t, ok)
	assert.Zero(t, st.NumFields())
}
