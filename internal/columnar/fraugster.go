package columnar

import (
	"regexp"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/fraugster/parquet-go/parquet"
	"github.com/fraugster/parquet-go/parquetschema"
)

// groupHeader matches a group declaration with an optional field id on
// either side of its annotation.
var groupHeader = regexp.MustCompile(
	`\b(required|optional|repeated)\s+group\s+([^\s(){};=]+)\s*(\([^)]*\))?\s*(?:=\s*(-?\d+))?\s*(\([^)]*\))?\s*\{`)

// ParseMessage parses a schema written in the storage format's textual
// notation, e.g. a caller supplied read schema or the schema of an existing
// file. Both canonical and legacy collection layouts are accepted as is.
//
// Field ids on groups, as printed by Message.String, are accepted too.
func ParseMessage(text string) (*Message, error) {
	stripped, groupIDs, err := liftGroupIDs(text)
	if err != nil {
		return nil, err
	}

	sd, err := parquetschema.ParseSchemaDefinition(stripped)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse schema")
	}

	m, err := FromSchemaDefinition(sd)
	if err != nil {
		return nil, err
	}

	rest, err := assignGroupIDs(m.children, groupIDs)
	if err != nil {
		return nil, err
	}

	if len(rest) != 0 {
		return nil, errors.Newf("failed to parse schema: %d group field id(s) left unassigned", len(rest))
	}

	return m, nil
}

// liftGroupIDs removes "= id" from every group header, which the parser only
// accepts on primitives, and returns the ids of all group headers in text
// order. Headers without an id yield NoFieldID.
func liftGroupIDs(text string) (string, []int32, error) {
	var (
		ids  []int32
		werr error
	)

	out := groupHeader.ReplaceAllStringFunc(text, func(header string) string {
		sub := groupHeader.FindStringSubmatch(header)

		id := NoFieldID
		if sub[4] != "" {
			v, err := strconv.ParseInt(sub[4], 10, 32)
			if err != nil && werr == nil {
				werr = errors.Wrapf(err, "invalid field id of group %s", sub[2])
			}

			id = int32(v)
		}

		ids = append(ids, id)

		ann := sub[3]
		if ann == "" {
			ann = sub[5]
		}

		if ann != "" {
			return sub[1] + " group " + sub[2] + " " + ann + " {"
		}

		return sub[1] + " group " + sub[2] + " {"
	})

	return out, ids, werr
}

// assignGroupIDs sets ids on groups in pre-order, the order their headers
// appear in the text, and returns the ids not consumed.
func assignGroupIDs(nodes []Node, ids []int32) ([]int32, error) {
	for _, n := range nodes {
		g, ok := n.(*Group)
		if !ok {
			continue
		}

		if len(ids) == 0 {
			return nil, errors.Newf("failed to parse schema: no field id recorded for group %s", g.name)
		}

		if ids[0] != NoFieldID {
			g.fieldID = ids[0]
		}

		var err error
		if ids, err = assignGroupIDs(g.children, ids[1:]); err != nil {
			return nil, err
		}
	}

	return ids, nil
}

// FromSchemaDefinition converts a fraugster schema definition.
func FromSchemaDefinition(sd *parquetschema.SchemaDefinition) (*Message, error) {
	if sd == nil || sd.RootColumn == nil || sd.RootColumn.SchemaElement == nil {
		return nil, errors.New("schema definition has no root column")
	}

	children, err := fromColumns(sd.RootColumn.Children, sd.RootColumn.SchemaElement.Name)
	if err != nil {
		return nil, err
	}

	return NewMessage(sd.RootColumn.SchemaElement.Name, children...), nil
}

func fromColumns(cols []*parquetschema.ColumnDefinition, path string) ([]Node, error) {
	out := make([]Node, 0, len(cols))

	for _, col := range cols {
		n, err := fromColumn(col, path)
		if err != nil {
			return nil, err
		}

		out = append(out, n)
	}

	return out, nil
}

func fromColumn(col *parquetschema.ColumnDefinition, parent string) (Node, error) {
	el := col.SchemaElement
	if el == nil {
		return nil, errors.Newf("%s: column without schema element", parent)
	}

	path := parent + "." + el.Name

	rep, err := fromFieldRepetition(el.RepetitionType)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	id := NoFieldID
	if el.FieldID != nil {
		id = *el.FieldID
	}

	ann := annotationOf(el)

	if el.Type == nil {
		children, err := fromColumns(col.Children, path)
		if err != nil {
			return nil, err
		}

		return NewGroup(el.Name, rep, ann, id, children...), nil
	}

	physical, err := fromPhysical(*el.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	p := NewPrimitive(el.Name, rep, physical, ann, id)
	if el.TypeLength != nil {
		p.typeLength = *el.TypeLength
	}

	return p, nil
}

func fromFieldRepetition(rt *parquet.FieldRepetitionType) (Repetition, error) {
	if rt == nil {
		return Required, nil
	}

	switch *rt {
	case parquet.FieldRepetitionType_REQUIRED:
		return Required, nil
	case parquet.FieldRepetitionType_OPTIONAL:
		return Optional, nil
	case parquet.FieldRepetitionType_REPEATED:
		return Repeated, nil
	default:
		return 0, errors.Newf("unknown repetition %v", *rt)
	}
}

func fromPhysical(t parquet.Type) (PhysicalType, error) {
	switch t {
	case parquet.Type_BOOLEAN:
		return Boolean, nil
	case parquet.Type_INT32:
		return Int32, nil
	case parquet.Type_INT64:
		return Int64, nil
	case parquet.Type_INT96:
		return Int96, nil
	case parquet.Type_FLOAT:
		return Float, nil
	case parquet.Type_DOUBLE:
		return Double, nil
	case parquet.Type_BYTE_ARRAY:
		return Binary, nil
	case parquet.Type_FIXED_LEN_BYTE_ARRAY:
		return FixedLenByteArray, nil
	default:
		return 0, errors.Newf("unknown physical type %v", t)
	}
}

func annotationOf(el *parquet.SchemaElement) Annotation {
	if lt := el.LogicalType; lt != nil {
		switch {
		case lt.STRING != nil:
			return AnnotationString
		case lt.ENUM != nil:
			return AnnotationEnum
		case lt.LIST != nil:
			return AnnotationList
		case lt.MAP != nil:
			return AnnotationMap
		}
	}

	if el.ConvertedType == nil {
		return NoAnnotation
	}

	switch *el.ConvertedType {
	case parquet.ConvertedType_UTF8:
		return AnnotationString
	case parquet.ConvertedType_ENUM:
		return AnnotationEnum
	case parquet.ConvertedType_LIST:
		return AnnotationList
	case parquet.ConvertedType_MAP:
		return AnnotationMap
	case parquet.ConvertedType_MAP_KEY_VALUE:
		return AnnotationMapKeyValue
	default:
		return NoAnnotation
	}
}

// ToSchemaDefinition exports the schema for fraugster/parquet-go writers.
func (m *Message) ToSchemaDefinition() *parquetschema.SchemaDefinition {
	root := &parquetschema.ColumnDefinition{
		SchemaElement: &parquet.SchemaElement{
			Name:        m.name,
			NumChildren: ptr(int32(len(m.children))),
		},
	}

	for _, c := range m.children {
		root.Children = append(root.Children, toColumn(c))
	}

	return &parquetschema.SchemaDefinition{RootColumn: root}
}

func toColumn(n Node) *parquetschema.ColumnDefinition {
	el := &parquet.SchemaElement{
		Name:           n.Name(),
		RepetitionType: ptr(toFieldRepetition(n.Repetition())),
	}

	if id := n.FieldID(); id != NoFieldID {
		el.FieldID = ptr(id)
	}

	setAnnotation(el, n.Annotation())

	col := &parquetschema.ColumnDefinition{SchemaElement: el}

	switch n := n.(type) {
	case *Primitive:
		el.Type = ptr(toPhysical(n.physical))
		if n.physical == FixedLenByteArray {
			el.TypeLength = ptr(n.typeLength)
		}
	case *Group:
		el.NumChildren = ptr(int32(len(n.children)))
		for _, c := range n.children {
			col.Children = append(col.Children, toColumn(c))
		}
	}

	return col
}

func setAnnotation(el *parquet.SchemaElement, a Annotation) {
	switch a {
	case AnnotationString:
		el.ConvertedType = ptr(parquet.ConvertedType_UTF8)
		el.LogicalType = &parquet.LogicalType{STRING: &parquet.StringType{}}
	case AnnotationEnum:
		el.ConvertedType = ptr(parquet.ConvertedType_ENUM)
		el.LogicalType = &parquet.LogicalType{ENUM: &parquet.EnumType{}}
	case AnnotationList, AnnotationSet:
		el.ConvertedType = ptr(parquet.ConvertedType_LIST)
		el.LogicalType = &parquet.LogicalType{LIST: &parquet.ListType{}}
	case AnnotationMap:
		el.ConvertedType = ptr(parquet.ConvertedType_MAP)
		el.LogicalType = &parquet.LogicalType{MAP: &parquet.MapType{}}
	case AnnotationMapKeyValue:
		el.ConvertedType = ptr(parquet.ConvertedType_MAP_KEY_VALUE)
	case NoAnnotation:
	}
}

func toFieldRepetition(r Repetition) parquet.FieldRepetitionType {
	switch r {
	case Optional:
		return parquet.FieldRepetitionType_OPTIONAL
	case Repeated:
		return parquet.FieldRepetitionType_REPEATED
	default:
		return parquet.FieldRepetitionType_REQUIRED
	}
}

func toPhysical(p PhysicalType) parquet.Type {
	switch p {
	case Boolean:
		return parquet.Type_BOOLEAN
	case Int32:
		return parquet.Type_INT32
	case Int64:
		return parquet.Type_INT64
	case Int96:
		return parquet.Type_INT96
	case Float:
		return parquet.Type_FLOAT
	case Double:
		return parquet.Type_DOUBLE
	case FixedLenByteArray:
		return parquet.Type_FIXED_LEN_BYTE_ARRAY
	default:
		return parquet.Type_BYTE_ARRAY
	}
}

func ptr[T any](v T) *T { return &v }
