package columnar

import (
	"github.com/apache/arrow/go/v11/parquet"
	"github.com/apache/arrow/go/v11/parquet/schema"
	"github.com/cockroachdb/errors"
)

// ToArrow exports the schema for arrow's parquet writer. Set groups are
// written with the LIST logical type.
func (m *Message) ToArrow() (*schema.Schema, error) {
	fields, err := toArrowFields(m.children)
	if err != nil {
		return nil, err
	}

	root, err := schema.NewGroupNode(m.name, parquet.Repetitions.Required, fields, NoFieldID)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", m.name)
	}

	return schema.NewSchema(root), nil
}

func toArrowFields(nodes []Node) (schema.FieldList, error) {
	fields := make(schema.FieldList, 0, len(nodes))

	for _, n := range nodes {
		f, err := toArrowNode(n)
		if err != nil {
			return nil, err
		}

		fields = append(fields, f)
	}

	return fields, nil
}

func toArrowNode(n Node) (schema.Node, error) {
	rep := toArrowRepetition(n.Repetition())

	switch n := n.(type) {
	case *Primitive:
		physical := toArrowPhysical(n.physical)
		if lt := arrowLogicalType(n.annotation); lt != nil {
			p, err := schema.NewPrimitiveNodeLogical(n.name, rep, lt, physical, int(n.typeLength), n.fieldID)
			if err != nil {
				return nil, errors.Wrapf(err, "column %s", n.name)
			}

			return p, nil
		}

		p, err := schema.NewPrimitiveNode(n.name, rep, physical, n.fieldID, n.typeLength)
		if err != nil {
			return nil, errors.Wrapf(err, "column %s", n.name)
		}

		return p, nil
	case *Group:
		fields, err := toArrowFields(n.children)
		if err != nil {
			return nil, errors.Wrapf(err, "group %s", n.name)
		}

		if lt := arrowLogicalType(n.annotation); lt != nil {
			g, err := schema.NewGroupNodeLogical(n.name, rep, fields, lt, n.fieldID)
			if err != nil {
				return nil, errors.Wrapf(err, "group %s", n.name)
			}

			return g, nil
		}

		g, err := schema.NewGroupNode(n.name, rep, fields, n.fieldID)
		if err != nil {
			return nil, errors.Wrapf(err, "group %s", n.name)
		}

		return g, nil
	default:
		return nil, errors.AssertionFailedf("unexpected node type %T", n)
	}
}

func arrowLogicalType(a Annotation) schema.LogicalType {
	switch a {
	case AnnotationString:
		return schema.StringLogicalType{}
	case AnnotationEnum:
		return schema.EnumLogicalType{}
	case AnnotationList, AnnotationSet:
		return schema.ListLogicalType{}
	case AnnotationMap:
		return schema.MapLogicalType{}
	default:
		// MAP_KEY_VALUE only exists as a converted type; the group is written
		// plain, which readers accept for the repeated level of a map.
		return nil
	}
}

func toArrowRepetition(r Repetition) parquet.Repetition {
	switch r {
	case Optional:
		return parquet.Repetitions.Optional
	case Repeated:
		return parquet.Repetitions.Repeated
	default:
		return parquet.Repetitions.Required
	}
}

func toArrowPhysical(p PhysicalType) parquet.Type {
	switch p {
	case Boolean:
		return parquet.Types.Boolean
	case Int32:
		return parquet.Types.Int32
	case Int64:
		return parquet.Types.Int64
	case Int96:
		return parquet.Types.Int96
	case Float:
		return parquet.Types.Float
	case Double:
		return parquet.Types.Double
	case FixedLenByteArray:
		return parquet.Types.FixedLenByteArray
	default:
		return parquet.Types.ByteArray
	}
}
