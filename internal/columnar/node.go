package columnar

import (
	"fmt"
)

// Repetition is the presence contract of a column or group.
type Repetition int

const (
	Required Repetition = iota
	Optional
	Repeated
)

// String returns the schema keyword for the repetition.
func (r Repetition) String() string {
	switch r {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Repeated:
		return "repeated"
	default:
		return fmt.Sprintf("Repetition(%d)", int(r))
	}
}

// PhysicalType is the storage type of a leaf column.
type PhysicalType int

const (
	Boolean PhysicalType = iota
	Int32
	Int64
	Int96
	Float
	Double
	Binary
	FixedLenByteArray
)

// String returns the schema keyword for the physical type.
func (p PhysicalType) String() string {
	switch p {
	case Boolean:
		return "boolean"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Int96:
		return "int96"
	case Float:
		return "float"
	case Double:
		return "double"
	case Binary:
		return "binary"
	case FixedLenByteArray:
		return "fixed_len_byte_array"
	default:
		return fmt.Sprintf("PhysicalType(%d)", int(p))
	}
}

// Annotation records the logical meaning of a node without changing its
// physical layout.
type Annotation int

const (
	NoAnnotation Annotation = iota
	AnnotationString
	AnnotationEnum
	AnnotationList
	AnnotationSet
	AnnotationMap
	AnnotationMapKeyValue
)

// String returns the annotation keyword, or "" for NoAnnotation.
func (a Annotation) String() string {
	switch a {
	case NoAnnotation:
		return ""
	case AnnotationString:
		return "STRING"
	case AnnotationEnum:
		return "ENUM"
	case AnnotationList:
		return "LIST"
	case AnnotationSet:
		return "SET"
	case AnnotationMap:
		return "MAP"
	case AnnotationMapKeyValue:
		return "MAP_KEY_VALUE"
	default:
		return fmt.Sprintf("Annotation(%d)", int(a))
	}
}

// IsCollection reports whether the annotation marks a list, set or map group.
func (a Annotation) IsCollection() bool {
	return a == AnnotationList || a == AnnotationSet || a == AnnotationMap || a == AnnotationMapKeyValue
}

// NoFieldID marks a node that carries no field id, such as the synthetic
// levels of a collection.
const NoFieldID int32 = -1

// Node is either a *Primitive or a *Group.
type Node interface {
	Name() string
	Repetition() Repetition
	Annotation() Annotation
	FieldID() int32
	IsPrimitive() bool
	sealed()
}

// Primitive is a leaf column.
type Primitive struct {
	name       string
	repetition Repetition
	physical   PhysicalType
	annotation Annotation
	fieldID    int32
	typeLength int32
	enumValues []string
}

// NewPrimitive creates a leaf column.
func NewPrimitive(name string, rep Repetition, physical PhysicalType, ann Annotation, fieldID int32) *Primitive {
	return &Primitive{name: name, repetition: rep, physical: physical, annotation: ann, fieldID: fieldID}
}

// NewEnumPrimitive creates a binary leaf annotated as an enum. The values are
// descriptive metadata only; the column physically accepts any string.
func NewEnumPrimitive(name string, rep Repetition, fieldID int32, values []string) *Primitive {
	p := NewPrimitive(name, rep, Binary, AnnotationEnum, fieldID)
	p.enumValues = append([]string(nil), values...)

	return p
}

// NewFixedPrimitive creates a fixed length byte array column.
func NewFixedPrimitive(name string, rep Repetition, length int32, ann Annotation, fieldID int32) *Primitive {
	p := NewPrimitive(name, rep, FixedLenByteArray, ann, fieldID)
	p.typeLength = length

	return p
}

func (p *Primitive) Name() string           { return p.name }
func (p *Primitive) Repetition() Repetition { return p.repetition }
func (p *Primitive) Annotation() Annotation { return p.annotation }
func (p *Primitive) FieldID() int32         { return p.fieldID }
func (p *Primitive) IsPrimitive() bool      { return true }
func (*Primitive) sealed()                  {}

// PhysicalType returns the storage type of the column.
func (p *Primitive) PhysicalType() PhysicalType { return p.physical }

// TypeLength returns the byte width of a fixed length column, 0 otherwise.
func (p *Primitive) TypeLength() int32 { return p.typeLength }

// EnumValues returns a copy of the enum value names attached to the column.
func (p *Primitive) EnumValues() []string {
	return append([]string(nil), p.enumValues...)
}

// Group is a nested node holding ordered children.
type Group struct {
	name       string
	repetition Repetition
	annotation Annotation
	fieldID    int32
	children   []Node
}

// NewGroup creates a group. The children slice is copied.
func NewGroup(name string, rep Repetition, ann Annotation, fieldID int32, children ...Node) *Group {
	return &Group{
		name:       name,
		repetition: rep,
		annotation: ann,
		fieldID:    fieldID,
		children:   append([]Node(nil), children...),
	}
}

func (g *Group) Name() string           { return g.name }
func (g *Group) Repetition() Repetition { return g.repetition }
func (g *Group) Annotation() Annotation { return g.annotation }
func (g *Group) FieldID() int32         { return g.fieldID }
func (g *Group) IsPrimitive() bool      { return false }
func (*Group) sealed()                  {}

// NumFields returns the number of children.
func (g *Group) NumFields() int { return len(g.children) }

// Field returns the i-th child.
func (g *Group) Field(i int) Node { return g.children[i] }

// Fields returns a copy of the children.
func (g *Group) Fields() []Node { return append([]Node(nil), g.children...) }

// FieldByName returns the child with the given name, or nil.
func (g *Group) FieldByName(name string) Node {
	return fieldByName(g.children, name)
}

// Message is the document root of a schema. It has no repetition.
type Message struct {
	name     string
	children []Node
}

// NewMessage creates a schema root. The children slice is copied.
func NewMessage(name string, children ...Node) *Message {
	return &Message{name: name, children: append([]Node(nil), children...)}
}

// Name returns the message name.
func (m *Message) Name() string { return m.name }

// NumFields returns the number of top-level fields.
func (m *Message) NumFields() int { return len(m.children) }

// Field returns the i-th top-level field.
func (m *Message) Field(i int) Node { return m.children[i] }

// Fields returns a copy of the top-level fields.
func (m *Message) Fields() []Node { return append([]Node(nil), m.children...) }

// FieldByName returns the top-level field with the given name, or nil.
func (m *Message) FieldByName(name string) Node {
	return fieldByName(m.children, name)
}

// Columns returns the dotted paths of all leaf columns in positional order.
func (m *Message) Columns() [][]string {
	var out [][]string

	var walk func(prefix []string, nodes []Node)
	walk = func(prefix []string, nodes []Node) {
		for _, n := range nodes {
			path := append(append([]string(nil), prefix...), n.Name())
			if g, ok := n.(*Group); ok {
				walk(path, g.children)
				continue
			}

			out = append(out, path)
		}
	}
	walk(nil, m.children)

	return out
}

func fieldByName(nodes []Node, name string) Node {
	for _, n := range nodes {
		if n.Name() == name {
			return n
		}
	}

	return nil
}
