package columnar

import (
	"fmt"
	"strings"
)

const indentWidth = 2

// String prints the schema in the storage format's textual notation:
//
//	message Person {
//	  required binary name (STRING) = 1;
//	}
//
// Set annotations are printed as LIST, since the format has no set type.
func (m *Message) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "message %s {\n", m.name)
	for _, c := range m.children {
		writeNode(&sb, c, 1)
	}
	sb.WriteString("}\n")

	return sb.String()
}

func writeNode(sb *strings.Builder, n Node, depth int) {
	sb.WriteString(strings.Repeat(" ", depth*indentWidth))
	sb.WriteString(n.Repetition().String())
	sb.WriteByte(' ')

	switch n := n.(type) {
	case *Primitive:
		sb.WriteString(n.physical.String())
		if n.physical == FixedLenByteArray {
			fmt.Fprintf(sb, "(%d)", n.typeLength)
		}
	case *Group:
		sb.WriteString("group")
	}

	sb.WriteByte(' ')
	sb.WriteString(n.Name())

	if ann := printedAnnotation(n.Annotation()); ann != "" {
		fmt.Fprintf(sb, " (%s)", ann)
	}

	if id := n.FieldID(); id != NoFieldID {
		fmt.Fprintf(sb, " = %d", id)
	}

	g, ok := n.(*Group)
	if !ok {
		sb.WriteString(";\n")
		return
	}

	sb.WriteString(" {\n")
	for _, c := range g.children {
		writeNode(sb, c, depth+1)
	}
	sb.WriteString(strings.Repeat(" ", depth*indentWidth))
	sb.WriteString("}\n")
}

func printedAnnotation(a Annotation) string {
	if a == AnnotationSet {
		return AnnotationList.String()
	}

	return a.String()
}
