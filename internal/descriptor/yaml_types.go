package descriptor

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// UnmarshalYAML implements yaml.Unmarshaler. A scalar is shorthand for
// {type: <scalar>}.
func (r *TypeRef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}

		*r = TypeRef{Type: name}

		return nil
	case yaml.MappingNode:
		type plain TypeRef

		return node.Decode((*plain)(r))
	default:
		return errors.Newf("line %d: expected a type name or mapping", node.Line)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler. It is needed because the
// embedded TypeRef would otherwise decode the whole field.
func (f *FieldDecl) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.Newf("line %d: field must be a mapping", node.Line)
	}

	var head struct {
		ID   int16  `yaml:"id"`
		Name string `yaml:"name"`
	}

	if err := node.Decode(&head); err != nil {
		return err
	}

	var ref TypeRef
	if err := node.Decode(&ref); err != nil {
		return err
	}

	*f = FieldDecl{ID: head.ID, Name: head.Name, TypeRef: ref}

	return nil
}

// flatRef has the keys of TypeRef without its unmarshaler, so that it can be
// inlined on marshal.
type flatRef TypeRef

// MarshalYAML implements yaml.Marshaler. yaml.v3 drops an inlined struct
// that has its own unmarshaler, so the field is written as one flat mapping.
func (f FieldDecl) MarshalYAML() (interface{}, error) {
	return struct {
		ID      int16   `yaml:"id"`
		Name    string  `yaml:"name"`
		TypeRef flatRef `yaml:",inline"`
	}{ID: f.ID, Name: f.Name, TypeRef: flatRef(f.TypeRef)}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *EnumValues) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return errors.Newf("line %d: enum values must be a sequence", node.Line)
	}

	out := make(EnumValues, 0, len(node.Content))
	next := int32(0)

	for _, item := range node.Content {
		var ev EnumValue

		switch item.Kind {
		case yaml.ScalarNode:
			ev.ID = next
			if err := item.Decode(&ev.Name); err != nil {
				return err
			}
		case yaml.MappingNode:
			if err := item.Decode(&ev); err != nil {
				return err
			}
		default:
			return errors.Newf("line %d: expected an enum name or {id, name}", item.Line)
		}

		out = append(out, ev)
		next = ev.ID + 1
	}

	*v = out

	return nil
}
