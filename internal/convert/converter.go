package convert

import (
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"thrift-columnar/internal/collection"
	"thrift-columnar/internal/columnar"
	"thrift-columnar/internal/match"
	"thrift-columnar/internal/projection"
	"thrift-columnar/internal/schemaerr"
	"thrift-columnar/internal/thrift"
)

// DefaultMessageName names the message when neither an option nor the root
// struct provides one.
const DefaultMessageName = "ParquetSchema"

// Path segments addressing map keys and values in projection patterns.
const (
	keySegment   = collection.KeyName
	valueSegment = collection.ValueName
)

// maxSuggestions bounds the "did you mean" list of an unmatched pattern.
const maxSuggestions = 3

// Converter converts struct descriptors into columnar messages. It holds no
// per-call state and may be shared.
type Converter struct {
	messageName string
	logger      *zap.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithMessageName overrides the name of produced messages.
func WithMessageName(name string) Option {
	return func(c *Converter) {
		c.messageName = name
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// New returns a Converter with the given options applied.
func New(opts ...Option) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	return c
}

// Convert converts root with a default Converter.
func Convert(root *thrift.StructType, filter *projection.Filter) (*columnar.Message, error) {
	return New().Convert(root, filter)
}

// Convert prunes root with filter and translates what is left. A nil or
// empty filter keeps every field.
//
// A struct without fields, at any level, fails with an unsupported type
// error: a columnar group must hold at least one child.
func (c *Converter) Convert(root *thrift.StructType, filter *projection.Filter) (*columnar.Message, error) {
	if root == nil {
		return nil, schemaerr.UnsupportedType("", "nil root struct")
	}

	p := newPruner(filter)

	pruned, err := p.prune(root)
	if err == nil || errors.Is(err, schemaerr.ErrEmptyProjection) {
		c.reportUnmatched(root, p.unmatched())
	}

	if err != nil {
		return nil, err
	}

	children, err := c.convertStruct(nil, pruned)
	if err != nil {
		return nil, err
	}

	msg := columnar.NewMessage(c.nameFor(root), children...)

	c.logger.Debug("Converted schema",
		zap.String("type", root.Name()),
		zap.String("filter", filter.String()),
		zap.Int("fields", msg.NumFields()),
		zap.Int("columns", len(msg.Columns())),
	)

	return msg, nil
}

func (c *Converter) nameFor(root *thrift.StructType) string {
	switch {
	case c.messageName != "":
		return c.messageName
	case root.Name() != "":
		return root.Name()
	default:
		return DefaultMessageName
	}
}

func (c *Converter) reportUnmatched(root *thrift.StructType, unmatched []string) {
	if len(unmatched) == 0 {
		return
	}

	paths := SourcePaths(root)

	for _, pat := range unmatched {
		c.logger.Warn("Projection pattern matched no field",
			zap.String("type", root.Name()),
			zap.String("pattern", pat),
			zap.Strings("suggestions", match.Suggest(pat, paths, maxSuggestions)),
		)
	}
}

func (c *Converter) convertStruct(path []string, st *thrift.StructType) ([]columnar.Node, error) {
	if st.NumFields() == 0 {
		return nil, schemaerr.UnsupportedType(strings.Join(path, "."), "struct %s has no fields", st.Name())
	}

	out := make([]columnar.Node, 0, st.NumFields())

	for _, f := range st.Fields() {
		n, err := c.convertType(appendPath(path, f.Name()), f.Name(), repetitionOf(f), int32(f.ID()), f.Type())
		if err != nil {
			return nil, err
		}

		out = append(out, n)
	}

	return out, nil
}

func (c *Converter) convertType(path []string, name string, rep columnar.Repetition, id int32, typ thrift.Type) (columnar.Node, error) {
	switch t := typ.(type) {
	case *thrift.BoolType:
		return columnar.NewPrimitive(name, rep, columnar.Boolean, columnar.NoAnnotation, id), nil
	case *thrift.ByteType, *thrift.I16Type, *thrift.I32Type:
		return columnar.NewPrimitive(name, rep, columnar.Int32, columnar.NoAnnotation, id), nil
	case *thrift.I64Type:
		return columnar.NewPrimitive(name, rep, columnar.Int64, columnar.NoAnnotation, id), nil
	case *thrift.DoubleType:
		return columnar.NewPrimitive(name, rep, columnar.Double, columnar.NoAnnotation, id), nil
	case *thrift.StringType:
		return columnar.NewPrimitive(name, rep, columnar.Binary, columnar.AnnotationString, id), nil
	case *thrift.EnumType:
		values := t.Values()
		names := make([]string, len(values))

		for i, v := range values {
			names[i] = v.Name
		}

		return columnar.NewEnumPrimitive(name, rep, id, names), nil
	case *thrift.StructType:
		children, err := c.convertStruct(path, t)
		if err != nil {
			return nil, err
		}

		return columnar.NewGroup(name, rep, columnar.NoAnnotation, id, children...), nil
	case *thrift.ListType:
		return c.convertList(path, name, rep, columnar.AnnotationList, id, t.Element())
	case *thrift.SetType:
		return c.convertList(path, name, rep, columnar.AnnotationSet, id, t.Element())
	case *thrift.MapType:
		if t.Key() == nil || t.Value() == nil {
			return nil, schemaerr.UnsupportedType(strings.Join(path, "."), "map without key or value")
		}

		key, err := c.convertType(appendPath(path, keySegment), collection.KeyName,
			columnar.Required, columnar.NoFieldID, t.Key().Type())
		if err != nil {
			return nil, err
		}

		value, err := c.convertType(appendPath(path, valueSegment), collection.ValueName,
			repetitionOf(t.Value()), columnar.NoFieldID, t.Value().Type())
		if err != nil {
			return nil, err
		}

		return collection.MapShape(name, rep, id, key, value), nil
	case nil:
		return nil, schemaerr.UnsupportedType(strings.Join(path, "."), "missing type")
	default:
		return nil, schemaerr.UnsupportedType(strings.Join(path, "."), "%T", t)
	}
}

func (c *Converter) convertList(path []string, name string, rep columnar.Repetition, ann columnar.Annotation,
	id int32, elem *thrift.Field,
) (columnar.Node, error) {
	if elem == nil {
		return nil, schemaerr.UnsupportedType(strings.Join(path, "."), "collection without element")
	}

	element, err := c.convertType(path, collection.ElementName, columnar.Required, columnar.NoFieldID, elem.Type())
	if err != nil {
		return nil, err
	}

	return collection.ListShape(name, rep, ann, id, element), nil
}

func repetitionOf(f *thrift.Field) columnar.Repetition {
	if f.IsRequired() {
		return columnar.Required
	}

	return columnar.Optional
}

// SourcePaths lists the dotted projection paths of every field reachable
// from root, in walk order. Map keys and values appear under "key" and
// "value" segments; list and set elements share their collection's path.
func SourcePaths(root *thrift.StructType) []string {
	if root == nil {
		return nil
	}

	var out []string

	var walk func(prefix string, t thrift.Type)

	walk = func(prefix string, t thrift.Type) {
		switch t := t.(type) {
		case *thrift.StructType:
			for _, f := range t.Fields() {
				p := f.Name()
				if prefix != "" {
					p = prefix + "." + p
				}

				out = append(out, p)
				walk(p, f.Type())
			}
		case *thrift.ListType, *thrift.SetType:
			if elem, ok := thrift.ElementOf(t); ok && elem != nil {
				walk(prefix, elem.Type())
			}
		case *thrift.MapType:
			segments := [2]string{keySegment, valueSegment}

			for i, f := range [2]*thrift.Field{t.Key(), t.Value()} {
				if f == nil {
					continue
				}

				p := prefix + "." + segments[i]
				out = append(out, p)
				walk(p, f.Type())
			}
		}
	}

	walk("", root)

	return out
}
