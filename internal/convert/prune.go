package convert

import (
	"strings"

	"github.com/cockroachdb/errors"

	"thrift-columnar/internal/projection"
	"thrift-columnar/internal/schemaerr"
	"thrift-columnar/internal/thrift"
)

// Prune returns the part of root selected by filter. An empty filter returns
// root unchanged.
//
// Nested structs, and collections whose element or value loses every field,
// are dropped from their parent. If nothing at all survives, Prune fails with
// an empty projection error.
func Prune(root *thrift.StructType, filter *projection.Filter) (*thrift.StructType, error) {
	p := newPruner(filter)
	return p.prune(root)
}

type pruner struct {
	filter  *projection.Filter
	matched map[string]struct{}
}

func newPruner(filter *projection.Filter) *pruner {
	return &pruner{filter: filter, matched: make(map[string]struct{})}
}

func (p *pruner) prune(root *thrift.StructType) (*thrift.StructType, error) {
	if p.filter.IsEmpty() {
		return root, nil
	}

	st, keep, err := p.pruneStruct(nil, root)
	if err != nil {
		return nil, err
	}

	if !keep {
		return nil, schemaerr.EmptyProjection(root.Name(), p.filter.Patterns())
	}

	return st, nil
}

// unmatched returns the patterns that selected nothing, in declaration order.
func (p *pruner) unmatched() []string {
	var out []string

	for _, pat := range p.filter.Patterns() {
		if _, ok := p.matched[pat]; !ok {
			out = append(out, pat)
		}
	}

	return out
}

func (p *pruner) selects(path []string) bool {
	hits := p.filter.MatchedBy(path)
	for _, h := range hits {
		p.matched[h] = struct{}{}
	}

	return len(hits) > 0
}

func (p *pruner) pruneStruct(path []string, st *thrift.StructType) (*thrift.StructType, bool, error) {
	var kept []*thrift.Field

	for _, f := range st.Fields() {
		nf, keep, err := p.pruneField(appendPath(path, f.Name()), f)
		if err != nil {
			return nil, false, err
		}

		if keep {
			kept = append(kept, nf)
		}
	}

	if len(kept) == 0 {
		return nil, false, nil
	}

	out, err := thrift.NewStruct(st.Name(), kept...)
	if err != nil {
		return nil, false, errors.Wrapf(err, "pruning %s", strings.Join(path, "."))
	}

	return out, true, nil
}

func (p *pruner) pruneField(path []string, f *thrift.Field) (*thrift.Field, bool, error) {
	if f == nil || f.Type() == nil {
		return nil, false, schemaerr.UnsupportedType(strings.Join(path, "."), "missing element type")
	}

	if p.selects(path) {
		return f, true, nil
	}

	switch t := f.Type().(type) {
	case *thrift.StructType:
		st, keep, err := p.pruneStruct(path, t)
		if err != nil || !keep {
			return nil, false, err
		}

		return f.WithType(st), true, nil
	case *thrift.ListType:
		elem, keep, err := p.pruneField(path, t.Element())
		if err != nil || !keep {
			return nil, false, err
		}

		return f.WithType(thrift.NewList(elem)), true, nil
	case *thrift.SetType:
		elem, keep, err := p.pruneField(path, t.Element())
		if err != nil || !keep {
			return nil, false, err
		}

		return f.WithType(thrift.NewSet(elem)), true, nil
	case *thrift.MapType:
		if t.Key() == nil {
			return nil, false, schemaerr.UnsupportedType(strings.Join(path, "."), "map without key")
		}

		keySelected := p.selects(appendPath(path, keySegment))

		value, keep, err := p.pruneField(appendPath(path, valueSegment), t.Value())
		if err != nil {
			return nil, false, err
		}

		if !keep {
			if !keySelected {
				return nil, false, nil
			}
			// A map column cannot exist without its value.
			value = t.Value()
		}

		return f.WithType(thrift.NewMap(t.Key(), value)), true, nil
	case *thrift.BoolType, *thrift.ByteType, *thrift.I16Type, *thrift.I32Type,
		*thrift.I64Type, *thrift.DoubleType, *thrift.StringType, *thrift.EnumType:
		return nil, false, nil
	default:
		return nil, false, schemaerr.UnsupportedType(strings.Join(path, "."), "%T", t)
	}
}

func appendPath(path []string, name string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)

	return append(out, name)
}
