package readsupport

import (
	"strings"

	"thrift-columnar/internal/collection"
	"thrift-columnar/internal/columnar"
	"thrift-columnar/internal/schemaerr"
	"thrift-columnar/internal/thrift"
)

// Plan is the reconciled layout of a requested schema. Collections are keyed
// by their column path in the requested schema.
type Plan struct {
	Lists map[string]collection.Decision
	Maps  map[string]collection.MapDecision
	// Paths lists the keys of Lists and Maps in schema order.
	Paths []string
	// Unknown lists requested columns the descriptor does not declare.
	Unknown []string
}

func newPlan() *Plan {
	return &Plan{
		Lists: make(map[string]collection.Decision),
		Maps:  make(map[string]collection.MapDecision),
	}
}

// Encoding returns the layout recorded for path.
func (p *Plan) Encoding(path string) collection.Encoding {
	if d, ok := p.Lists[path]; ok {
		return d.Encoding
	}

	return p.Maps[path].Encoding
}

// Reconcile walks requested alongside st and resolves the layout of every
// list, set and map column. Requested columns missing from st are recorded
// in Plan.Unknown and not descended into.
func Reconcile(requested *columnar.Message, st *thrift.StructType) (*Plan, error) {
	if requested == nil || st == nil {
		return nil, schemaerr.IncompatibleSchema("", "missing requested schema or descriptor")
	}

	p := newPlan()
	r := reconciler{plan: p}

	if err := r.fields(nil, requested.Fields(), st); err != nil {
		return nil, err
	}

	return p, nil
}

type reconciler struct {
	plan *Plan
}

func (r *reconciler) fields(path []string, nodes []columnar.Node, st *thrift.StructType) error {
	for _, n := range nodes {
		p := appendPath(path, n.Name())

		f := st.FieldByName(n.Name())
		if f == nil {
			r.plan.Unknown = append(r.plan.Unknown, strings.Join(p, "."))
			continue
		}

		if err := r.node(p, n, f); err != nil {
			return err
		}
	}

	return nil
}

// node reconciles one requested node with the source field it stores.
func (r *reconciler) node(path []string, n columnar.Node, f *thrift.Field) error {
	key := strings.Join(path, ".")

	switch t := f.Type().(type) {
	case *thrift.StructType:
		g, ok := n.(*columnar.Group)
		if !ok {
			return schemaerr.IncompatibleSchema(key, "struct %s stored as a primitive column", t.Name())
		}

		return r.fields(path, g.Fields(), t)
	case *thrift.ListType, *thrift.SetType:
		elem, _ := thrift.ElementOf(t)

		d, err := collection.Resolve(key, n, elem)
		if err != nil {
			return err
		}

		if d.SkipLevels == 0 && isCollection(elem.Type()) {
			return schemaerr.IncompatibleSchema(key, "bare repeated column cannot hold nested %s elements", elem.Type().TypeID())
		}

		r.record(key)
		r.plan.Lists[key] = d

		return r.member(elementPath(path, d), d.Element, elem)
	case *thrift.MapType:
		d, err := collection.ResolveMap(key, n)
		if err != nil {
			return err
		}

		r.record(key)
		r.plan.Maps[key] = d

		kvPath := appendPath(path, d.Repeated.Name())

		if err := r.member(appendPath(kvPath, d.Key.Name()), d.Key, t.Key()); err != nil {
			return err
		}

		if d.Value == nil {
			return nil
		}

		return r.member(appendPath(kvPath, d.Value.Name()), d.Value, t.Value())
	default:
		if !n.IsPrimitive() {
			return schemaerr.IncompatibleSchema(key, "%s field stored as a group", f.Type().TypeID())
		}

		return nil
	}
}

func (r *reconciler) record(key string) {
	_, list := r.plan.Lists[key]
	_, m := r.plan.Maps[key]

	if !list && !m {
		r.plan.Paths = append(r.plan.Paths, key)
	}
}

// member reconciles a collection element, map key or map value. Only nested
// structs and collections need work.
func (r *reconciler) member(path []string, n columnar.Node, f *thrift.Field) error {
	if f == nil {
		return schemaerr.IncompatibleSchema(strings.Join(path, "."), "column has no counterpart in the descriptor")
	}

	switch f.Type().(type) {
	case *thrift.StructType, *thrift.ListType, *thrift.SetType, *thrift.MapType:
		return r.node(path, n, f)
	default:
		return nil
	}
}

func isCollection(t thrift.Type) bool {
	switch t.(type) {
	case *thrift.ListType, *thrift.SetType, *thrift.MapType:
		return true
	default:
		return false
	}
}

// elementPath is the column path of the element node chosen by d.
func elementPath(path []string, d collection.Decision) []string {
	switch d.SkipLevels {
	case 0:
		return path
	case 1:
		return appendPath(path, d.Element.Name())
	default:
		return appendPath(appendPath(path, d.Repeated.Name()), d.Element.Name())
	}
}

func appendPath(path []string, name string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)

	return append(out, name)
}
