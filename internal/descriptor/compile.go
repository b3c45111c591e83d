package descriptor

import (
	"fmt"
	"sort"
	"strings"

	"thrift-columnar/internal/diagnostic"
	"thrift-columnar/internal/match"
	"thrift-columnar/internal/thrift"
)

const maxSuggestions = 3

// typeKeywords are the type names understood without a declaration.
var typeKeywords = []string{
	"bool", "byte", "i8", "i16", "i32", "i64", "double", "string", "binary",
	"struct", "enum", "list", "set", "map",
}

// Set is the compiled form of one or more descriptor files.
type Set struct {
	structs map[string]*thrift.StructType
	names   []string

	// Diagnostics holds the warnings and infos raised while compiling.
	Diagnostics *diagnostic.Diagnostics
}

// Struct returns the named struct.
func (s *Set) Struct(name string) (*thrift.StructType, bool) {
	st, ok := s.structs[name]
	return st, ok
}

// Names returns the declared struct names in declaration order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Compile resolves every declaration of files into thrift types. If any
// error diagnostic is raised, Compile returns an error listing all of them.
func Compile(files ...*File) (*Set, error) {
	c := newCompiler(files)
	c.run()

	if err := c.diags.Err(sources(files)); err != nil {
		return nil, err
	}

	return &Set{structs: c.structs, names: c.structNames, Diagnostics: c.diags}, nil
}

// Validate compiles files and returns every diagnostic raised, without
// failing.
func Validate(files ...*File) *diagnostic.Diagnostics {
	c := newCompiler(files)
	c.run()

	return c.diags
}

func sources(files []*File) string {
	var out []string

	for _, f := range files {
		if f != nil && f.Source != "" {
			out = append(out, f.Source)
		}
	}

	return strings.Join(out, ", ")
}

type compiler struct {
	files []*File
	diags *diagnostic.Diagnostics

	decls       map[string]*TypeDecl
	declNames   []string
	structNames []string

	structs  map[string]*thrift.StructType
	enums    map[string]*thrift.EnumType
	failed   map[string]bool
	visiting map[string]bool
}

func newCompiler(files []*File) *compiler {
	return &compiler{
		files:    files,
		diags:    &diagnostic.Diagnostics{},
		decls:    make(map[string]*TypeDecl),
		structs:  make(map[string]*thrift.StructType),
		enums:    make(map[string]*thrift.EnumType),
		failed:   make(map[string]bool),
		visiting: make(map[string]bool),
	}
}

func (c *compiler) run() {
	c.index()

	for _, name := range c.declNames {
		decl := c.decls[name]
		if decl.IsEnum() {
			c.enum(name, decl.Values)
			continue
		}

		c.structByName(name)
	}

	for _, name := range c.declNames {
		if _, ok := c.structs[name]; ok {
			c.structNames = append(c.structNames, name)
		}
	}
}

func (c *compiler) index() {
	for _, f := range c.files {
		if f == nil {
			continue
		}

		if f.Version != CurrentVersion {
			c.diags.AddError(diagnostic.CodeUnsupportedVersion,
				fmt.Sprintf("%s: version %q is not supported, expected %q", f.Source, f.Version, CurrentVersion), "", "")

			continue
		}

		for i := range f.Types {
			decl := &f.Types[i]

			switch {
			case decl.Name == "":
				c.diags.AddError(diagnostic.CodeMissingName,
					fmt.Sprintf("%s: type #%d has no name", f.Source, i+1), "", "")
			case c.decls[decl.Name] != nil:
				c.diags.AddError(diagnostic.CodeDuplicateType,
					fmt.Sprintf("type %q is declared more than once", decl.Name), decl.Name, "")
			case len(decl.Fields) > 0 && len(decl.Values) > 0:
				c.diags.AddError(diagnostic.CodeConflictingDecl,
					"a type declares either fields or values, not both", decl.Name, "")
			default:
				c.decls[decl.Name] = decl
				c.declNames = append(c.declNames, decl.Name)
			}
		}
	}
}

func (c *compiler) structByName(name string) *thrift.StructType {
	if st, ok := c.structs[name]; ok {
		return st
	}

	if c.failed[name] {
		return nil
	}

	if c.visiting[name] {
		c.diags.AddError(diagnostic.CodeRecursiveRef,
			fmt.Sprintf("struct %q refers to itself through %s", name, c.cycle(name)), name, "")
		c.failed[name] = true

		return nil
	}

	c.visiting[name] = true
	defer delete(c.visiting, name)

	st := c.buildStruct(name, "", c.decls[name].Fields)
	if st == nil {
		c.failed[name] = true
		return nil
	}

	c.structs[name] = st

	return st
}

// cycle lists the structs currently being built, for recursion messages.
func (c *compiler) cycle(name string) string {
	var names []string
	for n := range c.visiting {
		names = append(names, n)
	}

	sort.Strings(names)

	return strings.Join(append(names, name), " -> ")
}

// buildStruct builds the fields of struct typeName. prefix is the field path
// of an inline struct inside typeName.
func (c *compiler) buildStruct(typeName, prefix string, decls []FieldDecl) *thrift.StructType {
	if len(decls) == 0 {
		c.diags.AddWarning(diagnostic.CodeEmptyStruct,
			"struct has no fields and cannot be converted", typeName, prefix)
	}

	var (
		fields = make([]*thrift.Field, 0, len(decls))
		ids    = make(map[int16]string, len(decls))
		names  = make(map[string]struct{}, len(decls))
		broken bool
	)

	for i := range decls {
		fd := &decls[i]
		path := joinPath(prefix, fd.Name)

		if fd.Name == "" {
			c.diags.AddError(diagnostic.CodeMissingName, fmt.Sprintf("field with id %d has no name", fd.ID), typeName, prefix)
			broken = true

			continue
		}

		if _, dup := names[fd.Name]; dup {
			c.diags.AddError(diagnostic.CodeDuplicateFieldName,
				fmt.Sprintf("field name %q is used more than once", fd.Name), typeName, path)

			broken = true
		}

		names[fd.Name] = struct{}{}

		if prev, dup := ids[fd.ID]; dup {
			c.diags.AddError(diagnostic.CodeDuplicateFieldID,
				fmt.Sprintf("fields %q and %q both declare id %d", prev, fd.Name, fd.ID), typeName, path)

			broken = true
		}

		ids[fd.ID] = fd.Name

		req, ok := c.requirement(typeName, path, fd.Requirement)
		typ := c.resolve(typeName, path, &fd.TypeRef)

		if !ok || typ == nil {
			broken = true
			continue
		}

		fields = append(fields, thrift.NewField(fd.Name, fd.ID, req, typ))
	}

	if broken {
		return nil
	}

	name := typeName
	if prefix != "" {
		name = typeName + "." + prefix
	}

	return thrift.MustStruct(name, fields...)
}

func (c *compiler) requirement(typeName, path, s string) (thrift.Requirement, bool) {
	req, ok := thrift.ParseRequirement(s)
	if !ok {
		c.diags.AddError(diagnostic.CodeInvalidRequirement,
			fmt.Sprintf("requirement %q is not one of required, optional, default", s), typeName, path)
	}

	return req, ok
}

// resolve returns the type described by r, or nil after recording why it
// cannot be built.
func (c *compiler) resolve(typeName, path string, r *TypeRef) thrift.Type {
	if r == nil {
		c.diags.AddError(diagnostic.CodeMissingType, "type is missing", typeName, path)
		return nil
	}

	if r.Ref != "" {
		return c.named(typeName, path, r.Ref)
	}

	kw := strings.TrimSpace(r.Type)
	if kw == "" {
		switch {
		case len(r.Fields) > 0:
			return c.inlineStruct(typeName, path, r.Fields)
		case len(r.Values) > 0:
			return c.enum(joinPath(typeName, path), r.Values)
		default:
			c.diags.AddError(diagnostic.CodeMissingType, "no type, ref, fields or values given", typeName, path)
			return nil
		}
	}

	id, ok := thrift.ParseTypeID(kw)
	if !ok {
		if _, declared := c.decls[kw]; declared {
			return c.named(typeName, path, kw)
		}

		c.diags.AddError(diagnostic.CodeUnknownType, fmt.Sprintf("type %q is not known", kw), typeName, path,
			match.Suggest(kw, append(append([]string(nil), typeKeywords...), c.declNames...), maxSuggestions)...)

		return nil
	}

	switch id {
	case thrift.TypeStruct:
		if len(r.Fields) == 0 {
			c.diags.AddError(diagnostic.CodeMissingType, "struct needs fields or a ref", typeName, path)
			return nil
		}

		return c.inlineStruct(typeName, path, r.Fields)
	case thrift.TypeEnum:
		if len(r.Values) == 0 {
			c.diags.AddError(diagnostic.CodeMissingType, "enum needs values or a ref", typeName, path)
			return nil
		}

		return c.enum(joinPath(typeName, path), r.Values)
	case thrift.TypeList, thrift.TypeSet:
		elem := c.member(typeName, path, "element", 0, r.Element)
		if elem == nil {
			return nil
		}

		if id == thrift.TypeSet {
			return thrift.NewSet(elem)
		}

		return thrift.NewList(elem)
	case thrift.TypeMap:
		key := c.member(typeName, joinPath(path, "key"), "key", 1, r.Key)
		value := c.member(typeName, joinPath(path, "value"), "value", 2, r.Value)

		if key == nil || value == nil {
			return nil
		}

		return thrift.NewMap(key, value)
	default:
		typ, err := thrift.Scalar(id)
		if err != nil {
			c.diags.AddError(diagnostic.CodeUnsupportedType, err.Error(), typeName, path)
			return nil
		}

		return typ
	}
}

// member builds the element, key or value field of a container.
func (c *compiler) member(typeName, path, role string, id int16, r *TypeRef) *thrift.Field {
	if r == nil {
		c.diags.AddError(diagnostic.CodeMissingType, fmt.Sprintf("%s type is missing", role), typeName, path)
		return nil
	}

	req, ok := c.requirement(typeName, path, r.Requirement)
	typ := c.resolve(typeName, path, r)

	if !ok || typ == nil {
		return nil
	}

	return thrift.NewField(role, id, req, typ)
}

func (c *compiler) inlineStruct(typeName, path string, fields []FieldDecl) thrift.Type {
	st := c.buildStruct(typeName, path, fields)
	if st == nil {
		return nil
	}

	return st
}

func (c *compiler) named(typeName, path, ref string) thrift.Type {
	decl, ok := c.decls[ref]
	if !ok {
		c.diags.AddError(diagnostic.CodeUnresolvedRef, fmt.Sprintf("type %q is not declared", ref), typeName, path,
			match.Suggest(ref, c.declNames, maxSuggestions)...)

		return nil
	}

	if decl.IsEnum() {
		return c.enum(ref, decl.Values)
	}

	st := c.structByName(ref)
	if st == nil {
		return nil
	}

	return st
}

func (c *compiler) enum(name string, values EnumValues) thrift.Type {
	if e, ok := c.enums[name]; ok {
		return e
	}

	if c.failed[name] {
		return nil
	}

	ids := make(map[int32]string, len(values))
	names := make(map[string]struct{}, len(values))
	out := make([]thrift.EnumValue, 0, len(values))
	broken := false

	for _, v := range values {
		if _, dup := names[v.Name]; dup {
			c.diags.AddError(diagnostic.CodeDuplicateEnumValue, fmt.Sprintf("value %q is declared more than once", v.Name), name, "")
			broken = true
		}

		if prev, dup := ids[v.ID]; dup {
			c.diags.AddError(diagnostic.CodeDuplicateEnumValue,
				fmt.Sprintf("values %q and %q share id %d", prev, v.Name, v.ID), name, "")
			broken = true
		}

		names[v.Name] = struct{}{}
		ids[v.ID] = v.Name
		out = append(out, thrift.EnumValue{ID: v.ID, Name: v.Name})
	}

	if broken {
		c.failed[name] = true
		return nil
	}

	e := thrift.NewEnum(out...)
	c.enums[name] = e

	return e
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}

	return parent + "." + name
}
