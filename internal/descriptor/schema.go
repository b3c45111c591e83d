package descriptor

// CurrentVersion is the only descriptor format version understood.
const CurrentVersion = "1"

// File is one descriptor document.
type File struct {
	Version string     `yaml:"version,omitempty"`
	Types   []TypeDecl `yaml:"types"`

	// Source is the path the file was loaded from.
	Source string `yaml:"-"`
}

// TypeDecl declares a named struct (Fields) or enum (Values).
type TypeDecl struct {
	Name   string      `yaml:"name"`
	Fields []FieldDecl `yaml:"fields,omitempty"`
	Values EnumValues  `yaml:"values,omitempty"`
}

// IsEnum reports whether the declaration is an enum.
func (d *TypeDecl) IsEnum() bool {
	return len(d.Values) > 0 && len(d.Fields) == 0
}

// FieldDecl is one struct field.
type FieldDecl struct {
	ID      int16  `yaml:"id"`
	Name    string `yaml:"name"`
	TypeRef `yaml:",inline"`
}

// TypeRef describes the type of a field, element, key or value. In YAML it
// is either a mapping or a bare type name.
type TypeRef struct {
	Type        string      `yaml:"type,omitempty"`
	Requirement string      `yaml:"requirement,omitempty"`
	Ref         string      `yaml:"ref,omitempty"`
	Element     *TypeRef    `yaml:"element,omitempty"`
	Key         *TypeRef    `yaml:"key,omitempty"`
	Value       *TypeRef    `yaml:"value,omitempty"`
	Fields      []FieldDecl `yaml:"fields,omitempty"`
	Values      EnumValues  `yaml:"values,omitempty"`
}

// EnumValue is one enum constant.
type EnumValue struct {
	ID   int32  `yaml:"id"`
	Name string `yaml:"name"`
}

// EnumValues accepts bare names, numbered like thrift IDL constants without
// an explicit value, as well as {id, name} mappings.
type EnumValues []EnumValue
