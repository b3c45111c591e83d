package diagnostic

import (
	"fmt"
	"sort"
	"strings"

	"thrift-columnar/internal/schemaerr"
)

// Codes reported by descriptor validation.
const (
	CodeUnsupportedVersion = "unsupported_version"
	CodeMissingName        = "missing_name"
	CodeDuplicateType      = "duplicate_type"
	CodeConflictingDecl    = "conflicting_declaration"
	CodeDuplicateFieldID   = "duplicate_field_id"
	CodeDuplicateFieldName = "duplicate_field_name"
	CodeDuplicateEnumValue = "duplicate_enum_value"
	CodeUnknownType        = "unknown_type"
	CodeUnsupportedType    = "unsupported_type"
	CodeInvalidRequirement = "invalid_requirement"
	CodeMissingType        = "missing_type"
	CodeUnresolvedRef      = "unresolved_ref"
	CodeRecursiveRef       = "recursive_ref"
	CodeEmptyStruct        = "empty_struct"
)

// Diagnostics holds all diagnostic information from one validation run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// TypeName is the struct the entry relates to (if any).
	TypeName string
	// FieldPath is the dotted field path inside TypeName (if any).
	FieldPath string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typeName, fieldPath string, suggestions ...string) {
	d.Errors = append(d.Errors, newDiagnostic(SeverityError, code, message, typeName, fieldPath, suggestions))
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, fieldPath string, suggestions ...string) {
	d.Warnings = append(d.Warnings, newDiagnostic(SeverityWarning, code, message, typeName, fieldPath, suggestions))
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typeName, fieldPath string) {
	d.Infos = append(d.Infos, newDiagnostic(SeverityInfo, code, message, typeName, fieldPath, nil))
}

func newDiagnostic(sev Severity, code, message, typeName, fieldPath string, suggestions []string) Diagnostic {
	return Diagnostic{
		Severity:    sev,
		Code:        code,
		Message:     message,
		TypeName:    typeName,
		FieldPath:   fieldPath,
		Suggestions: suggestions,
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, most severe first. Entries of equal
// severity keep insertion order.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)
	out = append(out, d.Infos...)

	sort.SliceStable(out, func(i, j int) bool { return out[i].Severity > out[j].Severity })

	return out
}

// Codes returns the distinct error codes, sorted.
func (d *Diagnostics) Codes() []string {
	seen := make(map[string]struct{})

	var out []string

	for _, e := range d.Errors {
		if _, ok := seen[e.Code]; !ok {
			seen[e.Code] = struct{}{}
			out = append(out, e.Code)
		}
	}

	sort.Strings(out)

	return out
}

// Err returns a combined error from all error diagnostics, or nil if valid.
// The error is marked schemaerr.ErrInvalidDescriptor.
func (d *Diagnostics) Err(source string) error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		parts[i] = e.String()
	}

	return schemaerr.InvalidDescriptor(source, parts)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.TypeName != "" {
		prefix = append(prefix, "["+d.TypeName+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
