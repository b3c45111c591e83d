package projection

import (
	"strings"

	"github.com/gobwas/glob"

	"thrift-columnar/internal/schemaerr"
)

const (
	// PatternSeparator separates patterns in a pattern-set string.
	PatternSeparator = ";"
	// PathSeparator separates field names within a pattern or path.
	PathSeparator = '.'
)

type pattern struct {
	raw  string
	glob glob.Glob
}

// Filter selects field paths of a source schema. The zero value and nil
// both keep everything.
type Filter struct {
	patterns []pattern
}

// Parse builds a filter from a pattern-set string such as
// "name;address.*.city". Blank entries are skipped, so an empty string yields
// the empty filter.
func Parse(spec string) (*Filter, error) {
	var exprs []string

	for _, p := range strings.Split(spec, PatternSeparator) {
		if p = strings.TrimSpace(p); p != "" {
			exprs = append(exprs, p)
		}
	}

	return New(exprs...)
}

// New builds a filter from individual path expressions.
func New(exprs ...string) (*Filter, error) {
	f := &Filter{patterns: make([]pattern, 0, len(exprs))}

	for _, expr := range exprs {
		for _, seg := range strings.Split(expr, string(PathSeparator)) {
			if seg == "" {
				return nil, schemaerr.InvalidPattern(expr, "empty path segment")
			}
		}

		g, err := glob.Compile(expr, PathSeparator)
		if err != nil {
			return nil, schemaerr.InvalidPattern(expr, err.Error())
		}

		f.patterns = append(f.patterns, pattern{raw: expr, glob: g})
	}

	return f, nil
}

// MustParse is like Parse but panics on error.
func MustParse(spec string) *Filter {
	f, err := Parse(spec)
	if err != nil {
		panic(err)
	}

	return f
}

// Empty returns a filter that keeps everything.
func Empty() *Filter {
	return &Filter{}
}

// IsEmpty reports whether the filter keeps everything.
func (f *Filter) IsEmpty() bool {
	return f == nil || len(f.patterns) == 0
}

// Patterns returns the pattern expressions in declaration order.
func (f *Filter) Patterns() []string {
	if f == nil {
		return nil
	}

	out := make([]string, len(f.patterns))
	for i, p := range f.patterns {
		out[i] = p.raw
	}

	return out
}

// String returns the pattern-set string form of the filter.
func (f *Filter) String() string {
	return strings.Join(f.Patterns(), PatternSeparator)
}

// Matches reports whether path is selected: either the path itself or one of
// its ancestors matches a pattern. Selecting a struct therefore selects its
// whole subtree. The empty filter matches every path.
func (f *Filter) Matches(path []string) bool {
	if f.IsEmpty() {
		return true
	}

	return len(f.MatchedBy(path)) > 0
}

// MatchedBy returns the patterns that select path, directly or through an
// ancestor.
func (f *Filter) MatchedBy(path []string) []string {
	if f.IsEmpty() || len(path) == 0 {
		return nil
	}

	var out []string

	for _, p := range f.patterns {
		for i := len(path); i > 0; i-- {
			if p.glob.Match(strings.Join(path[:i], string(PathSeparator))) {
				out = append(out, p.raw)
				break
			}
		}
	}

	return out
}
