// Package registry holds the record types known to a process and caches
// their converted schemas.
package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"thrift-columnar/internal/columnar"
	"thrift-columnar/internal/convert"
	"thrift-columnar/internal/descriptor"
	"thrift-columnar/internal/match"
	"thrift-columnar/internal/projection"
	"thrift-columnar/internal/schemaerr"
	"thrift-columnar/internal/thrift"
)

// DefaultCacheSize is the number of converted schemas kept by default.
const DefaultCacheSize = 128

type cacheKey struct {
	typeName string
	filter   string
}

// Registry maps record type names to struct descriptors. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*thrift.StructType
	names []string

	cache     *lru.Cache[cacheKey, *columnar.Message]
	converter *convert.Converter
	logger    *zap.Logger
}

type options struct {
	cacheSize int
	converter *convert.Converter
	logger    *zap.Logger
}

// Option configures a Registry.
type Option func(*options)

// WithCacheSize sets how many converted schemas are kept.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithConverter sets the converter used by Convert.
func WithConverter(c *convert.Converter) Option {
	return func(o *options) {
		o.converter = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New returns an empty registry.
func New(opts ...Option) (*Registry, error) {
	o := options{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	if o.converter == nil {
		o.converter = convert.New(convert.WithLogger(o.logger))
	}

	cache, err := lru.New[cacheKey, *columnar.Message](o.cacheSize)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create schema cache of size %d", o.cacheSize)
	}

	return &Registry{
		types:     make(map[string]*thrift.StructType),
		cache:     cache,
		converter: o.converter,
		logger:    o.logger,
	}, nil
}

// Load reads and compiles descriptor files and registers every struct they
// declare.
func Load(paths []string, opts ...Option) (*Registry, error) {
	files, err := descriptor.LoadFiles(paths...)
	if err != nil {
		return nil, err
	}

	set, err := descriptor.Compile(files...)
	if err != nil {
		return nil, err
	}

	r, err := New(opts...)
	if err != nil {
		return nil, err
	}

	for _, w := range set.Diagnostics.Warnings {
		r.logger.Warn("Descriptor warning", zap.String("diagnostic", w.String()))
	}

	if err := r.RegisterSet(set); err != nil {
		return nil, err
	}

	r.logger.Debug("Loaded descriptors",
		zap.Strings("files", paths),
		zap.Int("types", len(set.Names())),
	)

	return r, nil
}

// Register adds st under its name. Registering a second struct with the
// same name fails.
func (r *Registry) Register(st *thrift.StructType) error {
	if st == nil || st.Name() == "" {
		return errors.New("cannot register an unnamed struct")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[st.Name()]; exists {
		return errors.Newf("record type %q is already registered", st.Name())
	}

	r.types[st.Name()] = st
	r.names = append(r.names, st.Name())

	return nil
}

// RegisterSet registers every struct of a compiled descriptor set.
func (r *Registry) RegisterSet(set *descriptor.Set) error {
	for _, name := range set.Names() {
		st, _ := set.Struct(name)
		if err := r.Register(st); err != nil {
			return err
		}
	}

	return nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.names...)
}

// Lookup returns the struct registered under name.
func (r *Registry) Lookup(name string) (*thrift.StructType, error) {
	r.mu.RLock()
	st, ok := r.types[name]
	names := r.names
	r.mu.RUnlock()

	if ok {
		return st, nil
	}

	hint := ""
	if s := match.Suggest(name, names, 3); len(s) > 0 {
		hint = fmt.Sprintf(" (did you mean %s?)", strings.Join(s, ", "))
	}

	return nil, schemaerr.ClassResolution("record type %q is not registered%s", name, hint)
}

// Convert returns the schema of record type name projected by filter.
// Results are cached per type and filter.
func (r *Registry) Convert(name string, filter *projection.Filter) (*columnar.Message, error) {
	key := cacheKey{typeName: name, filter: filter.String()}

	if msg, ok := r.cache.Get(key); ok {
		return msg, nil
	}

	st, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}

	msg, err := r.converter.Convert(st, filter)
	if err != nil {
		return nil, errors.Wrapf(err, "converting %s", name)
	}

	r.cache.Add(key, msg)

	return msg, nil
}

// CachedSchemas returns the number of cached conversions.
func (r *Registry) CachedSchemas() int {
	return r.cache.Len()
}
