package readsupport

import (
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"thrift-columnar/internal/columnar"
	"thrift-columnar/internal/common"
	"thrift-columnar/internal/convert"
	"thrift-columnar/internal/projection"
	"thrift-columnar/internal/schemaerr"
	"thrift-columnar/internal/thrift"
)

// RecordTypeKey is the file metadata key naming the record type that wrote
// the file.
const RecordTypeKey = "thrift.class"

// TypeRegistry resolves record type names to struct descriptors.
type TypeRegistry interface {
	Lookup(name string) (*thrift.StructType, error)
}

// SchemaSource is implemented by registries that can also produce, and
// usually cache, converted schemas.
type SchemaSource interface {
	Convert(name string, filter *projection.Filter) (*columnar.Message, error)
}

// Options are the per-read settings.
type Options struct {
	// ColumnFilter is a projection pattern set. It excludes ReadSchema.
	ColumnFilter string
	// ReadSchema is a message in schema text form. It excludes ColumnFilter.
	ReadSchema string
	// RecordType overrides the record type recorded in file metadata.
	RecordType string
	// Strategy selects the materializer. Empty means DefaultStrategy.
	Strategy string
}

// ReadContext is the outcome of Init.
type ReadContext struct {
	// RequestedSchema is the schema to read.
	RequestedSchema *columnar.Message
	// RecordType is set when the schema was projected from a record type.
	RecordType string
}

// ReadSupport prepares reads of files written from struct descriptors.
type ReadSupport struct {
	registry  TypeRegistry
	converter *convert.Converter
	logger    *zap.Logger
}

// Option configures a ReadSupport.
type Option func(*ReadSupport)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(rs *ReadSupport) {
		rs.logger = logger
	}
}

// WithConverter sets the converter used for projections when the registry
// does not implement SchemaSource.
func WithConverter(c *convert.Converter) Option {
	return func(rs *ReadSupport) {
		rs.converter = c
	}
}

// New returns a ReadSupport resolving record types through registry.
func New(registry TypeRegistry, opts ...Option) *ReadSupport {
	rs := &ReadSupport{registry: registry}
	for _, opt := range opts {
		opt(rs)
	}

	if rs.logger == nil {
		rs.logger = zap.NewNop()
	}

	if rs.converter == nil {
		rs.converter = convert.New(convert.WithLogger(rs.logger))
	}

	return rs
}

// Init chooses the schema to request. fileMetadata holds, per key, the
// values found across all files being read.
func (rs *ReadSupport) Init(fileSchema *columnar.Message, fileMetadata map[string][]string, opts Options) (*ReadContext, error) {
	if opts.ReadSchema != "" && opts.ColumnFilter != "" {
		return nil, schemaerr.ConflictingSchemaSpecification(opts.ColumnFilter, opts.ReadSchema)
	}

	switch {
	case opts.ReadSchema != "":
		msg, err := columnar.ParseMessage(opts.ReadSchema)
		if err != nil {
			return nil, errors.Wrap(err, "invalid read schema")
		}

		rs.logger.Debug("Using explicit read schema", zap.String("message", msg.Name()))

		return &ReadContext{RequestedSchema: msg}, nil
	case strings.TrimSpace(opts.ColumnFilter) != "":
		filter, err := projection.Parse(opts.ColumnFilter)
		if err != nil {
			return nil, err
		}

		name, err := RecordTypeFromFiles(opts.RecordType, fileMetadata)
		if err != nil {
			return nil, err
		}

		msg, err := rs.project(name, filter)
		if err != nil {
			return nil, err
		}

		rs.logger.Debug("Projected record type",
			zap.String("record_type", name),
			zap.String("filter", filter.String()),
			zap.Int("columns", len(msg.Columns())),
		)

		return &ReadContext{RequestedSchema: msg, RecordType: name}, nil
	default:
		if fileSchema == nil {
			return nil, errors.New("no file schema, read schema or column filter given")
		}

		return &ReadContext{RequestedSchema: fileSchema}, nil
	}
}

func (rs *ReadSupport) project(name string, filter *projection.Filter) (*columnar.Message, error) {
	if src, ok := rs.registry.(SchemaSource); ok {
		return src.Convert(name, filter)
	}

	st, err := rs.registry.Lookup(name)
	if err != nil {
		return nil, err
	}

	return rs.converter.Convert(st, filter)
}

// PrepareForRead resolves the record type of a file, reconciles requested
// with its descriptor and builds a materializer with the selected strategy.
func (rs *ReadSupport) PrepareForRead(requested *columnar.Message, metadata map[string]string, opts Options,
	strategies Strategies,
) (Materializer, error) {
	name, err := RecordTypeFromMetadata(opts.RecordType, metadata)
	if err != nil {
		return nil, err
	}

	st, err := rs.registry.Lookup(name)
	if err != nil {
		return nil, err
	}

	factory, err := strategies.Get(opts.Strategy)
	if err != nil {
		return nil, err
	}

	plan, err := Reconcile(requested, st)
	if err != nil {
		return nil, errors.Wrapf(err, "reconciling %s with %s", requested.Name(), name)
	}

	for _, p := range plan.Paths {
		rs.logger.Debug("Resolved collection layout",
			zap.String("record_type", name),
			zap.String("path", p),
			zap.Stringer("encoding", plan.Encoding(p)),
		)
	}

	if len(plan.Unknown) > 0 {
		rs.logger.Debug("Columns not in descriptor", zap.Strings("paths", plan.Unknown))
	}

	return factory(name, st, plan)
}

// RecordTypeFromMetadata returns explicit when set, otherwise the record
// type recorded in the metadata of one file.
func RecordTypeFromMetadata(explicit string, metadata map[string]string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if name := metadata[RecordTypeKey]; name != "" {
		return name, nil
	}

	return "", schemaerr.ClassResolution("record type is not provided and the file metadata has no %q", RecordTypeKey)
}

// RecordTypeFromFiles returns explicit when set, otherwise the record type
// recorded by every file. Files disagreeing, or recording nothing, is an
// error.
func RecordTypeFromFiles(explicit string, metadata map[string][]string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	names := common.Unique(common.NonEmpty(metadata[RecordTypeKey]))

	name, ok := common.Only(names)
	if !ok {
		return "", schemaerr.ClassResolution(
			"record type is not provided and could not be resolved from the files: %q", names)
	}

	return name, nil
}
