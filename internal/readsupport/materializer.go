package readsupport

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"thrift-columnar/internal/match"
	"thrift-columnar/internal/thrift"
)

// DefaultStrategy is the strategy used when Options.Strategy is empty.
const DefaultStrategy = "default"

// Materializer turns columns read with a Plan into records.
type Materializer interface {
	// RecordType is the name of the record type being materialized.
	RecordType() string
	// Descriptor is the struct the records follow.
	Descriptor() *thrift.StructType
	// Plan is the reconciled collection layout.
	Plan() *Plan
}

// MaterializerFactory builds a Materializer for one read.
type MaterializerFactory func(recordType string, descriptor *thrift.StructType, plan *Plan) (Materializer, error)

// Strategies maps strategy names to factories.
type Strategies map[string]MaterializerFactory

// DefaultStrategies returns a registry holding only DefaultStrategy.
func DefaultStrategies() Strategies {
	return Strategies{DefaultStrategy: NewPlanMaterializer}
}

// Names returns the registered strategy names, sorted.
func (s Strategies) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// Get returns the factory registered under name, DefaultStrategy when name
// is empty.
func (s Strategies) Get(name string) (MaterializerFactory, error) {
	if name == "" {
		name = DefaultStrategy
	}

	if f, ok := s[name]; ok && f != nil {
		return f, nil
	}

	hint := ""
	if sug := match.Suggest(name, s.Names(), 1); len(sug) > 0 {
		hint = " (did you mean " + sug[0] + "?)"
	}

	return nil, errors.Newf("unknown materializer strategy %q, registered: %s%s", name, strings.Join(s.Names(), ", "), hint)
}

// PlanMaterializer exposes the plan and descriptor of a read without
// decoding values itself.
type PlanMaterializer struct {
	recordType string
	descriptor *thrift.StructType
	plan       *Plan
}

// NewPlanMaterializer is the factory of the default strategy.
func NewPlanMaterializer(recordType string, descriptor *thrift.StructType, plan *Plan) (Materializer, error) {
	if descriptor == nil || plan == nil {
		return nil, errors.New("plan materializer needs a descriptor and a plan")
	}

	return &PlanMaterializer{recordType: recordType, descriptor: descriptor, plan: plan}, nil
}

func (m *PlanMaterializer) RecordType() string             { return m.recordType }
func (m *PlanMaterializer) Descriptor() *thrift.StructType { return m.descriptor }
func (m *PlanMaterializer) Plan() *Plan                    { return m.plan }
