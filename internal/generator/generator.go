package generator

import (
	"fmt"

	"github.com/mcncl/prettyjson/internal/config"
	"github.com/mcncl/prettyjson/internal/errors"
	"github.com/mcncl/prettyjson/internal/jsondoc"
	"github.com/mcncl/prettyjson/internal/jsonutil"
	"github.com/mcncl/prettyjson/internal/models"
	"github.com/mcncl/prettyjson/internal/units"
)

// Generator builds a JSON document from analyzed metrics
type Generator struct {
	config *config.Config
}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{config: config.NewConfig()}
}

// NewGeneratorWithConfig creates a new Generator instance with custom configuration
func NewGeneratorWithConfig(cfg *config.Config) *Generator {
	return &Generator{config: cfg}
}

// Generate returns a document whose root object has one member per metric,
// in input order. Metrics must already carry their resolved unit.
func (g *Generator) Generate(set models.MetricSet) (*jsondoc.Document, error) {
	doc := jsondoc.NewDocument()
	root := doc.Root()
	root.SetObject()

	// Output keys, to catch collisions introduced by key case conversion
	owners := make(map[string]string, len(set.Metrics))
	claim := func(key, metric string) error {
		if other, taken := owners[key]; taken {
			return errors.NewConvertError(
				fmt.Sprintf("metrics '%s' and '%s' both map to key '%s'", other, metric, key),
				errors.ErrDuplicateMetric,
			)
		}
		owners[key] = metric
		return nil
	}

	for _, m := range set.Metrics {
		key := g.config.GetKey(m.Name)
		if err := claim(key, m.Name); err != nil {
			return nil, err
		}

		unit := m.Unit
		if !g.config.Units.Pretty {
			unit = units.None
		}

		if err := jsonutil.ToJSON(m.Value, unit, doc, root.AddMember(key, doc)); err != nil {
			return nil, errors.NewConvertError(fmt.Sprintf("failed to convert metric '%s'", m.Name), err)
		}

		if g.config.Output.IncludeRaw && unit != units.None && m.IsNumeric() {
			rawKey := key + g.config.Output.RawSuffix
			if err := claim(rawKey, m.Name); err != nil {
				return nil, err
			}
			if err := jsonutil.ToJSON(m.Value, units.None, doc, root.AddMember(rawKey, doc)); err != nil {
				return nil, errors.NewConvertError(fmt.Sprintf("failed to convert raw value of metric '%s'", m.Name), err)
			}
		}
	}

	return doc, nil
}
