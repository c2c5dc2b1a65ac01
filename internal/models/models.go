package models

import (
	"github.com/mcncl/prettyjson/internal/units"
)

// Metric is a single named value read from the input.
// Value holds whatever the decoder produced: an integer, float, string,
// bool, nil, or nested []any / map[string]any.
type Metric struct {
	Name  string
	Value any
	Unit  units.Unit
	// UnitSet is true when the input named a unit explicitly, even NONE.
	UnitSet bool
	// Source records how Unit was chosen once the metric has been analyzed.
	Source UnitSource
}

// UnitSource describes where a metric's unit came from. It is empty until the
// metric has been analyzed.
type UnitSource string

const (
	SourceInput    UnitSource = "input"
	SourceOverride UnitSource = "override"
	SourceMapping  UnitSource = "mapping"
	SourceSuffix   UnitSource = "suffix"
	SourceDefault  UnitSource = "default"
)

// IsNumeric reports whether the metric value is an integer or float.
func (m Metric) IsNumeric() bool {
	switch m.Value.(type) {
	case int, int64, uint64, float64:
		return true
	}
	return false
}

// MetricSet is the parsed input, in the order the metrics were written.
type MetricSet struct {
	Metrics []Metric
}

// Names returns the metric names in input order.
func (s MetricSet) Names() []string {
	names := make([]string, len(s.Metrics))
	for i, m := range s.Metrics {
		names[i] = m.Name
	}
	return names
}
