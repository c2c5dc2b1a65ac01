package analyzer

import (
	"fmt"
	"regexp"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/prettyjson/internal/config"
	"github.com/mcncl/prettyjson/internal/errors"
	"github.com/mcncl/prettyjson/internal/models"
	"github.com/mcncl/prettyjson/internal/units"
)

// suffixRule infers a unit from a metric name written in snake case.
type suffixRule struct {
	pattern *regexp.Regexp
	unit    units.Unit
}

// Built-in rules, ordered by specificity - most specific first
var suffixRules = []suffixRule{
	{regexp.MustCompile(`_bytes_per_(sec|second)$`), units.BytesPerSecond},
	{regexp.MustCompile(`_(bytes|size)$`), units.Bytes},
	{regexp.MustCompile(`_(ns|nanos|nanoseconds)$`), units.TimeNS},
	{regexp.MustCompile(`_(us|micros|microseconds)$`), units.TimeUS},
	{regexp.MustCompile(`_(ms|millis|milliseconds)$`), units.TimeMS},
	{regexp.MustCompile(`_(s|sec|secs|seconds)$`), units.TimeS},
	{regexp.MustCompile(`_(per_sec|per_second|rate)$`), units.CountPerSecond},
	{regexp.MustCompile(`_(ticks|cpu_ticks)$`), units.CPUTicks},
	{regexp.MustCompile(`_(bp|bps|basis_points)$`), units.BasisPoints},
	{regexp.MustCompile(`_(count|total)$`), units.Count},
}

// Analyzer decides which unit each metric is rendered with
type Analyzer struct {
	// config holds configuration settings for analysis
	config *config.Config
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		config: config.NewConfig(), // Use default config if none provided
	}
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	return &Analyzer{config: cfg}
}

// Analyze returns a copy of set with Unit and Source filled in for every metric.
//
// Precedence: config overrides, then a unit given in the input, then config
// mappings, then name suffixes. Mappings and suffixes only apply to numbers
// and only when inference is enabled.
func (a *Analyzer) Analyze(set models.MetricSet) (models.MetricSet, error) {
	out := models.MetricSet{Metrics: make([]models.Metric, len(set.Metrics))}
	for i, m := range set.Metrics {
		u, source := a.ResolveUnit(m)
		if !u.Valid() {
			return models.MetricSet{}, errors.NewUnitError(
				fmt.Sprintf("metric '%s' has invalid unit %s", m.Name, u),
				errors.ErrUnknownUnit,
			)
		}
		m.Unit = u
		m.Source = source
		out.Metrics[i] = m
	}
	return out, nil
}

// ResolveUnit picks the unit for a single metric and reports where it came from.
func (a *Analyzer) ResolveUnit(m models.Metric) (units.Unit, models.UnitSource) {
	if u, ok := a.config.FindUnitOverride(m.Name); ok {
		return u, models.SourceOverride
	}
	if m.UnitSet {
		return m.Unit, models.SourceInput
	}
	if !m.IsNumeric() || !a.config.Units.Infer {
		return units.None, models.SourceDefault
	}
	if mapping, found := a.config.FindUnitMapping(m.Name); found {
		return mapping.Unit, models.SourceMapping
	}
	if u, found := InferUnit(m.Name); found {
		return u, models.SourceSuffix
	}
	return units.None, models.SourceDefault
}

// InferUnit guesses a unit from a metric name such as "heap_bytes" or
// "requestLatencyMs". Names are compared in snake case.
func InferUnit(name string) (units.Unit, bool) {
	snake := strcase.ToSnake(name)
	for _, rule := range suffixRules {
		if rule.pattern.MatchString(snake) {
			return rule.unit, true
		}
	}
	return units.None, false
}
