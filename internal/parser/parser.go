package parser

import (
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/prettyjson/internal/errors" // Custom errors package
	"github.com/mcncl/prettyjson/internal/models"
	"github.com/mcncl/prettyjson/internal/units"
)

// Parse reads metric definitions from YAML or JSON. Two layouts are accepted:
//
//	# a list of entries
//	- {name: heap, value: 1048576, unit: bytes}
//
//	# a mapping of name to value
//	heap: 1048576
func Parse(reader io.Reader) (models.MetricSet, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.MetricSet{}, errors.NewInputError("failed to read input", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return models.MetricSet{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return models.MetricSet{}, errors.NewParsingError(fmt.Sprintf("syntax error: %v", err), errors.ErrInvalidInput)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return models.MetricSet{}, errors.NewParsingError("input is empty or contains only comments", errors.ErrEmptyInput)
	}

	node := root.Content[0]
	var metrics []models.Metric
	switch node.Kind {
	case yaml.SequenceNode:
		metrics, err = parseList(node)
	case yaml.MappingNode:
		metrics, err = parseMapping(node)
	default:
		return models.MetricSet{}, errors.NewParsingError(
			fmt.Sprintf("line %d: expected a list or mapping of metrics", node.Line),
			errors.ErrInvalidMetric,
		)
	}
	if err != nil {
		return models.MetricSet{}, err
	}

	if err := checkDuplicates(metrics); err != nil {
		return models.MetricSet{}, err
	}
	return models.MetricSet{Metrics: metrics}, nil
}

// entry is one element of the list layout
type entry struct {
	Name  string    `yaml:"name"`
	Value yaml.Node `yaml:"value"`
	Unit  *string   `yaml:"unit"`
}

func parseList(node *yaml.Node) ([]models.Metric, error) {
	metrics := make([]models.Metric, 0, len(node.Content))
	for i, item := range node.Content {
		var e entry
		if err := item.Decode(&e); err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("entry %d (line %d): %v", i, item.Line, err), errors.ErrInvalidMetric)
		}
		if strings.TrimSpace(e.Name) == "" {
			return nil, errors.NewParsingError(fmt.Sprintf("entry %d (line %d): missing name", i, item.Line), errors.ErrInvalidMetric)
		}
		if e.Value.Kind == 0 {
			return nil, errors.NewParsingError(fmt.Sprintf("metric '%s' (line %d): missing value", e.Name, item.Line), errors.ErrInvalidMetric)
		}

		value, err := decodeValue(&e.Value)
		if err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("metric '%s' (line %d): %v", e.Name, item.Line, err), errors.ErrInvalidMetric)
		}

		metric := models.Metric{Name: e.Name, Value: value}
		if e.Unit != nil {
			u, err := units.ParseUnit(*e.Unit)
			if err != nil {
				return nil, errors.NewUnitError(fmt.Sprintf("metric '%s' (line %d): %v", e.Name, item.Line, err), errors.ErrUnknownUnit)
			}
			metric.Unit = u
			metric.UnitSet = true
		}
		metrics = append(metrics, metric)
	}
	return metrics, nil
}

func parseMapping(node *yaml.Node) ([]models.Metric, error) {
	metrics := make([]models.Metric, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode || strings.TrimSpace(keyNode.Value) == "" {
			return nil, errors.NewParsingError(fmt.Sprintf("line %d: metric names must be non-empty strings", keyNode.Line), errors.ErrInvalidMetric)
		}

		value, err := decodeValue(valueNode)
		if err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("metric '%s' (line %d): %v", keyNode.Value, valueNode.Line, err), errors.ErrInvalidMetric)
		}
		metrics = append(metrics, models.Metric{Name: keyNode.Value, Value: value})
	}
	return metrics, nil
}

// decodeValue turns a YAML node into plain Go values, normalizing the
// number and container types yaml.v3 produces.
func decodeValue(node *yaml.Node) (any, error) {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return nil, err
	}
	return normalizeValue(raw), nil
}

func normalizeValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		obj := make(map[string]any, len(v))
		for key, value := range v {
			obj[key] = normalizeValue(value)
		}
		return obj
	case map[any]any:
		obj := make(map[string]any, len(v))
		for key, value := range v {
			obj[fmt.Sprint(key)] = normalizeValue(value)
		}
		return obj
	case []any:
		arr := make([]any, len(v))
		for i, value := range v {
			arr[i] = normalizeValue(value)
		}
		return arr
	case int:
		return int64(v)
	default:
		return v // string, int64, uint64, float64, bool, nil are kept as is
	}
}

func checkDuplicates(metrics []models.Metric) error {
	seen := make(map[string]int, len(metrics))
	for i, m := range metrics {
		if first, ok := seen[m.Name]; ok {
			return errors.NewParsingError(
				fmt.Sprintf("metric '%s' defined at entries %d and %d", m.Name, first, i),
				errors.ErrDuplicateMetric,
			)
		}
		seen[m.Name] = i
	}
	return nil
}

// ParseString parses metrics from a string
func ParseString(input string) (models.MetricSet, error) {
	if strings.TrimSpace(input) == "" {
		return models.MetricSet{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(input))
}

// ParseFile parses metrics from a file path
func ParseFile(filePath string) (models.MetricSet, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.MetricSet{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return models.MetricSet{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.MetricSet{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.MetricSet{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.MetricSet{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}
