package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/prettyjson/internal/units"
)

// Key case styles for output member names
const (
	KeyCaseOriginal       = "original"
	KeyCaseSnake          = "snake"
	KeyCaseCamel          = "camel"
	KeyCaseLowerCamel     = "lower_camel"
	KeyCaseKebab          = "kebab"
	KeyCaseScreamingSnake = "screaming_snake"
)

// Config represents the complete configuration for prettyjson
type Config struct {
	Units  UnitsConfig  `yaml:"units"`
	Naming NamingConfig `yaml:"naming"`
	Output OutputConfig `yaml:"output"`
	Dev    DevConfig    `yaml:"dev"`
}

// UnitsConfig controls how units are chosen and whether they are applied
type UnitsConfig struct {
	// Pretty renders numbers with a unit as display strings. When false every
	// number is written raw.
	Pretty    bool                  `yaml:"pretty"`
	Infer     bool                  `yaml:"infer"`
	Mappings  []UnitMapping         `yaml:"mappings"`
	Overrides map[string]units.Unit `yaml:"overrides"`
}

// UnitMapping assigns a unit to every metric whose name matches Pattern
type UnitMapping struct {
	Pattern string     `yaml:"pattern"`
	Unit    units.Unit `yaml:"unit"`
	Comment string     `yaml:"comment,omitempty"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// NamingConfig controls output member names
type NamingConfig struct {
	KeyCase     string            `yaml:"key_case"`
	KeyMappings map[string]string `yaml:"key_mappings"`
}

// OutputConfig controls how the document is rendered
type OutputConfig struct {
	Indent     int    `yaml:"indent"`
	SortKeys   bool   `yaml:"sort_keys"`
	Color      bool   `yaml:"color"`
	IncludeRaw bool   `yaml:"include_raw"`
	RawSuffix  string `yaml:"raw_suffix"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Units: UnitsConfig{
			Pretty:    true,
			Infer:     true,
			Mappings:  []UnitMapping{},
			Overrides: make(map[string]units.Unit),
		},
		Naming: NamingConfig{
			KeyCase:     KeyCaseOriginal,
			KeyMappings: make(map[string]string),
		},
		Output: OutputConfig{
			Indent:     2,
			SortKeys:   false,
			Color:      false,
			IncludeRaw: false,
			RawSuffix:  "_raw",
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.compilePatterns(); err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".prettyjson.yml", ".prettyjson.yaml", "prettyjson.yml", "prettyjson.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks option values that YAML decoding cannot
func (c *Config) Validate() error {
	switch c.Naming.KeyCase {
	case "", KeyCaseOriginal, KeyCaseSnake, KeyCaseCamel, KeyCaseLowerCamel, KeyCaseKebab, KeyCaseScreamingSnake:
	default:
		return fmt.Errorf("invalid key_case '%s'", c.Naming.KeyCase)
	}
	if c.Output.Indent < 0 {
		return fmt.Errorf("invalid indent %d: must not be negative", c.Output.Indent)
	}
	return nil
}

// compilePatterns compiles all regex patterns in the config
func (c *Config) compilePatterns() error {
	for i := range c.Units.Mappings {
		mapping := &c.Units.Mappings[i]
		regex, err := regexp.Compile(mapping.Pattern)
		if err != nil {
			return fmt.Errorf("invalid unit mapping pattern '%s': %w", mapping.Pattern, err)
		}
		mapping.regex = regex
	}
	return nil
}

// MatchesMetric checks if this unit mapping matches the given metric name
func (um *UnitMapping) MatchesMetric(name string) bool {
	if um.regex == nil {
		// Try to compile if not already compiled (fallback)
		regex, err := regexp.Compile(um.Pattern)
		if err != nil {
			return false
		}
		um.regex = regex
	}
	return um.regex.MatchString(name)
}

// FindUnitMapping finds the first unit mapping that matches the metric name
func (c *Config) FindUnitMapping(name string) (UnitMapping, bool) {
	for i := range c.Units.Mappings {
		if c.Units.Mappings[i].MatchesMetric(name) {
			return c.Units.Mappings[i], true
		}
	}
	return UnitMapping{}, false
}

// FindUnitOverride returns the unit forced for a metric by name
func (c *Config) FindUnitOverride(name string) (units.Unit, bool) {
	u, ok := c.Units.Overrides[name]
	return u, ok
}

// GetKey returns the output member name for a metric, applying naming rules
func (c *Config) GetKey(name string) string {
	if mapped, exists := c.Naming.KeyMappings[name]; exists {
		return mapped
	}

	switch c.Naming.KeyCase {
	case KeyCaseSnake:
		return strcase.ToSnake(name)
	case KeyCaseCamel:
		return strcase.ToCamel(name)
	case KeyCaseLowerCamel:
		return strcase.ToLowerCamel(name)
	case KeyCaseKebab:
		return strcase.ToKebab(name)
	case KeyCaseScreamingSnake:
		return strcase.ToScreamingSnake(name)
	default:
		return name
	}
}

// IndentString returns the per-level indent, or "" for compact output
func (c *Config) IndentString() string {
	if c.Output.Indent <= 0 {
		return ""
	}
	return fmt.Sprintf("%*s", c.Output.Indent, "")
}

// CLIOverrides holds values given on the command line. Nil pointers mean the
// flag was not set and the config file (or default) value is kept.
type CLIOverrides struct {
	Raw        *bool
	KeyCase    string
	Indent     *int
	SortKeys   *bool
	Color      *bool
	IncludeRaw *bool
	Debug      bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.Raw != nil {
		cfg.Units.Pretty = !*cli.Raw
	}
	if cli.KeyCase != "" {
		cfg.Naming.KeyCase = cli.KeyCase
	}
	if cli.Indent != nil {
		cfg.Output.Indent = *cli.Indent
	}
	if cli.SortKeys != nil {
		cfg.Output.SortKeys = *cli.SortKeys
	}
	if cli.Color != nil {
		cfg.Output.Color = *cli.Color
	}
	if cli.IncludeRaw != nil {
		cfg.Output.IncludeRaw = *cli.IncludeRaw
	}
	if cli.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
