package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/mcncl/prettyjson/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, pattern, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", pattern)
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(tmpFile.Name()) })

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	_ = tmpFile.Close()
	return tmpFile.Name()
}

// runToFile runs the pipeline on input with cfg and returns the decoded output
func runToFile(t *testing.T, input string, cfg *config.Config) map[string]any {
	t.Helper()

	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempFile(t, "test_input_*.yml", input)
	CLI.Output = writeTempFile(t, "test_output_*.json", "")

	err := run(&Context{Config: cfg})
	require.NoError(t, err)

	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(content, &out), "output: %s", content)
	return out
}

func TestRun_PrettyUnits(t *testing.T) {
	input := `
- name: heap
  value: 1048576
  unit: bytes
- name: heap_raw_count
  value: 1048576
  unit: none
- name: label
  value: hello
  unit: bytes
- name: healthy
  value: true
`
	out := runToFile(t, input, config.NewConfig())

	assert.Equal(t, "1.00 MB", out["heap"])
	assert.Equal(t, float64(1048576), out["heap_raw_count"])
	assert.Equal(t, "hello", out["label"])
	assert.Equal(t, true, out["healthy"])
}

func TestRun_InfersUnitsFromNames(t *testing.T) {
	out := runToFile(t, "gc_pause_ms: 1002\nrx_bytes: 2048\nrequests: 7\n", config.NewConfig())

	assert.Equal(t, "1s002ms", out["gc_pause_ms"])
	assert.Equal(t, "2.00 KB", out["rx_bytes"])
	assert.Equal(t, float64(7), out["requests"])
}

func TestRun_RawConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Units.Pretty = false

	out := runToFile(t, "rx_bytes: 2048\n", cfg)
	assert.Equal(t, float64(2048), out["rx_bytes"])
}

func TestRun_KeyCaseAndIncludeRaw(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Naming.KeyCase = config.KeyCaseLowerCamel
	cfg.Output.IncludeRaw = true
	cfg.Output.RawSuffix = "Raw"

	out := runToFile(t, "rx_bytes: 2048\n", cfg)
	assert.Equal(t, "2.00 KB", out["rxBytes"])
	assert.Equal(t, float64(2048), out["rxBytesRaw"])
}

func TestRun_CompactOutput(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	cfg := config.NewConfig()
	cfg.Output.Indent = 0

	CLI.Input = writeTempFile(t, "test_input_*.yml", "a_bytes: 1024\nb: x\n")
	CLI.Output = writeTempFile(t, "test_output_*.json", "")

	require.NoError(t, run(&Context{Config: cfg}))

	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "{\"a_bytes\":\"1.00 KB\",\"b\":\"x\"}\n", string(content))
}

func TestRun_InvalidInput(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempFile(t, "test_invalid_*.yml", `{"invalid": [json`)
	CLI.Output = ""

	err := run(&Context{Config: config.NewConfig()})
	assert.Error(t, err)
}

func TestParseInput_FromFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempFile(t, "test_parse_*.json", `{"heap_bytes": 42, "name": "Alice"}`)

	set, err := parseInput()
	require.NoError(t, err)
	assert.Equal(t, []string{"heap_bytes", "name"}, set.Names())
}

func TestParseInput_FromStdin(t *testing.T) {
	originalCLI := CLI
	originalStdin := os.Stdin
	defer func() {
		CLI = originalCLI
		os.Stdin = originalStdin
	}()

	// Clear input file to force stdin reading
	CLI.Input = ""

	r, w, err := os.Pipe()
	require.NoError(t, err)

	go func() {
		defer func() { _ = w.Close() }()
		_, _ = w.WriteString(`[{"name": "apple", "value": 1}, {"name": "banana", "value": 2}]`)
	}()

	os.Stdin = r
	defer func() { _ = r.Close() }()

	set, err := parseInput()
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "banana"}, set.Names())
}

func TestParseInput_EmptyFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempFile(t, "test_empty_*.yml", "")

	_, err := parseInput()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestParseInput_NonExistentFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = "/non/existent/file.yml"

	_, err := parseInput()
	assert.Error(t, err)
}

func TestWriteOutput_ToFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Output = writeTempFile(t, "test_write_*.json", "")

	data := []byte("{\"a\": 1}\n")
	require.NoError(t, writeOutput(data))

	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(content))
}

func TestWriteOutput_FileError(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	// Try to write to a directory that doesn't exist
	CLI.Output = "/non/existent/dir/output.json"

	err := writeOutput([]byte("{}"))
	assert.Error(t, err)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Config = writeTempFile(t, "test_config_*.yml", "naming:\n  key_case: snake\noutput:\n  indent: 4\n")
	CLI.KeyCase = "kebab"
	CLI.Indent = -1
	CLI.Raw = true

	cfg, path, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, CLI.Config, path)
	assert.Equal(t, config.KeyCaseKebab, cfg.Naming.KeyCase)
	assert.Equal(t, 4, cfg.Output.Indent)
	assert.False(t, cfg.Units.Pretty)
	assert.False(t, cfg.Dev.Debug)
}

func TestLoadConfig_DebugFromFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Config = writeTempFile(t, "test_config_*.yml", "dev:\n  debug: true\n")
	CLI.Debug = false
	CLI.Indent = -1

	cfg, _, err := loadConfig()
	require.NoError(t, err)
	require.True(t, cfg.Dev.Debug)

	// The logger main builds from this config emits debug records
	var buf bytes.Buffer
	newLogger(&buf, cfg.Dev.Debug).Debug("using config file", "path", CLI.Config)
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestRun_DebugLogging(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempFile(t, "test_input_*.yml", "rx_bytes: 2048\n")
	CLI.Output = writeTempFile(t, "test_output_*.json", "")

	cfg := config.NewConfig()
	cfg.Dev.Debug = true

	var buf bytes.Buffer
	err := run(&Context{Debug: true, Config: cfg, Logger: newLogger(&buf, cfg.Dev.Debug)})
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, "msg=\"resolved unit\" metric=rx_bytes unit=BYTES source=suffix")
	assert.Contains(t, logs, "string_bytes=")
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	newLogger(&buf, true).Debug("shown", "metric", "heap")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "metric=heap")
}

func TestListUnits(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listUnits(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "UNIT"))
	assert.Contains(t, out, "1.00 MB")
	assert.Contains(t, out, "1s002ms")
	assert.Contains(t, out, "TIME_NS")
}
