package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestUnit_String(t *testing.T) {
	assert.Equal(t, "NONE", None.String())
	assert.Equal(t, "BYTES", Bytes.String())
	assert.Equal(t, "TIME_MS", TimeMS.String())
	assert.Equal(t, "UNIT_PER_SECOND", CountPerSecond.String())
	assert.Equal(t, "Unit(99)", Unit(99).String())
}

func TestUnit_ZeroValueIsNone(t *testing.T) {
	var u Unit
	assert.Equal(t, None, u)
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Unit
		wantErr  bool
	}{
		{name: "empty", input: "", expected: None},
		{name: "canonical", input: "BYTES", expected: Bytes},
		{name: "lower case", input: "bytes", expected: Bytes},
		{name: "snake case", input: "time_ms", expected: TimeMS},
		{name: "kebab case", input: "time-ms", expected: TimeMS},
		{name: "spaces", input: "bytes per second", expected: BytesPerSecond},
		{name: "surrounding whitespace", input: "  TIME_NS ", expected: TimeNS},
		{name: "none", input: "none", expected: None},
		{name: "unknown", input: "furlongs", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUnit(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseUnit_RoundTripsEveryName(t *testing.T) {
	for _, u := range All() {
		parsed, err := ParseUnit(u.String())
		require.NoError(t, err)
		assert.Equal(t, u, parsed)
	}
}

func TestUnit_Valid(t *testing.T) {
	assert.True(t, None.Valid())
	assert.True(t, BasisPoints.Valid())
	assert.False(t, Unit(-1).Valid())
	assert.False(t, Unit(len(unitNames)).Valid())
}

func TestUnit_YAML(t *testing.T) {
	var doc struct {
		Unit Unit `yaml:"unit"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("unit: bytes_per_second\n"), &doc))
	assert.Equal(t, BytesPerSecond, doc.Unit)

	err := yaml.Unmarshal([]byte("unit: parsecs\n"), &doc)
	assert.Error(t, err)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "unit: BYTES_PER_SECOND\n", string(out))
}
