// Package units defines the closed set of display units a numeric value can
// carry. Names follow the upper snake case form used in input and config
// files ("BYTES", "TIME_MS").
package units

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// Unit describes how a numeric value should be interpreted for display.
// The zero value is None, which means "no formatting".
type Unit int

const (
	None Unit = iota
	Count
	CountPerSecond
	CPUTicks
	Bytes
	BytesPerSecond
	TimeNS
	TimeUS
	TimeMS
	TimeS
	DoubleValue
	BasisPoints
)

var unitNames = [...]string{
	None:           "NONE",
	Count:          "UNIT",
	CountPerSecond: "UNIT_PER_SECOND",
	CPUTicks:       "CPU_TICKS",
	Bytes:          "BYTES",
	BytesPerSecond: "BYTES_PER_SECOND",
	TimeNS:         "TIME_NS",
	TimeUS:         "TIME_US",
	TimeMS:         "TIME_MS",
	TimeS:          "TIME_S",
	DoubleValue:    "DOUBLE_VALUE",
	BasisPoints:    "BASIS_POINTS",
}

// All returns every unit in declaration order.
func All() []Unit {
	all := make([]Unit, len(unitNames))
	for i := range unitNames {
		all[i] = Unit(i)
	}
	return all
}

// Valid reports whether u is one of the declared units.
func (u Unit) Valid() bool {
	return u >= None && int(u) < len(unitNames)
}

// String returns the upper snake case name of the unit, e.g. "TIME_MS".
func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// ParseUnit converts a unit name into a Unit. Matching is case-insensitive and
// accepts camel case, dashes or spaces as word separators ("timeMs", "time-ms").
// An empty name parses as None.
func ParseUnit(name string) (Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return None, nil
	}
	normalized := strcase.ToScreamingSnake(name)
	for i, n := range unitNames {
		if n == normalized {
			return Unit(i), nil
		}
	}
	return None, fmt.Errorf("unknown unit %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("invalid unit %d", int(u))
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
