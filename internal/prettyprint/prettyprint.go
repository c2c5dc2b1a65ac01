// Package prettyprint renders numeric values as human-readable strings
// according to a units.Unit, e.g. 1048576 bytes as "1.00 MB".
package prettyprint

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"golang.org/x/exp/constraints"

	unit "github.com/mcncl/prettyjson/internal/units"
)

// Number is the set of types Print accepts.
type Number interface {
	constraints.Integer | constraints.Float
}

const (
	thousand = 1000.0
	kibibyte = 1024.0

	nanosPerMicro  = 1e3
	nanosPerMilli  = 1e6
	nanosPerSecond = 1e9

	millisPerSecond = 1000
	millisPerMinute = 60 * millisPerSecond
	millisPerHour   = 60 * millisPerMinute

	// Millisecond magnitudes from here on do not fit in an int64.
	maxIntMillis = float64(math.MaxInt64)
)

var (
	countSuffixes = []string{"", "K", "M", "B"}
	byteSuffixes  = []string{"B", "KB", "MB", "GB", "TB", "PB"}
)

// Print returns the display string for value interpreted as u. It is pure and
// deterministic. With unit.None the value is printed as a plain number.
func Print[T Number](value T, u unit.Unit) string {
	f := float64(value)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	switch u {
	case unit.Count, unit.CPUTicks:
		return printCount(value)
	case unit.CountPerSecond:
		return printCount(value) + "/sec"
	case unit.Bytes:
		return printBytes(value)
	case unit.BytesPerSecond:
		return printBytes(value) + "/sec"
	case unit.TimeNS:
		return printTimeNS(value)
	case unit.TimeUS:
		return printTimeNS(f * nanosPerMicro)
	case unit.TimeMS:
		return printTimeMSValue(f, isFloat[T]())
	case unit.TimeS:
		return printTimeMSValue(f*millisPerSecond, isFloat[T]())
	case unit.DoubleValue:
		return strconv.FormatFloat(f, 'f', 2, 64)
	case unit.BasisPoints:
		return strconv.FormatFloat(f/100, 'f', 2, 64) + "%"
	default:
		return plain(value)
	}
}

// plain prints value without scaling, keeping full integer precision.
func plain[T Number](value T) string {
	switch {
	case isFloat[T]():
		return strconv.FormatFloat(float64(value), 'f', -1, 64)
	case isSigned[T]():
		return strconv.FormatInt(int64(value), 10)
	default:
		return strconv.FormatUint(uint64(value), 10)
	}
}

func isFloat[T Number]() bool {
	half := 0.5
	return T(half) != 0
}

func isSigned[T Number]() bool {
	minusOne := -1
	return T(minusOne) < 0
}

func sign(f float64) string {
	if f < 0 {
		return "-"
	}
	return ""
}

func printCount[T Number](value T) string {
	f := float64(value)
	mag := math.Abs(f)
	if mag < thousand {
		return plain(value)
	}
	return sign(f) + scaled("%.2f%s", mag, thousand, countSuffixes)
}

func printBytes[T Number](value T) string {
	f := float64(value)
	mag := math.Abs(f)
	if mag < kibibyte {
		return plain(value) + " B"
	}
	return sign(f) + scaled("%.2f %s", mag, kibibyte, byteSuffixes)
}

// scaled renders mag with units.CustomSize, moving to the next suffix when the
// two-decimal mantissa would round up to base ("1.00M", not "1000.00K").
func scaled(format string, mag, base float64, suffixes []string) string {
	m, i := mag, 0
	for m >= base && i < len(suffixes)-1 {
		m /= base
		i++
	}
	if i < len(suffixes)-1 && math.Round(m*100) >= base*100 {
		mag = math.Pow(base, float64(i+1))
	}
	return units.CustomSize(format, mag, base, suffixes)
}

func printTimeNS[T Number](value T) string {
	f := float64(value)
	mag := math.Abs(f)
	switch {
	case mag >= nanosPerSecond:
		return sign(f) + printMillis(mag/nanosPerMilli)
	case mag >= nanosPerMilli:
		return fmt.Sprintf("%s%.3fms", sign(f), mag/nanosPerMilli)
	case mag >= nanosPerMicro:
		return fmt.Sprintf("%s%.3fus", sign(f), mag/nanosPerMicro)
	default:
		return plain(value) + "ns"
	}
}

// printTimeMSValue handles sub-millisecond fractions, which the integral
// hour/minute/second layout cannot show.
func printTimeMSValue(ms float64, fractional bool) string {
	mag := math.Abs(ms)
	if fractional && mag < millisPerSecond && mag != math.Trunc(mag) {
		return fmt.Sprintf("%s%.3fms", sign(ms), mag)
	}
	return sign(ms) + printMillis(mag)
}

// printMillis lays out a non-negative millisecond magnitude. Magnitudes past
// the int64 range keep the hour/minute layout, computed in float64.
func printMillis(mag float64) string {
	if mag >= maxIntMillis {
		hours := math.Floor(mag / millisPerHour)
		minutes := math.Floor(math.Mod(mag, millisPerHour) / millisPerMinute)
		return fmt.Sprintf("%.0fh%.0fm", hours, minutes)
	}
	return printTimeMS(int64(mag))
}

// printTimeMS lays out a non-negative millisecond count as "1h2m", "1m30s",
// "1s002ms" or "12ms". Smaller units are dropped once a larger one is shown.
func printTimeMS(ms int64) string {
	var b strings.Builder

	hour := ms >= millisPerHour
	if hour {
		fmt.Fprintf(&b, "%dh", ms/millisPerHour)
		ms %= millisPerHour
	}

	minute := false
	if hour || ms >= millisPerMinute {
		fmt.Fprintf(&b, "%dm", ms/millisPerMinute)
		ms %= millisPerMinute
		minute = true
	}

	second := false
	if !hour && (minute || ms >= millisPerSecond) {
		fmt.Fprintf(&b, "%ds", ms/millisPerSecond)
		ms %= millisPerSecond
		second = true
	}

	if !hour && !minute {
		if second {
			fmt.Fprintf(&b, "%03dms", ms)
		} else {
			fmt.Fprintf(&b, "%dms", ms)
		}
	}

	return b.String()
}
