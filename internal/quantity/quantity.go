// Package quantity normalizes Kubernetes resource quantity strings into
// canonical integer units: millicores for CPU, bytes for memory.
//
// All accumulation elsewhere in the program happens in these canonical units;
// the display conversions (Cores, MiB, GiB) exist only for rendering and must
// never feed back into arithmetic.
package quantity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dimension identifies which resource a quantity string describes.
type Dimension int

const (
	CPU Dimension = iota
	Memory
)

func (d Dimension) String() string {
	switch d {
	case CPU:
		return "cpu"
	case Memory:
		return "memory"
	default:
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
}

// ParseError reports a quantity string that could not be normalized. It
// carries the raw value so callers can attribute the failure to a specific
// field when recording warnings.
type ParseError struct {
	Dimension Dimension
	Value     string
	Reason    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s quantity %q: %s", e.Dimension, e.Value, e.Reason)
}

// memorySuffixes maps Kubernetes memory suffixes to byte multipliers. Binary
// suffixes (Ki..Ti) are powers of 1024, decimal ones (K..T) powers of 1000;
// the two families never cross-equate.
var memorySuffixes = []struct {
	suffix string
	factor float64
}{
	{"Ki", 1 << 10},
	{"Mi", 1 << 20},
	{"Gi", 1 << 30},
	{"Ti", 1 << 40},
	{"K", 1e3},
	{"M", 1e6},
	{"G", 1e9},
	{"T", 1e12},
}

// Parse converts a raw Kubernetes quantity string into its canonical unit for
// the given dimension. It is a pure function of its inputs: no locale, no
// ambient state.
func Parse(raw string, d Dimension) (int64, error) {
	if raw == "" {
		return 0, &ParseError{Dimension: d, Value: raw, Reason: "empty string"}
	}
	switch d {
	case CPU:
		return parseCPU(raw)
	case Memory:
		return parseMemory(raw)
	default:
		return 0, &ParseError{Dimension: d, Value: raw, Reason: "unknown dimension"}
	}
}

// parseCPU handles the two CPU spellings: "500m" (already millicores, whole
// numbers only) and "0.5" / "2" (cores, at most millicore precision).
func parseCPU(raw string) (int64, error) {
	if num, ok := strings.CutSuffix(raw, "m"); ok {
		millis, err := strconv.ParseInt(num, 10, 64)
		if err != nil {
			return 0, &ParseError{Dimension: CPU, Value: raw, Reason: "millicore values must be whole numbers"}
		}
		if millis < 0 {
			return 0, &ParseError{Dimension: CPU, Value: raw, Reason: "negative values are not allowed"}
		}
		return millis, nil
	}

	whole, frac, hasFrac := strings.Cut(raw, ".")
	cores, err := strconv.ParseUint(whole, 10, 63)
	if err != nil {
		if strings.HasPrefix(whole, "-") {
			return 0, &ParseError{Dimension: CPU, Value: raw, Reason: "negative values are not allowed"}
		}
		return 0, &ParseError{Dimension: CPU, Value: raw, Reason: "non-numeric mantissa"}
	}
	if cores > math.MaxInt64/1000 {
		return 0, &ParseError{Dimension: CPU, Value: raw, Reason: "value overflows int64 millicores"}
	}
	millis := int64(cores) * 1000

	if hasFrac {
		if frac == "" || len(frac) > 3 {
			return 0, &ParseError{Dimension: CPU, Value: raw, Reason: "precision finer than one millicore"}
		}
		part, err := strconv.ParseUint(frac, 10, 32)
		if err != nil {
			return 0, &ParseError{Dimension: CPU, Value: raw, Reason: "non-numeric mantissa"}
		}
		// Scale e.g. "5" -> 500, "25" -> 250.
		for i := len(frac); i < 3; i++ {
			part *= 10
		}
		millis += int64(part)
	}
	return millis, nil
}

// parseMemory strips a recognized suffix and converts the remaining mantissa
// to bytes, rounding a fractional mantissa (e.g. "1.5Gi") to the nearest byte.
func parseMemory(raw string) (int64, error) {
	num := raw
	factor := 1.0
	for _, s := range memorySuffixes {
		if v, ok := strings.CutSuffix(raw, s.suffix); ok {
			num, factor = v, s.factor
			break
		}
	}
	if num == "" {
		return 0, &ParseError{Dimension: Memory, Value: raw, Reason: "missing numeric mantissa"}
	}
	if strings.HasPrefix(num, "-") {
		return 0, &ParseError{Dimension: Memory, Value: raw, Reason: "negative values are not allowed"}
	}
	// ParseFloat also accepts spellings that are not valid quantities
	// ("inf", "0x1p4"); reject anything that is not plain digits, one
	// optional dot, and an optional exponent.
	for _, r := range num {
		switch {
		case r >= '0' && r <= '9', r == '.', r == 'e', r == 'E', r == '+':
		default:
			return 0, &ParseError{Dimension: Memory, Value: raw, Reason: "unknown suffix or non-numeric mantissa"}
		}
	}
	val, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, &ParseError{Dimension: Memory, Value: raw, Reason: "unknown suffix or non-numeric mantissa"}
	}
	bytes := math.Round(val * factor)
	if bytes > math.MaxInt64 {
		return 0, &ParseError{Dimension: Memory, Value: raw, Reason: "value overflows int64 bytes"}
	}
	return int64(bytes), nil
}

// Cores converts canonical millicores to whole cores for display.
func Cores(millicores int64) float64 {
	return float64(millicores) / 1000
}

// MiB converts canonical bytes to binary mebibytes for display.
func MiB(bytes int64) float64 {
	return float64(bytes) / (1 << 20)
}

// GiB converts canonical bytes to binary gibibytes for display.
func GiB(bytes int64) float64 {
	return float64(bytes) / (1 << 30)
}
