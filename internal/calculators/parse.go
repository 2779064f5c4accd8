package calculators

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses a user-entered number. Blank, malformed, NaN and infinite values
// are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseOptionalNumber treats a blank value as absent (zero, true).
func ParseOptionalNumber(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, true
	}
	return ParseNumber(s)
}

func positive(f float64) bool {
	return f > 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ParsePowerFactorInput builds an input from form strings. Any malformed required
// field, or a malformed optional one, yields no input.
func ParsePowerFactorInput(kw, currentPF, targetPF, voltage, phases string) (PowerFactorInput, bool) {
	var in PowerFactorInput
	var ok bool
	if in.KW, ok = ParseNumber(kw); !ok {
		return in, false
	}
	if in.CurrentPF, ok = ParseNumber(currentPF); !ok {
		return in, false
	}
	if in.TargetPF, ok = ParseNumber(targetPF); !ok {
		return in, false
	}
	if in.VoltageV, ok = ParseOptionalNumber(voltage); !ok {
		return in, false
	}
	p, ok := ParseOptionalNumber(phases)
	if !ok || p != math.Trunc(p) {
		return in, false
	}
	in.Phases = int(p)
	return in, true
}

// Round2 rounds to two decimals for display.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
