package sip

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Input bounds shared by the CLI, dashboard and HTTP API.
const (
	MinContribution     = 500
	ContributionStep    = 500
	DefaultContribution = 5000

	MinYears     = 1
	MaxYears     = 40
	DefaultYears = 15
)

// CheckContribution applies the shell constraints on top of the engine's own
// positivity check: at least MinContribution, in multiples of ContributionStep.
func CheckContribution(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidContribution, v)
	}
	if v < MinContribution {
		return fmt.Errorf("%w (got %v)", ErrBelowMinimum, v)
	}
	if math.Mod(v, ContributionStep) != 0 {
		return fmt.Errorf("%w (got %v)", ErrOffStep, v)
	}
	return nil
}

// StepContribution moves v by n steps, never going below MinContribution.
func StepContribution(v float64, n int) float64 {
	next := v + float64(n*ContributionStep)
	if next < MinContribution {
		return MinContribution
	}
	return next
}

// ClampYears keeps a year count inside [MinYears, MaxYears].
func ClampYears(y int) int {
	return max(MinYears, min(MaxYears, y))
}

// WholeYears converts a parsed numeric duration to a year count.
func WholeYears(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %v is not a whole number of years", ErrInvalidDuration, v)
	}
	if v < MinYears || v > MaxYears {
		return 0, fmt.Errorf("%w: %v years (want %d-%d)", ErrInvalidDuration, v, MinYears, MaxYears)
	}
	return int(v), nil
}

// ParseRates parses a comma separated list such as "8,10,12.5".
// An empty string yields DefaultRates.
func ParseRates(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		out := make([]float64, len(DefaultRates))
		copy(out, DefaultRates)
		return out, nil
	}

	parts := strings.Split(s, ",")
	rates := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSuffix(strings.TrimSpace(p), "%")
		if p == "" {
			continue
		}
		r, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRate, p)
		}
		rates = append(rates, r)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: empty rate set", ErrInvalidRate)
	}
	return rates, nil
}
