package sip

import (
	"errors"
	"fmt"
)

// Validation errors. Every failure returned by Project wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	// ErrInvalidContribution indicates a non-positive or non-finite monthly amount.
	ErrInvalidContribution = errors.New("sip: invalid monthly contribution")
	// ErrInvalidDuration indicates a year count outside [MinYears, MaxYears] or not whole.
	ErrInvalidDuration = errors.New("sip: invalid duration")
	// ErrInvalidRate indicates an empty rate set or a rate that is not a distinct positive number.
	ErrInvalidRate = errors.New("sip: invalid rate")
)

// Shell-level contribution constraints. They wrap ErrInvalidContribution.
var (
	ErrBelowMinimum = fmt.Errorf("%w: below minimum of %d", ErrInvalidContribution, MinContribution)
	ErrOffStep      = fmt.Errorf("%w: not a multiple of %d", ErrInvalidContribution, ContributionStep)
)

// ErrorCode maps a validation error to a short machine-readable code.
// Unknown errors map to "internal".
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidContribution):
		return "invalid_contribution"
	case errors.Is(err, ErrInvalidDuration):
		return "invalid_duration"
	case errors.Is(err, ErrInvalidRate):
		return "invalid_rate"
	default:
		return "internal"
	}
}

// IsValidation reports whether err is one of the input validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidContribution) ||
		errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrInvalidRate)
}
