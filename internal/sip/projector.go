// Package sip projects the future value of a Systematic Investment Plan,
// a fixed monthly contribution compounded at a set of annual rates.
package sip

import (
	"fmt"
	"math"
	"strconv"
)

// DefaultRates is the annual percentage rate set compared by every view.
var DefaultRates = []float64{8, 10, 12, 14, 18}

// Params are the inputs of a single projection.
type Params struct {
	Monthly float64   `json:"monthly"`
	Years   int       `json:"years"`
	Rates   []float64 `json:"rates"`
}

// Point is the accumulated value for one (year, rate) pair.
type Point struct {
	Year   int     `json:"year"`
	Rate   float64 `json:"rate"`
	Label  string  `json:"rate_label"`
	Amount float64 `json:"amount"`
}

// Projection is the full series for a Params value plus the amount invested.
// Series holds every year-0 point first, then year-major, rate-minor.
type Projection struct {
	Params        Params  `json:"params"`
	Series        []Point `json:"series"`
	TotalInvested float64 `json:"total_invested"`
}

// ProjectDefault runs Project against DefaultRates.
func ProjectDefault(monthly float64, years int) (Projection, error) {
	return Project(monthly, years, DefaultRates)
}

// Project computes the value of contributing monthly at the start of every
// month for years, compounding monthly at each annual rate divided by 12.
//
// Inputs are validated before any work is done and are never clamped.
// Project is a pure function and is safe for concurrent use.
func Project(monthly float64, years int, rates []float64) (Projection, error) {
	if err := validate(monthly, years, rates); err != nil {
		return Projection{}, err
	}

	rs := make([]float64, len(rates))
	copy(rs, rates)
	labels := make([]string, len(rs))
	for i, r := range rs {
		labels[i] = RateLabel(r)
	}

	series := make([]Point, 0, (years+1)*len(rs))
	for i, r := range rs {
		series = append(series, Point{Year: 0, Rate: r, Label: labels[i]})
	}
	for year := 1; year <= years; year++ {
		for i, r := range rs {
			series = append(series, Point{
				Year:   year,
				Rate:   r,
				Label:  labels[i],
				Amount: FutureValue(monthly, r, year*12),
			})
		}
	}

	return Projection{
		Params:        Params{Monthly: monthly, Years: years, Rates: rs},
		Series:        series,
		TotalInvested: Invested(monthly, years),
	}, nil
}

// FutureValue is the annuity-due value of months contributions of monthly
// at an annual percentage rate compounded monthly. rate must be positive.
func FutureValue(monthly, rate float64, months int) float64 {
	r := (rate / 100) / 12
	growth := math.Pow(1+r, float64(months))
	return monthly * ((growth - 1) / r) * (1 + r)
}

// Invested is the total contributed after years of monthly payments.
func Invested(monthly float64, years int) float64 {
	return monthly * 12 * float64(years)
}

// RateLabel renders a rate the way tables and legends show it, e.g. "12%".
func RateLabel(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + "%"
}

func validate(monthly float64, years int, rates []float64) error {
	if math.IsNaN(monthly) || math.IsInf(monthly, 0) || monthly <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidContribution, monthly)
	}
	if years < MinYears || years > MaxYears {
		return fmt.Errorf("%w: %d years (want %d-%d)", ErrInvalidDuration, years, MinYears, MaxYears)
	}
	if len(rates) == 0 {
		return fmt.Errorf("%w: empty rate set", ErrInvalidRate)
	}
	seen := make(map[float64]struct{}, len(rates))
	for _, r := range rates {
		if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
			return fmt.Errorf("%w: %v", ErrInvalidRate, r)
		}
		if _, dup := seen[r]; dup {
			return fmt.Errorf("%w: duplicate rate %v", ErrInvalidRate, r)
		}
		seen[r] = struct{}{}
	}
	return nil
}
