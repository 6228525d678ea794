package sip

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestProject_SeriesShape(t *testing.T) {
	p, err := ProjectDefault(5000, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := (15 + 1) * len(DefaultRates)
	if len(p.Series) != want {
		t.Fatalf("len(Series) = %d, want %d", len(p.Series), want)
	}

	perRate := make(map[float64]map[int]bool)
	for _, pt := range p.Series {
		if perRate[pt.Rate] == nil {
			perRate[pt.Rate] = make(map[int]bool)
		}
		if perRate[pt.Rate][pt.Year] {
			t.Fatalf("duplicate point for year %d rate %v", pt.Year, pt.Rate)
		}
		perRate[pt.Rate][pt.Year] = true
	}
	for _, r := range DefaultRates {
		for y := 0; y <= 15; y++ {
			if !perRate[r][y] {
				t.Errorf("missing point for year %d rate %v", y, r)
			}
		}
	}
}

func TestProject_InsertionOrder(t *testing.T) {
	p, err := ProjectDefault(1000, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := len(DefaultRates)
	for i, pt := range p.Series {
		wantYear := i / n
		wantRate := DefaultRates[i%n]
		if pt.Year != wantYear || pt.Rate != wantRate {
			t.Fatalf("Series[%d] = (%d, %v), want (%d, %v)", i, pt.Year, pt.Rate, wantYear, wantRate)
		}
	}
}

func TestProject_YearZeroIsZero(t *testing.T) {
	p, err := ProjectDefault(2500, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, pt := range p.YearPoints(0) {
		if pt.Amount != 0 {
			t.Errorf("year 0 rate %s amount = %v, want 0", pt.Label, pt.Amount)
		}
	}
}

func TestProject_MonotonicInYear(t *testing.T) {
	p, err := ProjectDefault(500, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, line := range p.Lines() {
		for y := 1; y < len(line.Amounts); y++ {
			if line.Amounts[y] <= line.Amounts[y-1] {
				t.Fatalf("rate %s: amount(%d)=%v not above amount(%d)=%v",
					line.Label, y, line.Amounts[y], y-1, line.Amounts[y-1])
			}
		}
	}
}

func TestProject_IncreasingInRate(t *testing.T) {
	p, err := ProjectDefault(5000, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for y := 1; y <= 20; y++ {
		pts := p.YearPoints(y)
		for i := 1; i < len(pts); i++ {
			if pts[i].Amount <= pts[i-1].Amount {
				t.Fatalf("year %d: %s (%v) not above %s (%v)",
					y, pts[i].Label, pts[i].Amount, pts[i-1].Label, pts[i-1].Amount)
			}
		}
	}
}

func TestProject_TotalInvested(t *testing.T) {
	p, err := ProjectDefault(5000, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TotalInvested != 900_000 {
		t.Fatalf("TotalInvested = %v, want 900000", p.TotalInvested)
	}
}

func TestProject_KnownValues(t *testing.T) {
	tests := []struct {
		name    string
		monthly float64
		years   int
		rate    float64
		want    float64
	}{
		// 5000 * ((1.01^180 - 1) / 0.01) * 1.01
		{"5000 for 15y at 12%", 5000, 15, 12, 2_522_880},
		{"1000 for 1y at 8%", 1000, 1, 8, 12_533},
		{"5000 for 15y at 8%", 5000, 15, 8, 1_741_726},
		{"5000 for 15y at 18%", 5000, 15, 18, 4_596_044},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Project(tt.monthly, tt.years, []float64{tt.rate})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, ok := p.At(tt.years, tt.rate)
			if !ok {
				t.Fatalf("no point for year %d rate %v", tt.years, tt.rate)
			}
			if math.Abs(got-tt.want) > 1 {
				t.Errorf("amount = %.2f, want %.0f (+-1)", got, tt.want)
			}
		})
	}
}

func TestProject_AnnuityDueFactor(t *testing.T) {
	// One month at 12%: the single contribution earns one month of interest.
	got := FutureValue(1000, 12, 1)
	if math.Abs(got-1010) > 1e-9 {
		t.Fatalf("FutureValue(1000, 12, 1) = %v, want 1010", got)
	}
}

func TestProject_Deterministic(t *testing.T) {
	a, err := ProjectDefault(7500, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]Projection, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = ProjectDefault(7500, 25)
		}(i)
	}
	wg.Wait()

	for i, b := range results {
		if len(b.Series) != len(a.Series) {
			t.Fatalf("run %d: len = %d, want %d", i, len(b.Series), len(a.Series))
		}
		for j := range a.Series {
			if a.Series[j] != b.Series[j] {
				t.Fatalf("run %d: Series[%d] = %+v, want %+v", i, j, b.Series[j], a.Series[j])
			}
		}
	}
}

func TestProject_DoesNotAliasRates(t *testing.T) {
	rates := []float64{8, 12}
	p, err := Project(1000, 2, rates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rates[0] = 99
	if p.Params.Rates[0] != 8 {
		t.Fatalf("Params.Rates[0] = %v after caller mutation, want 8", p.Params.Rates[0])
	}
}

func TestProject_Errors(t *testing.T) {
	tests := []struct {
		name    string
		monthly float64
		years   int
		rates   []float64
		want    error
	}{
		{"zero contribution", 0, 10, DefaultRates, ErrInvalidContribution},
		{"negative contribution", -500, 10, DefaultRates, ErrInvalidContribution},
		{"NaN contribution", math.NaN(), 10, DefaultRates, ErrInvalidContribution},
		{"zero years", 5000, 0, DefaultRates, ErrInvalidDuration},
		{"too many years", 5000, 41, DefaultRates, ErrInvalidDuration},
		{"zero rate", 5000, 10, []float64{8, 0, 12}, ErrInvalidRate},
		{"negative rate", 5000, 10, []float64{-2}, ErrInvalidRate},
		{"empty rates", 5000, 10, nil, ErrInvalidRate},
		{"duplicate rates", 5000, 10, []float64{8, 8}, ErrInvalidRate},
		{"infinite rate", 5000, 10, []float64{math.Inf(1)}, ErrInvalidRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Project(tt.monthly, tt.years, tt.rates)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if len(p.Series) != 0 {
				t.Errorf("Series has %d points on error, want 0", len(p.Series))
			}
		})
	}
}

func TestRateLabel(t *testing.T) {
	tests := map[float64]string{
		8:    "8%",
		12.5: "12.5%",
		18:   "18%",
	}
	for in, want := range tests {
		if got := RateLabel(in); got != want {
			t.Errorf("RateLabel(%v) = %q, want %q", in, got, want)
		}
	}
}
