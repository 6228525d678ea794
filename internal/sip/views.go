package sip

// Line is one rate's series regrouped for charting; Amounts[y] is the value at year y.
type Line struct {
	Rate    float64
	Label   string
	Amounts []float64
}

// FinalYear returns the points of the last projected year in rate order.
func (p Projection) FinalYear() []Point {
	return p.YearPoints(p.Params.Years)
}

// YearPoints returns the points for a single year in rate order.
func (p Projection) YearPoints(year int) []Point {
	n := len(p.Params.Rates)
	if year < 0 || year > p.Params.Years || n == 0 {
		return nil
	}
	start := year * n
	if start+n > len(p.Series) {
		return nil
	}
	out := make([]Point, n)
	copy(out, p.Series[start:start+n])
	return out
}

// Lines groups the series by rate, preserving rate order.
func (p Projection) Lines() []Line {
	n := len(p.Params.Rates)
	lines := make([]Line, n)
	for i, r := range p.Params.Rates {
		lines[i] = Line{
			Rate:    r,
			Label:   RateLabel(r),
			Amounts: make([]float64, p.Params.Years+1),
		}
	}
	for i, pt := range p.Series {
		lines[i%n].Amounts[pt.Year] = pt.Amount
	}
	return lines
}

// At looks up the value for a year and rate.
func (p Projection) At(year int, rate float64) (float64, bool) {
	for _, pt := range p.YearPoints(year) {
		if pt.Rate == rate {
			return pt.Amount, true
		}
	}
	return 0, false
}

// InvestedAt is the amount contributed by the end of year.
func (p Projection) InvestedAt(year int) float64 {
	return Invested(p.Params.Monthly, year)
}

// Gain is the value of pt above what had been contributed by its year.
func (p Projection) Gain(pt Point) float64 {
	return pt.Amount - p.InvestedAt(pt.Year)
}

// Peak is the largest amount in the series.
func (p Projection) Peak() float64 {
	var peak float64
	for _, pt := range p.Series {
		if pt.Amount > peak {
			peak = pt.Amount
		}
	}
	return peak
}
