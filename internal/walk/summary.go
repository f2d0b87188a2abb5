package walk

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a distribution of terminal values. Counts[k] holds the
// number of values in [Dividers[k], Dividers[k+1]).
type Summary struct {
	Count    int       `json:"count"`
	Mean     float64   `json:"mean"`
	StdDev   float64   `json:"stddev"`
	Min      float64   `json:"min"`
	Max      float64   `json:"max"`
	Median   float64   `json:"median"`
	P05      float64   `json:"p05"`
	P95      float64   `json:"p95"`
	Dividers []float64 `json:"dividers"`
	Counts   []float64 `json:"counts"`
}

// Summarize computes statistics and a histogram with the given number of
// bins. The histogram is left empty when the values are not all finite.
func Summarize(values []float64, bins int) *Summary {
	if len(values) == 0 {
		return &Summary{}
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	x := make([]float64, len(values))
	copy(x, values)
	sort.Float64s(x)

	s := &Summary{
		Count:  len(x),
		Mean:   stat.Mean(x, nil),
		Min:    x[0],
		Max:    x[len(x)-1],
		Median: stat.Quantile(0.5, stat.Empirical, x, nil),
		P05:    stat.Quantile(0.05, stat.Empirical, x, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, x, nil),
	}
	if len(x) > 1 {
		s.StdDev = stat.StdDev(x, nil)
	}

	lo, hi := s.Min, s.Max
	if !finite(lo) || !finite(hi) {
		return s
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	s.Dividers = floats.Span(make([]float64, bins+1), lo, hi)
	// the last bin is half-open, nudge it past the maximum
	s.Dividers[bins] = math.Nextafter(hi, math.Inf(1))
	s.Counts = stat.Histogram(make([]float64, bins), s.Dividers, x, nil)
	return s
}
