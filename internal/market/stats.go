package market

import (
	"errors"
	"math"
	"sort"
)

var ErrEmptyInput = errors.New("no values to aggregate")

// Stats holds benchmark statistics derived from the comparable-deal
// dataset. Recomputed on demand, never cached, so it always reflects the
// current dataset.
type Stats struct {
	SampleSize int `json:"sample_size"`

	LeverageMedian float64 `json:"leverage_median"`
	LeverageP25    float64 `json:"leverage_p25"`
	LeverageP75    float64 `json:"leverage_p75"`
	LeverageMin    float64 `json:"leverage_min"`
	LeverageMax    float64 `json:"leverage_max"`

	MarginMedianBps float64 `json:"margin_median_bps"`
	MarginP25Bps    float64 `json:"margin_p25_bps"`
	MarginP75Bps    float64 `json:"margin_p75_bps"`
	MarginMinBps    float64 `json:"margin_min_bps"`
	MarginMaxBps    float64 `json:"margin_max_bps"`

	DealSizeMedianMM float64 `json:"deal_size_median_mm"`
	ESGLinkedPct     float64 `json:"esg_linked_pct"`
	CovenantLitePct  float64 `json:"covenant_lite_pct"`
	AvgTenorMonths   float64 `json:"avg_tenor_months"`
}

// Median returns the middle element of the values sorted ascending, or
// the average of the two middle elements for even-length input.
func Median(values []float64) (float64, error) {
	n := len(values)
	if n == 0 {
		return 0, ErrEmptyInput
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2], nil
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, nil
}

// Percentile returns the nearest-rank percentile for 0 < p <= 1: the
// element at index ceil(n*p)-1 of the sorted values, clamped to the
// array bounds. Not interpolated; the result is always an element of the
// input.
func Percentile(values []float64, p float64) (float64, error) {
	n := len(values)
	if n == 0 {
		return 0, ErrEmptyInput
	}
	if p <= 0 || p > 1 {
		return 0, errors.New("percentile out of range (0, 1]")
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := int(math.Ceil(float64(n)*p)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx], nil
}

// ComputeStats derives the full benchmark summary from the given deals.
// Deterministic: identical input yields bit-identical output.
func ComputeStats(deals []ComparableDeal) (*Stats, error) {
	if len(deals) == 0 {
		return nil, ErrEmptyInput
	}

	leverages := make([]float64, len(deals))
	margins := make([]float64, len(deals))
	sizes := make([]float64, len(deals))
	var tenorSum float64
	var esgCount, covLiteCount int
	for i, d := range deals {
		leverages[i] = d.Leverage
		margins[i] = float64(d.MarginBps)
		sizes[i] = d.DealSizeMM
		tenorSum += float64(d.TenorMonths)
		if d.ESGLinked {
			esgCount++
		}
		if d.CovenantLite {
			covLiteCount++
		}
	}

	s := &Stats{SampleSize: len(deals)}
	s.LeverageMedian, _ = Median(leverages)
	s.LeverageP25, _ = Percentile(leverages, 0.25)
	s.LeverageP75, _ = Percentile(leverages, 0.75)
	s.LeverageMin, s.LeverageMax = minMax(leverages)
	s.MarginMedianBps, _ = Median(margins)
	s.MarginP25Bps, _ = Percentile(margins, 0.25)
	s.MarginP75Bps, _ = Percentile(margins, 0.75)
	s.MarginMinBps, s.MarginMaxBps = minMax(margins)
	s.DealSizeMedianMM, _ = Median(sizes)
	s.ESGLinkedPct = 100 * float64(esgCount) / float64(len(deals))
	s.CovenantLitePct = 100 * float64(covLiteCount) / float64(len(deals))
	s.AvgTenorMonths = tenorSum / float64(len(deals))
	return s, nil
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
