package stats

import (
	"sort"
	"time"

	"returnlag/internal/orders"

	mstats "github.com/montanaflynn/stats"
)

// Fallback markers used when the baseline holds no usable returns.
const (
	DefaultP20 = 4
	DefaultP50 = 14
	DefaultP90 = 30
)

// LagMarkers are the percentile markers of the purchase-to-return lag. P50 is the
// primary marker: cohorts younger than it are never projected.
type LagMarkers struct {
	P20 int `json:"p20"`
	P50 int `json:"p50"`
	P90 int `json:"p90"`
}

// DefaultMarkers returns the fallback markers.
func DefaultMarkers() LagMarkers {
	return LagMarkers{P20: DefaultP20, P50: DefaultP50, P90: DefaultP90}
}

// LagSummary describes the raw baseline samples.
type LagSummary struct {
	Samples   int     `json:"samples"`
	MeanLag   float64 `json:"meanLag"`
	MedianLag float64 `json:"medianLag"`
	StdDevLag float64 `json:"stdDevLag"`
}

// LagDistribution is the empirical lag distribution learned from the baseline window.
type LagDistribution struct {
	Markers   LagMarkers    `json:"markers"`
	Histogram LagHistogram  `json:"histogram"`
	Baseline  orders.Window `json:"baseline"`
	Summary   LagSummary    `json:"summary"`
	IsDefault bool          `json:"isDefault"`
	samples   []int
}

// Samples returns a copy of the sorted lag samples.
func (d LagDistribution) Samples() []int {
	out := make([]int, len(d.samples))
	copy(out, d.samples)
	return out
}

// BaselineWindow is [cutoff-60d, cutoff).
func BaselineWindow(cutoff time.Time) orders.Window {
	return orders.NewWindow(orders.AddDays(cutoff, -BaselineDays), BaselineDays)
}

// CollectLagSamples gathers one lag per effectively returned unit for baseline orders.
// Rows without a return date or with a negative lag are left out.
func CollectLagSamples(records []orders.OrderRecord, baseline orders.Window) []int {
	var samples []int
	for _, r := range records {
		if !r.HasPurchaseDate() || !baseline.Contains(r.PurchaseDate) {
			continue
		}
		lag, ok := r.Lag()
		if !ok || lag < 0 {
			continue
		}
		units := r.EffectiveReturns()
		for i := 0; i < units; i++ {
			samples = append(samples, lag)
		}
	}
	sort.Ints(samples)
	return samples
}

// DeriveMarkers computes clamped P20/P50/P90 from ascending samples.
func DeriveMarkers(sorted []int) LagMarkers {
	if len(sorted) == 0 {
		return DefaultMarkers()
	}

	// 1. Primary marker, kept within a sane planning range
	p50 := clampInt(indexPercentile(sorted, 0.5), 5, 60)

	// 2. Early marker, strictly below P50 and at least one day
	p20 := indexPercentile(sorted, 0.2)
	if p20 < 1 {
		p20 = 1
	}
	if p20 >= p50 {
		p20 = p50 - 1
	}
	if p20 < 1 {
		p20 = 1
	}

	// 3. Late marker, at least five days past P50 before clamping
	p90 := indexPercentile(sorted, 0.9)
	if p90 < p50+5 {
		p90 = p50 + 5
	}
	p90 = clampInt(p90, p50+1, 90)

	return LagMarkers{P20: p20, P50: p50, P90: p90}
}

// BuildLagDistribution learns the lag distribution from the 60 days before the cutoff.
func BuildLagDistribution(records []orders.OrderRecord, cutoff time.Time) LagDistribution {
	baseline := BaselineWindow(cutoff)
	samples := CollectLagSamples(records, baseline)
	markers := DeriveMarkers(samples)

	return LagDistribution{
		Markers:   markers,
		Histogram: buildHistogram(samples, markers.P90),
		Baseline:  baseline,
		Summary:   summarizeLags(samples),
		IsDefault: len(samples) == 0,
		samples:   samples,
	}
}

func summarizeLags(sorted []int) LagSummary {
	if len(sorted) == 0 {
		return LagSummary{}
	}

	data := make(mstats.Float64Data, len(sorted))
	for i, v := range sorted {
		data[i] = float64(v)
	}

	// errors only occur on empty input, which is excluded above
	mean, _ := mstats.Mean(data)
	median, _ := mstats.Median(data)
	stdDev, _ := mstats.StandardDeviation(data)

	return LagSummary{
		Samples:   len(sorted),
		MeanLag:   mean,
		MedianLag: median,
		StdDevLag: stdDev,
	}
}
