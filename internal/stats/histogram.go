package stats

const (
	// HistogramBucketDays is the width of one lag histogram bucket.
	HistogramBucketDays = 2

	// HistogramMaxDays caps how far the lag curve is extended.
	HistogramMaxDays = 120

	histogramTailDays = 14
)

// HistogramBucket holds the lag samples falling in [Day, Day+HistogramBucketDays).
type HistogramBucket struct {
	Day                int     `json:"day"`
	Count              int     `json:"count"`
	Fraction           float64 `json:"fraction"`
	CumulativeFraction float64 `json:"cumulativeFraction"`
}

// LagHistogram is the fixed-width histogram of purchase-to-return lags with its
// non-decreasing cumulative curve.
type LagHistogram []HistogramBucket

// buildHistogram buckets ascending samples. The curve covers at least P90+14 days
// (or the 95th percentile when larger) and never more than HistogramMaxDays.
func buildHistogram(sorted []int, p90 int) LagHistogram {
	n := len(sorted)
	if n == 0 {
		return LagHistogram{}
	}

	limit := indexPercentile(sorted, 0.95)
	if p90+histogramTailDays > limit {
		limit = p90 + histogramTailDays
	}
	if limit > HistogramMaxDays {
		limit = HistogramMaxDays
	}

	hist := make(LagHistogram, 0, limit/HistogramBucketDays+1)
	cursor := 0
	running := 0
	for d := 0; d <= limit; d += HistogramBucketDays {
		end := d + HistogramBucketDays

		// samples are sorted and non-negative, so a single forward scan suffices
		count := 0
		for cursor < n && sorted[cursor] < end {
			if sorted[cursor] >= d {
				count++
			}
			cursor++
		}
		running += count

		hist = append(hist, HistogramBucket{
			Day:                d,
			Count:              count,
			Fraction:           float64(count) / float64(n),
			CumulativeFraction: float64(running) / float64(n),
		})
	}

	return hist
}

// CumulativeFraction estimates the share of eventual returns already visible for a
// cohort of the given age. Values between bucket starts are linearly interpolated;
// ages past the last bucket read the last fraction. An empty histogram means there is
// no evidence of outstanding lag, so every age counts as fully matured.
func (h LagHistogram) CumulativeFraction(age int) float64 {
	if len(h) == 0 {
		return 1.0
	}
	if age <= h[0].Day {
		return h[0].CumulativeFraction
	}

	last := h[len(h)-1]
	if age >= last.Day {
		return last.CumulativeFraction
	}

	for i := 0; i < len(h)-1; i++ {
		lo, hi := h[i], h[i+1]
		if age >= lo.Day && age < hi.Day {
			span := float64(hi.Day - lo.Day)
			t := float64(age-lo.Day) / span
			return lo.CumulativeFraction + t*(hi.CumulativeFraction-lo.CumulativeFraction)
		}
	}
	return last.CumulativeFraction
}
