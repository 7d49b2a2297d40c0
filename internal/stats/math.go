package stats

// indexPercentile reads the p-th percentile of an ascending slice using the
// floor(n*p) index rule. The slice must not be empty.
func indexPercentile(sorted []int, p float64) int {
	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// rate divides returns by sales and yields 0 instead of NaN for empty denominators.
func rate(returns, sales float64) float64 {
	if sales <= 0 {
		return 0
	}
	return returns / sales
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
