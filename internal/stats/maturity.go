package stats

import (
	"time"

	"returnlag/internal/orders"
)

// SegmentMetrics holds realized (not projected) totals of the two windows around the cutoff.
type SegmentMetrics struct {
	Baseline SideMetrics `json:"baseline"`
	Forecast SideMetrics `json:"forecast"`
}

// MaturityResult is the full outlook for the orders placed since the cutoff.
type MaturityResult struct {
	FASIN            string         `json:"fasin"`
	T0               time.Time      `json:"t0"`
	S                time.Time      `json:"s"`
	P20              int            `json:"p20"`
	P50              int            `json:"p50"`
	P90              int            `json:"p90"`
	MaturityStatus   string         `json:"maturityStatus"`
	ConfidenceScore  float64        `json:"confidenceScore"`
	IsEvaluable      bool           `json:"isEvaluable"`
	EarliestEvalDate *time.Time     `json:"earliestEvalDate"`
	P90Date          *time.Time     `json:"p90Date"`
	DaysToWait       int            `json:"daysToWait"`
	BaselineRange    orders.Window  `json:"baselineRange"`
	ForecastRange    orders.Window  `json:"forecastRange"`
	DefaultMarkers   bool           `json:"defaultMarkers"`
	LagSummary       LagSummary     `json:"lagSummary"`
	Histogram        LagHistogram   `json:"histogram"`
	Segments         SegmentMetrics `json:"segments"`
	Projection       Projection     `json:"projection"`
	DailyProjections []CohortDay    `json:"dailyProjections"`
	Trend            []TrendPoint   `json:"trend"`
}

// AnalyzeMaturity learns the lag distribution before the cutoff and projects the final
// return rate of the cohorts purchased in [cutoff, cutoff+span). Cohorts are aged
// against the latest purchase of the whole dataset, even when a product is selected.
// It returns nil when there is nothing to analyze: no cutoff or no selected row with
// a purchase date.
func AnalyzeMaturity(records []orders.OrderRecord, p Params) *MaturityResult {
	if p.Cutoff.IsZero() {
		return nil
	}

	// S is the dataset's clock; filtering by product must not move it
	all := usable(records)
	rows := orders.FilterByProduct(all, p.ProductID)
	if len(rows) == 0 {
		return nil
	}

	t0 := orders.Day(p.Cutoff)
	span := p.span()
	s := orders.LatestPurchase(all)

	// 1. Lag distribution from the baseline
	dist := BuildLagDistribution(rows, t0)

	// 2. Cohorts of the forecast window, aged against s
	forecast := orders.NewWindow(t0, span)
	cohorts := BucketizeCohorts(rows, forecast, s, dist)
	projected, proj := ProjectCohorts(cohorts)

	// 3. Realized segments around the cutoff
	segments := SegmentMetrics{
		Baseline: segmentMetrics(rows, dist.Baseline),
		Forecast: segmentMetrics(rows, forecast),
	}
	proj.BaselineRate = segments.Baseline.Rate

	res := &MaturityResult{
		FASIN:            p.ProductID,
		T0:               t0,
		S:                s,
		P20:              dist.Markers.P20,
		P50:              dist.Markers.P50,
		P90:              dist.Markers.P90,
		MaturityStatus:   proj.Status,
		ConfidenceScore:  proj.Confidence,
		IsEvaluable:      proj.IsEvaluable(),
		BaselineRange:    dist.Baseline,
		ForecastRange:    forecast,
		DefaultMarkers:   dist.IsDefault,
		LagSummary:       dist.Summary,
		Histogram:        dist.Histogram,
		Segments:         segments,
		Projection:       proj,
		DailyProjections: projected,
		Trend:            DailyTrend(rows, t0, span, s),
	}

	// 4. Milestones from the forecast window's own volume
	if td, ok := EstimateTargetDates(rows, forecast, s, dist.Markers); ok {
		res.EarliestEvalDate = timePtr(td.EarliestEvalDate)
		res.P90Date = timePtr(td.P90Date)
		res.DaysToWait = td.DaysToWait
	}

	return res
}

func segmentMetrics(records []orders.OrderRecord, w orders.Window) SideMetrics {
	sales, returns := 0, 0
	for _, r := range records {
		if !w.Contains(r.PurchaseDate) {
			continue
		}
		sales += r.UnitsSold
		returns += realizedReturns(r)
	}
	return newSideMetrics(sales, returns)
}
