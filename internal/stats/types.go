package stats

import (
	"time"

	"returnlag/internal/orders"
)

const (
	// BaselineDays is the length of the historical window the lag distribution is learned from.
	BaselineDays = 60

	// DefaultSpanDays is the forecast window length used when the caller passes none.
	DefaultSpanDays = 30

	// ConfidenceThreshold gates both the maturity status and evaluability.
	ConfidenceThreshold = 0.5
)

// Maturity statuses.
const (
	StatusInsufficient = "insufficient"
	StatusProjecting   = "projecting"
)

// Params selects the slice of data an analysis runs over.
type Params struct {
	Cutoff    time.Time `json:"cutoff"`
	SpanDays  int       `json:"span_days"`
	ProductID string    `json:"product_id,omitempty"`
}

func (p Params) span() int {
	if p.SpanDays <= 0 {
		return DefaultSpanDays
	}
	return p.SpanDays
}

// SideMetrics aggregates raw sales and returns for one side of a comparison or one segment.
type SideMetrics struct {
	Sales   int     `json:"sales"`
	Returns int     `json:"returns"`
	Rate    float64 `json:"rate"`
}

func newSideMetrics(sales, returns int) SideMetrics {
	return SideMetrics{
		Sales:   sales,
		Returns: returns,
		Rate:    rate(float64(returns), float64(sales)),
	}
}

// realizedReturns is the effective return count of an order as observed so far.
// Returns dated before their purchase are data errors and count as nothing.
func realizedReturns(o orders.OrderRecord) int {
	if lag, ok := o.Lag(); ok && lag < 0 {
		return 0
	}
	return o.EffectiveReturns()
}

// usable drops records that cannot be placed on the calendar.
func usable(records []orders.OrderRecord) []orders.OrderRecord {
	out := make([]orders.OrderRecord, 0, len(records))
	for _, r := range records {
		if r.HasPurchaseDate() && r.UnitsSold >= 0 {
			out = append(out, r)
		}
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	return &t
}
