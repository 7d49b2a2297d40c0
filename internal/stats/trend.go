package stats

import (
	"time"

	"returnlag/internal/orders"
)

// Trend segments relative to the cutoff.
const (
	SegmentBefore = "before"
	SegmentAfter  = "after"
)

// TrendPoint is one calendar day of raw volume and realized returns.
type TrendPoint struct {
	Date    time.Time `json:"date"`
	Label   string    `json:"label"`
	Sales   int       `json:"sales"`
	Returns int       `json:"returns"`
	Rate    float64   `json:"rate"`
	Segment string    `json:"segment"`
}

// DailyTrend lists every day in [cutoff-span, cutoff+span), clipped to the latest
// purchase day s. Days without orders are kept with zero volume.
func DailyTrend(records []orders.OrderRecord, cutoff time.Time, span int, s time.Time) []TrendPoint {
	if cutoff.IsZero() || s.IsZero() || span <= 0 {
		return nil
	}

	t0 := orders.Day(cutoff)
	window := orders.NewWindow(orders.AddDays(t0, -span), 2*span).Clip(s)

	points := make([]TrendPoint, window.DayCount())
	for i, d := range window.Days() {
		seg := SegmentBefore
		if !d.Before(t0) {
			seg = SegmentAfter
		}
		points[i] = TrendPoint{Date: d, Label: orders.Label(d), Segment: seg}
	}

	for _, r := range records {
		if !r.HasPurchaseDate() {
			continue
		}
		if i := window.Index(r.PurchaseDate); i >= 0 {
			points[i].Sales += r.UnitsSold
			points[i].Returns += realizedReturns(r)
		}
	}

	for i := range points {
		points[i].Rate = rate(float64(points[i].Returns), float64(points[i].Sales))
	}
	return points
}
