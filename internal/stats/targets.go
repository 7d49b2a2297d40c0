package stats

import (
	"sort"
	"time"

	"returnlag/internal/orders"
)

// TargetDates are the calendar milestones at which the forecast cohort can be trusted.
type TargetDates struct {
	P50VolumeDate    time.Time `json:"p50VolumeDate"`
	P100VolumeDate   time.Time `json:"p100VolumeDate"`
	EarliestEvalDate time.Time `json:"earliestEvalDate"`
	P90Date          time.Time `json:"p90Date"`
	// DaysToWait is signed: a negative value is the number of days the target is overdue.
	DaysToWait int `json:"daysToWait"`
}

// EstimateTargetDates derives milestones from the forecast window's own volume timeline.
// ok is false when the window holds no sold units.
func EstimateTargetDates(records []orders.OrderRecord, window orders.Window, s time.Time, m LagMarkers) (TargetDates, bool) {
	type sale struct {
		day   time.Time
		units int
	}

	var timeline []sale
	total := 0
	for _, r := range records {
		if !r.HasPurchaseDate() || !window.Contains(r.PurchaseDate) {
			continue
		}
		timeline = append(timeline, sale{day: r.PurchaseDay(), units: r.UnitsSold})
		total += r.UnitsSold
	}
	if total == 0 {
		return TargetDates{}, false
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].day.Before(timeline[j].day)
	})

	var td TargetDates
	half := float64(total) * 0.5
	cumulative := 0
	found := false
	for _, sl := range timeline {
		cumulative += sl.units
		if !found && float64(cumulative) >= half {
			td.P50VolumeDate = sl.day
			found = true
		}
	}
	td.P100VolumeDate = timeline[len(timeline)-1].day

	td.EarliestEvalDate = orders.AddDays(td.P50VolumeDate, m.P50)
	td.P90Date = orders.AddDays(td.P100VolumeDate, m.P90)
	td.DaysToWait = orders.DaysBetween(s, td.EarliestEvalDate)

	return td, true
}
