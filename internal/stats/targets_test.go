package stats

import (
	"testing"

	"returnlag/internal/orders"
)

func TestEstimateTargetDates(t *testing.T) {
	m := LagMarkers{P20: 4, P50: 14, P90: 30}
	window := orders.NewWindow(day("2024-03-01"), 30)
	records := []orders.OrderRecord{
		order("2024-03-10", 20, "", 0),
		order("2024-03-01", 10, "", 0),
		order("2024-03-05", 10, "", 0),
		order("2024-02-20", 500, "", 0), // baseline volume is ignored
	}

	tests := []struct {
		name       string
		s          string
		daysToWait int
	}{
		{"Pending", "2024-03-10", 9},
		{"Overdue", "2024-03-25", -6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td, ok := EstimateTargetDates(records, window, day(tt.s), m)
			if !ok {
				t.Fatalf("Expected target dates")
			}
			if !td.P50VolumeDate.Equal(day("2024-03-05")) {
				t.Errorf("P50VolumeDate = %v, want 2024-03-05", td.P50VolumeDate)
			}
			if !td.P100VolumeDate.Equal(day("2024-03-10")) {
				t.Errorf("P100VolumeDate = %v, want 2024-03-10", td.P100VolumeDate)
			}
			if !td.EarliestEvalDate.Equal(day("2024-03-19")) {
				t.Errorf("EarliestEvalDate = %v, want 2024-03-19", td.EarliestEvalDate)
			}
			if !td.P90Date.Equal(day("2024-04-09")) {
				t.Errorf("P90Date = %v, want 2024-04-09", td.P90Date)
			}
			if td.DaysToWait != tt.daysToWait {
				t.Errorf("DaysToWait = %d, want %d", td.DaysToWait, tt.daysToWait)
			}
		})
	}
}

func TestEstimateTargetDates_NoVolume(t *testing.T) {
	window := orders.NewWindow(day("2024-03-01"), 30)
	records := []orders.OrderRecord{order("2024-03-02", 0, "", 0)}

	if _, ok := EstimateTargetDates(records, window, day("2024-03-02"), DefaultMarkers()); ok {
		t.Errorf("Expected no target dates without sold units")
	}
}
