package stats

import (
	"math"
	"testing"
)

func TestIndexPercentile(t *testing.T) {
	sorted := []int{2, 2, 5, 5, 5, 8, 10, 12, 20}
	tests := []struct {
		name     string
		p        float64
		expected int
	}{
		{"P20", 0.2, 2},
		{"P50", 0.5, 5},
		{"P90", 0.9, 20},
		{"P95", 0.95, 20},
		{"Zero", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := indexPercentile(sorted, tt.p); got != tt.expected {
				t.Errorf("indexPercentile(%v) = %d, want %d", tt.p, got, tt.expected)
			}
		})
	}
}

func TestRate_NeverNaN(t *testing.T) {
	if got := rate(5, 0); got != 0 {
		t.Errorf("rate with zero sales = %v, want 0", got)
	}
	if got := rate(0, 0); math.IsNaN(got) || got != 0 {
		t.Errorf("rate(0,0) = %v, want 0", got)
	}
	if got := rate(1, 4); got != 0.25 {
		t.Errorf("rate(1,4) = %v, want 0.25", got)
	}
}
