package orders

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func TestEffectiveReturns(t *testing.T) {
	tests := []struct {
		name     string
		rec      OrderRecord
		expected int
	}{
		{"NoReturn", OrderRecord{UnitsSold: 10}, 0},
		{"DateOnly", OrderRecord{UnitsSold: 3, ReturnDate: datePtr("2024-02-05")}, 3},
		{"ExplicitUnits", OrderRecord{UnitsSold: 5, UnitsReturned: 2, ReturnDate: datePtr("2024-02-05")}, 2},
		{"UnitsWithoutDate", OrderRecord{UnitsSold: 5, UnitsReturned: 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.EffectiveReturns(); got != tt.expected {
				t.Errorf("EffectiveReturns() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestLag(t *testing.T) {
	rec := OrderRecord{PurchaseDate: date("2024-01-01"), ReturnDate: datePtr("2024-02-05"), UnitsSold: 3}
	lag, ok := rec.Lag()
	if !ok || lag != 35 {
		t.Errorf("Lag() = (%d, %v), want (35, true)", lag, ok)
	}

	rec.ReturnDate = nil
	if _, ok := rec.Lag(); ok {
		t.Errorf("Lag() without return date should not be ok")
	}

	rec.ReturnDate = datePtr("2023-12-30")
	lag, ok = rec.Lag()
	if !ok || lag != -2 {
		t.Errorf("Lag() = (%d, %v), want (-2, true)", lag, ok)
	}
}

func TestDay_IgnoresZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	local := time.Date(2024, 3, 1, 1, 30, 0, 0, tokyo)
	if got := Day(local); !got.Equal(date("2024-03-01")) {
		t.Errorf("Day() = %v, want 2024-03-01 UTC", got)
	}
}

func TestDaysBetween_AcrossDST(t *testing.T) {
	// 2024-03-10 is a US DST transition; calendar arithmetic must still be whole days
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	from := time.Date(2024, 3, 9, 23, 0, 0, 0, ny)
	to := time.Date(2024, 3, 11, 0, 30, 0, 0, ny)
	if got := DaysBetween(from, to); got != 2 {
		t.Errorf("DaysBetween() = %d, want 2", got)
	}
}

func TestWindow(t *testing.T) {
	w := NewWindow(date("2024-01-30"), 3)

	if w.DayCount() != 3 {
		t.Fatalf("Expected 3 days, got %d", w.DayCount())
	}
	if !w.Contains(date("2024-01-30")) || !w.Contains(date("2024-02-01")) {
		t.Errorf("Window should contain its first and last day")
	}
	if w.Contains(date("2024-02-02")) {
		t.Errorf("Window end must be exclusive")
	}
	if idx := w.Index(date("2024-02-01")); idx != 2 {
		t.Errorf("Index() = %d, want 2", idx)
	}
	if idx := w.Index(date("2024-01-29")); idx != -1 {
		t.Errorf("Index() = %d, want -1", idx)
	}

	days := w.Days()
	if len(days) != 3 || Label(days[2]) != "2024-02-01" {
		t.Errorf("Unexpected days: %v", days)
	}

	clipped := w.Clip(date("2024-01-30"))
	if clipped.DayCount() != 1 {
		t.Errorf("Clip() should keep one day, got %d", clipped.DayCount())
	}
}

func TestLatestPurchaseAndProducts(t *testing.T) {
	records := []OrderRecord{
		{PurchaseDate: date("2024-01-03"), ProductID: "B"},
		{PurchaseDate: date("2024-02-10"), ProductID: "A"},
		{ProductID: "C"}, // no purchase date
		{PurchaseDate: date("2024-01-20"), ProductID: "A"},
	}

	if got := LatestPurchase(records); !got.Equal(date("2024-02-10")) {
		t.Errorf("LatestPurchase() = %v, want 2024-02-10", got)
	}
	if got := LatestPurchase(nil); !got.IsZero() {
		t.Errorf("LatestPurchase(nil) should be zero, got %v", got)
	}

	ids := Products(records)
	if len(ids) != 3 || ids[0] != "A" || ids[2] != "C" {
		t.Errorf("Products() = %v", ids)
	}

	if got := FilterByProduct(records, "A"); len(got) != 2 {
		t.Errorf("FilterByProduct(A) returned %d records, want 2", len(got))
	}
	if got := FilterByProduct(records, ""); len(got) != len(records) {
		t.Errorf("FilterByProduct(\"\") should keep everything")
	}
}
