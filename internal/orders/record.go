package orders

import (
	"sort"
	"time"
)

// OrderRecord is one normalized order line as delivered by ingestion.
type OrderRecord struct {
	OrderID       string     `json:"order_id"`
	PurchaseDate  time.Time  `json:"purchase_date"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`
	UnitsSold     int        `json:"units_sold"`
	UnitsReturned int        `json:"units_returned,omitempty"`
	ProductID     string     `json:"product_id"`
}

// EffectiveReturns is the number of units counted as returned for this order.
// An explicit returned quantity wins; a bare return date means the whole line came back.
func (o OrderRecord) EffectiveReturns() int {
	if o.UnitsReturned > 0 {
		return o.UnitsReturned
	}
	if o.ReturnDate != nil {
		return o.UnitsSold
	}
	return 0
}

// Lag returns the whole-day distance between purchase and return.
// ok is false when there is no return date. Negative lags are returned as-is;
// callers decide whether to drop them.
func (o OrderRecord) Lag() (lag int, ok bool) {
	if o.ReturnDate == nil || o.ReturnDate.IsZero() || o.PurchaseDate.IsZero() {
		return 0, false
	}
	return DaysBetween(o.PurchaseDate, *o.ReturnDate), true
}

// PurchaseDay is the purchase date snapped to its UTC calendar day.
func (o OrderRecord) PurchaseDay() time.Time {
	return Day(o.PurchaseDate)
}

// HasPurchaseDate reports whether the record can be placed on the calendar at all.
func (o OrderRecord) HasPurchaseDate() bool {
	return !o.PurchaseDate.IsZero()
}

// LatestPurchase finds S, the most recent purchase day in the dataset.
// The zero time is returned when no record carries a purchase date.
func LatestPurchase(records []OrderRecord) time.Time {
	var latest time.Time
	for _, r := range records {
		if !r.HasPurchaseDate() {
			continue
		}
		d := r.PurchaseDay()
		if d.After(latest) {
			latest = d
		}
	}
	return latest
}

// FilterByProduct keeps the records of one product. An empty id keeps everything.
func FilterByProduct(records []OrderRecord, productID string) []OrderRecord {
	if productID == "" {
		return records
	}
	var out []OrderRecord
	for _, r := range records {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out
}

// Products lists the distinct product identifiers in ascending order.
func Products(records []OrderRecord) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		if r.ProductID != "" {
			seen[r.ProductID] = true
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
