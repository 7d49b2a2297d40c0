package stats

import (
	"time"

	"returnlag/internal/orders"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// order builds a record; an empty returnOn means no return.
func order(purchase string, sold int, returnOn string, returned int) orders.OrderRecord {
	r := orders.OrderRecord{
		PurchaseDate:  day(purchase),
		UnitsSold:     sold,
		UnitsReturned: returned,
		ProductID:     "B0TEST",
	}
	if returnOn != "" {
		rd := day(returnOn)
		r.ReturnDate = &rd
	}
	return r
}

// lagOrder builds a single-unit order returned lag days after purchase.
func lagOrder(purchase string, lag int) orders.OrderRecord {
	p := day(purchase)
	return order(purchase, 1, p.AddDate(0, 0, lag).Format("2006-01-02"), 0)
}
