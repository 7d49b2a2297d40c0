package stats

import (
	"time"

	"returnlag/internal/orders"
)

// ContrastDay pairs one recent day with its chronological mirror before the cutoff.
// Both sides share AgeLimit, the largest lag the recent day could have shown.
type ContrastDay struct {
	Offset        int       `json:"offset"`
	AgeLimit      int       `json:"ageLimit"`
	BeforeDate    time.Time `json:"beforeDate"`
	AfterDate     time.Time `json:"afterDate"`
	BeforeSales   int       `json:"beforeSales"`
	BeforeReturns int       `json:"beforeReturns"`
	AfterSales    int       `json:"afterSales"`
	AfterReturns  int       `json:"afterReturns"`
}

// VelocityPoint is the share of a side's sales returned within Day days of purchase.
type VelocityPoint struct {
	Day    int     `json:"day"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
}

// ContrastResult compares the periods before and after the cutoff over matched observation windows.
type ContrastResult struct {
	HasData        bool            `json:"hasData"`
	FASIN          string          `json:"fasin,omitempty"`
	T0             time.Time       `json:"t0"`
	S              time.Time       `json:"s"`
	RunDays        int             `json:"runDays"`
	BeforeRange    orders.Window   `json:"beforeRange"`
	AfterRange     orders.Window   `json:"afterRange"`
	Before         SideMetrics     `json:"before"`
	After          SideMetrics     `json:"after"`
	DeltaRate      float64         `json:"deltaRate"`
	IsImproved     bool            `json:"isImproved"`
	VelocityChart  []VelocityPoint `json:"velocityChart"`
	DailyBreakdown []ContrastDay   `json:"dailyBreakdown"`
}

// RelativeDelta is (after-before)/before, with 1 when only the recent side has returns.
func RelativeDelta(before, after float64) float64 {
	switch {
	case before > 0:
		return (after - before) / before
	case after > 0:
		return 1.0
	default:
		return 0
	}
}

// CompareWindows contrasts the days after the cutoff with the same number of days
// immediately before it. Historical returns are censored to the age the matching
// recent day could reach, so older days gain nothing from having had more time.
// The observation horizon is the latest purchase of the whole dataset, also when
// a product is selected. The cutoff day itself belongs to neither side.
//
// Undated units_returned count on the recent side only: without a return date
// they cannot be censored by age, so a dataset rich in undated returns biases
// the recent rate upward.
func CompareWindows(records []orders.OrderRecord, p Params) ContrastResult {
	res := ContrastResult{FASIN: p.ProductID}
	if p.Cutoff.IsZero() {
		return res
	}

	t0 := orders.Day(p.Cutoff)
	res.T0 = t0

	all := usable(records)
	rows := orders.FilterByProduct(all, p.ProductID)
	s := orders.LatestPurchase(all)
	res.S = s
	if len(rows) == 0 || s.IsZero() || !s.After(t0) {
		return res
	}

	// 1. Mirrored windows of identical length around the cutoff
	afterStart := orders.AddDays(t0, 1)
	runDays := orders.DaysBetween(afterStart, s) + 1
	beforeStart := orders.AddDays(t0, -runDays)

	after := orders.NewWindow(afterStart, runDays)
	before := orders.NewWindow(beforeStart, runDays)

	days := make([]ContrastDay, runDays)
	for i := range days {
		afterDay := orders.AddDays(afterStart, i)
		days[i] = ContrastDay{
			Offset:     i,
			AgeLimit:   orders.DaysBetween(afterDay, s),
			BeforeDate: orders.AddDays(beforeStart, i),
			AfterDate:  afterDay,
		}
	}

	beforeByLag := make([]int, runDays)
	afterByLag := make([]int, runDays)

	// 2. Single pass: every order lands on at most one side
	for _, r := range rows {
		if i := after.Index(r.PurchaseDate); i >= 0 {
			returned := realizedReturns(r)
			days[i].AfterSales += r.UnitsSold
			days[i].AfterReturns += returned
			if lag, ok := r.Lag(); ok && lag >= 0 && lag < runDays {
				afterByLag[lag] += returned
			}
			continue
		}

		if i := before.Index(r.PurchaseDate); i >= 0 {
			days[i].BeforeSales += r.UnitsSold
			lag, ok := r.Lag()
			if !ok || lag < 0 || lag > days[i].AgeLimit {
				continue
			}
			returned := r.EffectiveReturns()
			days[i].BeforeReturns += returned
			beforeByLag[lag] += returned
		}
	}

	// 3. Aggregate both sides
	var bSales, bReturns, aSales, aReturns int
	for _, d := range days {
		bSales += d.BeforeSales
		bReturns += d.BeforeReturns
		aSales += d.AfterSales
		aReturns += d.AfterReturns
	}

	res.HasData = true
	res.RunDays = runDays
	res.BeforeRange = before
	res.AfterRange = after
	res.Before = newSideMetrics(bSales, bReturns)
	res.After = newSideMetrics(aSales, aReturns)
	res.DeltaRate = RelativeDelta(res.Before.Rate, res.After.Rate)
	res.IsImproved = res.DeltaRate < 0
	res.DailyBreakdown = days

	// 4. Speed of onset: cumulative returns by own lag over the side's sales
	res.VelocityChart = make([]VelocityPoint, runDays)
	bCum, aCum := 0, 0
	for d := 0; d < runDays; d++ {
		bCum += beforeByLag[d]
		aCum += afterByLag[d]
		res.VelocityChart[d] = VelocityPoint{
			Day:    d,
			Before: rate(float64(bCum), float64(bSales)),
			After:  rate(float64(aCum), float64(aSales)),
		}
	}

	return res
}
