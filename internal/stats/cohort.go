package stats

import (
	"sort"
	"time"

	"returnlag/internal/orders"
)

// Phase classifies a cohort day by how much of the expected return lag has elapsed.
type Phase string

const (
	PhaseRampUp    Phase = "ramp_up"
	PhaseMature    Phase = "mature"
	PhaseFinalized Phase = "finalized"
)

// Phases in reporting order.
var Phases = []Phase{PhaseRampUp, PhaseMature, PhaseFinalized}

// Projection algorithms recorded per cohort day.
const (
	AlgorithmHold    = "hold"
	AlgorithmGrossUp = "gross_up"
)

// minLagCoverage is the smallest cumulative fraction a gross-up will divide by.
const minLagCoverage = 0.01

// ClassifyPhase maps a cohort age onto its maturity phase.
func ClassifyPhase(age int, m LagMarkers) Phase {
	switch {
	case age < m.P50:
		return PhaseRampUp
	case age <= m.P90:
		return PhaseMature
	default:
		return PhaseFinalized
	}
}

// CohortDay is one purchase day of the forecast window.
type CohortDay struct {
	Date           time.Time `json:"date"`
	Age            int       `json:"age"`
	Phase          Phase     `json:"phase"`
	Sales          int       `json:"sales"`
	Realized       int       `json:"realized"`
	CurrentRate    float64   `json:"currentRate"`
	LagPct         float64   `json:"lagPct"`
	Algorithm      string    `json:"algorithm"`
	Weight         float64   `json:"weight"`
	ForecastAdd    float64   `json:"forecastAdd"`
	ProjectedTotal float64   `json:"projectedTotal"`
	ProjectedRate  float64   `json:"projectedRate"`
}

// PhaseBucket rolls up the cohort days of one phase.
type PhaseBucket struct {
	Phase            Phase   `json:"phase"`
	Days             int     `json:"days"`
	Volume           int     `json:"volume"`
	Realized         int     `json:"realized"`
	Forecasted       float64 `json:"forecasted"`
	TotalExpected    float64 `json:"totalExpected"`
	ContributionRate float64 `json:"contributionRate"`
}

// Projection is the grossed-up outlook for the forecast window.
// ProjectedRate is nil when no cohort volume is old enough to project from,
// which is not the same as a projected rate of zero.
type Projection struct {
	ProjectedRate    *float64      `json:"projectedRate"`
	ProjectedReturns float64       `json:"projectedReturns"`
	ReliableVolume   int           `json:"reliableVolume"`
	ForecastedVolume int           `json:"forecastedVolume"`
	PhaseBuckets     []PhaseBucket `json:"phaseBuckets"`
	BaselineRate     float64       `json:"baselineRate"`
	Confidence       float64       `json:"confidence"`
	Status           string        `json:"status"`
}

// IsEvaluable reports whether enough volume has matured to trust the projection.
func (p Projection) IsEvaluable() bool {
	return p.Confidence >= ConfidenceThreshold
}

// BucketizeCohorts groups forecast-window orders by purchase day and ages each day
// against s, the latest purchase day of the dataset. Days without orders are omitted.
func BucketizeCohorts(records []orders.OrderRecord, window orders.Window, s time.Time, dist LagDistribution) []CohortDay {
	byDay := make(map[time.Time]*CohortDay)
	for _, r := range records {
		if !r.HasPurchaseDate() || !window.Contains(r.PurchaseDate) {
			continue
		}
		d := r.PurchaseDay()
		c, ok := byDay[d]
		if !ok {
			c = &CohortDay{Date: d}
			byDay[d] = c
		}
		c.Sales += r.UnitsSold
		c.Realized += realizedReturns(r)
	}

	days := make([]CohortDay, 0, len(byDay))
	for _, c := range byDay {
		c.Age = orders.DaysBetween(c.Date, s)
		c.Phase = ClassifyPhase(c.Age, dist.Markers)
		c.LagPct = dist.Histogram.CumulativeFraction(c.Age)
		c.CurrentRate = rate(float64(c.Realized), float64(c.Sales))
		days = append(days, *c)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

// GrossUp estimates how many returns are still to come for realized returns observed
// at the given cumulative lag coverage.
func GrossUp(realized int, coverage float64) float64 {
	if coverage <= minLagCoverage {
		return 0
	}
	add := float64(realized)/coverage - float64(realized)
	if add < 0 {
		return 0
	}
	return add
}

// ProjectCohorts grosses up mature and finalized days and rolls everything up per phase.
// The input is not modified; the projected days are returned alongside the totals.
func ProjectCohorts(days []CohortDay) ([]CohortDay, Projection) {
	projected := make([]CohortDay, len(days))
	copy(projected, days)

	totalVolume := 0
	for _, d := range projected {
		totalVolume += d.Sales
	}

	buckets := make(map[Phase]*PhaseBucket, len(Phases))
	for _, p := range Phases {
		buckets[p] = &PhaseBucket{Phase: p}
	}

	for i := range projected {
		d := &projected[i]

		if d.Phase == PhaseRampUp {
			// too early to extrapolate: hold realized returns as-is
			d.Algorithm = AlgorithmHold
			d.ForecastAdd = 0
		} else {
			d.Algorithm = AlgorithmGrossUp
			d.ForecastAdd = GrossUp(d.Realized, d.LagPct)
		}
		d.ProjectedTotal = float64(d.Realized) + d.ForecastAdd
		d.ProjectedRate = rate(d.ProjectedTotal, float64(d.Sales))
		d.Weight = rate(float64(d.Sales), float64(totalVolume))

		b := buckets[d.Phase]
		b.Days++
		b.Volume += d.Sales
		b.Realized += d.Realized
		b.Forecasted += d.ForecastAdd
	}

	proj := Projection{
		ForecastedVolume: totalVolume,
		PhaseBuckets:     make([]PhaseBucket, 0, len(Phases)),
	}

	reliableReturns := 0.0
	for _, p := range Phases {
		b := buckets[p]
		b.TotalExpected = float64(b.Realized) + b.Forecasted
		b.ContributionRate = rate(b.TotalExpected, float64(totalVolume))
		proj.PhaseBuckets = append(proj.PhaseBuckets, *b)

		if p != PhaseRampUp {
			proj.ReliableVolume += b.Volume
			reliableReturns += b.TotalExpected
		}
	}

	proj.ProjectedReturns = reliableReturns
	if proj.ReliableVolume > 0 {
		proj.ProjectedRate = new(float64)
		*proj.ProjectedRate = reliableReturns / float64(proj.ReliableVolume)
	}

	proj.Confidence = rate(float64(proj.ReliableVolume), float64(totalVolume))
	proj.Status = StatusInsufficient
	if proj.IsEvaluable() {
		proj.Status = StatusProjecting
	}

	return projected, proj
}
