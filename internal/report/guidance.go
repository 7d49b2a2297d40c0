package report

import (
	"fmt"
	"time"

	"returnlag/internal/orders"
	"returnlag/internal/stats"
)

// Guidance turns analysis results into plain-language notes for the reader.
// now is injected by the caller; a zero now skips the staleness check.
func Guidance(now, s time.Time, m *stats.MaturityResult, c stats.ContrastResult, staleDays int) []string {
	notes := Staleness(now, s, staleDays)
	notes = append(notes, MaturityGuidance(m)...)
	return append(notes, ContrastGuidance(c)...)
}

// Staleness warns when the latest purchase day s lies more than staleDays before now.
func Staleness(now, s time.Time, staleDays int) []string {
	if now.IsZero() || s.IsZero() {
		return nil
	}
	if age := orders.DaysBetween(s, now); age > staleDays {
		return []string{fmt.Sprintf(
			"Data looks stale: the latest purchase (%s) is %d days before %s.",
			orders.Label(s), age, orders.Label(now))}
	}
	return nil
}

// MaturityGuidance explains when the post-cutoff cohort can be judged.
func MaturityGuidance(m *stats.MaturityResult) []string {
	if m == nil {
		return []string{"No maturity analysis: the selection has no orders with a purchase date."}
	}
	return maturityNotes(m)
}

// ContrastGuidance flags a comparison without an after-window.
func ContrastGuidance(c stats.ContrastResult) []string {
	if c.HasData {
		return nil
	}
	return []string{"No after-window: nothing was purchased after the cutoff day, so the before/after comparison is unavailable."}
}

func maturityNotes(m *stats.MaturityResult) []string {
	var notes []string

	if m.DefaultMarkers {
		notes = append(notes, fmt.Sprintf(
			"No dated returns in the %d-day baseline; default lag markers (%d/%d/%d days) were used.",
			stats.BaselineDays, stats.DefaultP20, stats.DefaultP50, stats.DefaultP90))
	}

	if m.EarliestEvalDate != nil {
		eval := orders.Label(*m.EarliestEvalDate)
		switch {
		case m.DaysToWait > 0:
			notes = append(notes, fmt.Sprintf(
				"Wait %d more days (until %s) before judging the post-cutoff return rate.", m.DaysToWait, eval))
		case m.DaysToWait < 0:
			notes = append(notes, fmt.Sprintf(
				"The evaluation date %s is overdue by %d days; the post-cutoff cohort can be judged now.", eval, -m.DaysToWait))
		default:
			notes = append(notes, fmt.Sprintf("The post-cutoff cohort becomes evaluable today (%s).", eval))
		}
	}

	switch {
	case m.Projection.ProjectedRate == nil:
		notes = append(notes, "No defensible projection: no post-cutoff cohort has reached the median return lag yet.")
	case !m.IsEvaluable:
		notes = append(notes, fmt.Sprintf(
			"Projection is indicative only: %.0f%% of the volume is mature, below the %.0f%% needed.",
			m.ConfidenceScore*100, stats.ConfidenceThreshold*100))
	}

	return notes
}
