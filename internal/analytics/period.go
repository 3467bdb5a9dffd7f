package analytics

import (
	"time"

	"github.com/storelens/storelens/internal/superstore"
)

// PastPeriod is the comparison window immediately preceding the current
// selection, shifted back by the selection's own span in days.
type PastPeriod struct {
	From  time.Time `json:"from"`
	To    time.Time `json:"to"`
	Valid bool      `json:"valid"`
}

// ResolvePastPeriod shifts both endpoints back by the span of the selected
// range. The window is invalid when any part of it falls outside the data
// bounds; the caller then treats all past KPIs as zero.
func ResolvePastPeriod(ds *superstore.Dataset, from, to time.Time) PastPeriod {
	span := daysBetween(from, to)
	p := PastPeriod{
		From: from.AddDate(0, 0, -span),
		To:   to.AddDate(0, 0, -span),
	}
	p.Valid = !p.From.Before(ds.MinDate) && !p.To.After(ds.MaxDate)
	return p
}

// PastSubset rebuilds the comparison subset: the categorical filters are
// reapplied to the full dataset and the date range is the past window. The
// date portion of the criteria is deliberately ignored. An invalid window
// yields an empty subset.
func PastSubset(ds *superstore.Dataset, c Criteria, p PastPeriod) []superstore.OrderRecord {
	if !p.Valid {
		return nil
	}
	var subset []superstore.OrderRecord
	for _, r := range ds.Orders {
		if !matchesCategorical(r, c) {
			continue
		}
		if !inRange(r.OrderDate, p.From, p.To) {
			continue
		}
		subset = append(subset, r)
	}
	return subset
}

// daysBetween is the calendar-day difference between two midnight dates.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
