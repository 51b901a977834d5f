package domain

import "time"

// FiscalPeriod is a bounded date range that gates postings. Owned by the
// accounting-configuration module; consumed read-only here.
type FiscalPeriod struct {
	FiscalPeriodID string    `json:"fiscalPeriodID"`
	Name           string    `json:"name"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	IsClosed       bool      `json:"isClosed"`
}

// Contains reports whether the given date falls within the period's range.
// Comparison is at calendar-date granularity.
func (p FiscalPeriod) Contains(date time.Time) bool {
	d := truncateToDate(date)
	return !d.Before(truncateToDate(p.StartDate)) && !d.After(truncateToDate(p.EndDate))
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
