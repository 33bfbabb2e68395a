package worker

import (
	"time"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/model"
)

// NextRun returns the send time following `from` for a recurring frequency.
// The boolean is false for FrequencyNone or an unknown value.
func NextRun(frequency string, from time.Time) (time.Time, bool) {
	switch frequency {
	case model.FrequencyWeekly:
		return from.AddDate(0, 0, 7), true
	case model.FrequencyBiWeekly:
		return from.AddDate(0, 0, 14), true
	case model.FrequencyMonthly:
		return from.AddDate(0, 1, 0), true
	case model.FrequencyQuarterly:
		return from.AddDate(0, 3, 0), true
	case model.FrequencyYearly:
		return from.AddDate(1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// withinEndDate reports whether t falls on or before the schedule's end
// date. A missing or unparseable end date means the schedule never expires.
func withinEndDate(r model.RecurringOptions, t time.Time) bool {
	if r.EndDate == nil || *r.EndDate == "" {
		return true
	}
	end, err := time.Parse("2006-01-02", *r.EndDate)
	if err != nil {
		return true
	}
	// End date is inclusive — sends scheduled that day still go out.
	return !t.After(end.AddDate(0, 0, 1))
}
