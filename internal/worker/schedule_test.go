package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/model"
)

func day(iso string) time.Time {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNextRun(t *testing.T) {
	from := day("2026-01-31")

	cases := []struct {
		frequency string
		want      string
	}{
		{model.FrequencyWeekly, "2026-02-07"},
		{model.FrequencyBiWeekly, "2026-02-14"},
		// AddDate normalizes Jan 31 + 1 month to Mar 3 (2026 is not a leap year).
		{model.FrequencyMonthly, "2026-03-03"},
		{model.FrequencyQuarterly, "2026-05-01"},
		{model.FrequencyYearly, "2027-01-31"},
	}

	for _, tc := range cases {
		t.Run(tc.frequency, func(t *testing.T) {
			got, ok := NextRun(tc.frequency, from)
			require.True(t, ok)
			assert.Equal(t, tc.want, got.Format("2006-01-02"))
		})
	}
}

func TestNextRun_NoneAndUnknown(t *testing.T) {
	for _, frequency := range []string{model.FrequencyNone, "", "Daily"} {
		_, ok := NextRun(frequency, day("2026-01-01"))
		assert.False(t, ok, "frequency %q must not schedule", frequency)
	}
}

func TestWithinEndDate(t *testing.T) {
	end := "2026-06-30"
	bad := "not-a-date"

	assert.True(t, withinEndDate(model.RecurringOptions{}, day("2099-01-01")), "no end date never expires")
	assert.True(t, withinEndDate(model.RecurringOptions{EndDate: &bad}, day("2099-01-01")), "unparseable end date never expires")
	assert.True(t, withinEndDate(model.RecurringOptions{EndDate: &end}, day("2026-06-30")), "end date is inclusive")
	assert.False(t, withinEndDate(model.RecurringOptions{EndDate: &end}, day("2026-07-02")))
}
