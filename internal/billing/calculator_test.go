package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateTotals(t *testing.T) {
	cases := []struct {
		name      string
		cost      string
		taxRate   string
		subtotal  string
		taxAmount string
		total     string
	}{
		{"reference figures", "1200", "8.5", "1200", "102", "1302"},
		{"zero tax rate", "500", "0", "500", "0", "500"},
		{"zero cost", "0", "21", "0", "0", "0"},
		{"everything zero", "0", "0", "0", "0", "0"},
		{"fractional cost", "99.99", "10", "99.99", "9.999", "109.989"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateTotals(model.JobDetails{Cost: dec(tc.cost), TaxRate: dec(tc.taxRate)})

			assert.True(t, got.Subtotal.Equal(dec(tc.subtotal)), "subtotal = %s", got.Subtotal)
			assert.True(t, got.TaxAmount.Equal(dec(tc.taxAmount)), "taxAmount = %s", got.TaxAmount)
			assert.True(t, got.Total.Equal(dec(tc.total)), "total = %s", got.Total)
		})
	}
}

// The identities hold for any input, not just the fixtures above.
func TestCalculateTotalsInvariants(t *testing.T) {
	costs := []string{"0", "0.01", "1200", "99999.99", "123456.78"}
	rates := []string{"0", "8.5", "21", "100", "0.125"}

	for _, c := range costs {
		for _, r := range rates {
			job := model.JobDetails{Cost: dec(c), TaxRate: dec(r)}
			got := CalculateTotals(job)

			assert.True(t, got.Total.Equal(got.Subtotal.Add(got.TaxAmount)),
				"total != subtotal+tax for cost=%s rate=%s", c, r)
			assert.True(t, got.TaxAmount.Equal(got.Subtotal.Mul(dec(r)).Div(decimal.NewFromInt(100))),
				"taxAmount mismatch for cost=%s rate=%s", c, r)
		}
	}
}

// Referential transparency: identical inputs, identical outputs, every time.
func TestCalculateTotalsStable(t *testing.T) {
	job := model.JobDetails{Cost: dec("1200"), TaxRate: dec("8.5")}
	first := CalculateTotals(job)
	for i := 0; i < 10; i++ {
		again := CalculateTotals(job)
		assert.True(t, first.Subtotal.Equal(again.Subtotal))
		assert.True(t, first.TaxAmount.Equal(again.TaxAmount))
		assert.True(t, first.Total.Equal(again.Total))
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := map[string]string{
		"0":          "$0.00",
		"102":        "$102.00",
		"1200":       "$1,200.00",
		"1302":       "$1,302.00",
		"1234567.89": "$1,234,567.89",
		"999":        "$999.00",
		"-45.5":      "-$45.50",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatCurrency(dec(in)), "input %s", in)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "March 9, 2025", FormatDate("2025-03-09"))
	assert.Equal(t, "January 1, 2026", FormatDate("2026-01-01"))
	assert.Equal(t, "", FormatDate(""))
	// Garbage passes through untouched — rendering must never throw.
	assert.Equal(t, "not-a-date", FormatDate("not-a-date"))
}
