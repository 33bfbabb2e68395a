// Package billing derives financial figures from an invoice's job details.
// All arithmetic uses decimal.Decimal — no float rounding surprises; display
// rounding to two decimals happens only in the formatting helpers.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/model"
)

var oneHundred = decimal.NewFromInt(100)

// Totals are derived on every read and never persisted.
// Invariants: Total == Subtotal + TaxAmount, TaxAmount == Subtotal * taxRate / 100.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// CalculateTotals maps job inputs to {subtotal, tax, total}.
// Pure and total: zero-value inputs yield zero totals, it never fails.
func CalculateTotals(job model.JobDetails) Totals {
	subtotal := job.Cost
	taxAmount := subtotal.Mul(job.TaxRate).Div(oneHundred)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal.Add(taxAmount),
	}
}
