package docgen

import (
	"fmt"
	"strings"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/billing"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/model"
)

// PlanContent maps an invoice to its fixed block sequence:
// header, title, metadata, billing party, job detail, financial summary,
// footer. The order is a contract — the patch builder's offset math depends
// on it. Deterministic: identical invoices plan to byte-identical blocks,
// and absent optional fields render as empty strings, never as "<nil>".
func PlanContent(inv *model.Invoice) []ContentBlock {
	totals := billing.CalculateTotals(inv.Job)

	return []ContentBlock{
		{
			Text:  strings.ToUpper(inv.Company.Name) + "\n\n",
			Style: StyleHeadingCentered,
		},
		{
			Text:  "INVOICE\n\n",
			Style: StyleBodyCentered,
		},
		{
			Text: fmt.Sprintf("Invoice #: %s\nDate: %s\nDue Date: %s\n\n",
				inv.InvoiceNumber,
				billing.FormatDate(inv.IssueDate),
				billing.FormatDate(inv.Job.DueDate)),
		},
		{
			Text: fmt.Sprintf("BILL TO:\n%s\n%s\n%s\n%s\n\n",
				inv.Customer.Name,
				inv.Customer.Address,
				inv.Customer.Email,
				inv.Customer.Phone),
		},
		{
			Text: fmt.Sprintf("JOB DETAILS:\nType: %s\nDescription: %s\n\n",
				inv.Job.Type,
				inv.Job.Description),
		},
		{
			Text: fmt.Sprintf("Subtotal: %s\nTax (%s%%): %s\nTOTAL DUE: %s\n\n",
				billing.FormatCurrency(totals.Subtotal),
				inv.Job.TaxRate.String(),
				billing.FormatCurrency(totals.TaxAmount),
				billing.FormatCurrency(totals.Total)),
		},
		{
			Text: "Thank you for your business.\nPlease ensure payment is made by the due date.",
		},
	}
}
