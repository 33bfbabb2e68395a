package infra

// Local PDF rendering of an invoice using go-pdf/fpdf. Used by the
// auto-send pipeline to attach a copy to outgoing emails — it mirrors the
// same block layout the remote document gets, so both artifacts agree.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/billing"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/model"
)

// GenerateInvoicePDF renders an A4 invoice into storagePath (created if
// needed) and returns the absolute path of the written file.
func GenerateInvoicePDF(inv *model.Invoice, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%s.pdf", inv.ID)
	filePath := filepath.Join(storagePath, fileName)

	totals := billing.CalculateTotals(inv.Job)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 40

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(contentW, 12, headerName(inv), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(contentW, 8, "INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// ── Invoice metadata ─────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Invoice #: "+inv.InvoiceNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Date: "+billing.FormatDate(inv.IssueDate), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Due Date: "+billing.FormatDate(inv.Job.DueDate), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Bill to ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "BILL TO:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{inv.Customer.Name, inv.Customer.Address, inv.Customer.Email, inv.Customer.Phone} {
		pdf.CellFormat(contentW, 5, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Job details ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "JOB DETAILS:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 5, "Type: "+inv.Job.Type, "", 1, "L", false, 0, "")
	pdf.MultiCell(contentW, 5, "Description: "+inv.Job.Description, "", "L", false)
	pdf.Ln(4)

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(20, pdf.GetY(), pageW-20, pdf.GetY())
	pdf.Ln(3)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := contentW * 0.7
	valueW := contentW * 0.3

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(labelW, 6, "Subtotal:", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 6, billing.FormatCurrency(totals.Subtotal), "", 1, "R", false, 0, "")

	pdf.CellFormat(labelW, 6, fmt.Sprintf("Tax (%s%%):", inv.Job.TaxRate.String()), "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 6, billing.FormatCurrency(totals.TaxAmount), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(labelW, 8, "TOTAL DUE:", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 8, billing.FormatCurrency(totals.Total), "", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, "Thank you for your business.", "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, "Please ensure payment is made by the due date.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

func headerName(inv *model.Invoice) string {
	if inv.Company.Name == "" {
		return "INVOICE"
	}
	return strings.ToUpper(inv.Company.Name)
}
