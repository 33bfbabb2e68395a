package dto

import (
	"github.com/shopspring/decimal"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/model"
)

type CompanyPayload struct {
	Name    string  `json:"name" validate:"max=200"`
	LogoURL *string `json:"logoUrl" validate:"omitempty,max=500"`
}

type CustomerPayload struct {
	Name    string `json:"name" validate:"max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address" validate:"max=500"`
}

type JobPayload struct {
	Type        string          `json:"type" validate:"max=100"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost" validate:"min=0"`
	TaxRate     decimal.Decimal `json:"taxRate" validate:"min=0"`
	DueDate     string          `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

type RecurringPayload struct {
	Frequency string  `json:"frequency" validate:"omitempty,oneof=None Weekly Bi-Weekly Monthly Quarterly Yearly"`
	StartDate string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	AutoSend  bool    `json:"autoSend"`
}

// InvoiceRequest is the create/update payload. Blank identity fields are
// defaulted server-side on create (fresh number, today's date).
type InvoiceRequest struct {
	InvoiceNumber string           `json:"invoiceNumber" validate:"max=30"`
	IssueDate     string           `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Company       CompanyPayload   `json:"company"`
	Customer      CustomerPayload  `json:"customer"`
	Job           JobPayload       `json:"job"`
	Recurring     RecurringPayload `json:"recurring"`
}

type TotalsResponse struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"taxAmount"`
	Total     decimal.Decimal `json:"total"`
}

type InvoiceResponse struct {
	ID            string                 `json:"id"`
	InvoiceNumber string                 `json:"invoiceNumber"`
	IssueDate     string                 `json:"date"`
	Status        string                 `json:"status"`
	Company       model.Company          `json:"company"`
	Customer      model.Customer         `json:"customer"`
	Job           model.JobDetails       `json:"job"`
	Recurring     model.RecurringOptions `json:"recurring"`
	Totals        TotalsResponse         `json:"totals"`
	DocID         *string                `json:"docId,omitempty"`
	DocURL        *string                `json:"docUrl,omitempty"`
	CreatedAt     string                 `json:"createdAt"`
	UpdatedAt     string                 `json:"updatedAt"`
}

// GenerateResponse is returned by the document generation endpoint.
// RecordSaved is false when the document exists but persisting the invoice
// record failed — the links remain valid either way.
type GenerateResponse struct {
	DocID       string `json:"docId"`
	DocURL      string `json:"docUrl"`
	ExportURL   string `json:"exportUrl"`
	RecordSaved bool   `json:"recordSaved"`
}
