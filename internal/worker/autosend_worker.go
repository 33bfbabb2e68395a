package worker

// Processes recurring-invoice delivery jobs from QueueAutoSend: renders the
// invoice PDF locally and hands delivery off to the email queue. Schedule
// advancement happens in the recurring cron at claim time, so a crashed
// worker never double-advances.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/billing"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/infra"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/model"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/repository"
)

// AutoSendJobPayload is the job envelope sent to QueueAutoSend.
type AutoSendJobPayload struct {
	InvoiceID string `json:"invoice_id"`
}

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path,omitempty"`
}

// EmailEnqueuer hands finished deliveries off to the email queue.
// Satisfied by *Dispatcher; substituted by a recording fake in tests.
type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, payload interface{}) error
}

type AutoSendWorker struct {
	repo           repository.InvoiceRepository
	emails         EmailEnqueuer
	pdfStoragePath string
}

func NewAutoSendWorker(repo repository.InvoiceRepository, emails EmailEnqueuer, pdfStoragePath string) *AutoSendWorker {
	return &AutoSendWorker{
		repo:           repo,
		emails:         emails,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single auto-send job:
//  1. Parse AutoSendJobPayload from the job envelope
//  2. Fetch the invoice and re-check the schedule is still active
//  3. Render the invoice PDF
//  4. Enqueue the email job with the attachment
//  5. Record last_sent_at
func (w *AutoSendWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload AutoSendJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("autosend_worker: invalid payload: %w", err)
	}

	invoiceID, err := uuid.Parse(payload.InvoiceID)
	if err != nil {
		return fmt.Errorf("autosend_worker: invalid invoice_id %q", payload.InvoiceID)
	}

	inv, err := w.repo.FindByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("autosend_worker: invoice not found: %w", err)
	}

	// The schedule may have been switched off between claim and processing.
	if inv.Recurring.Frequency == model.FrequencyNone || !inv.Recurring.AutoSend {
		log.Info().Str("invoice_id", payload.InvoiceID).Msg("autosend_worker: schedule disabled, skipping")
		return nil
	}
	if inv.Customer.Email == "" {
		log.Warn().Str("invoice_id", payload.InvoiceID).Msg("autosend_worker: customer has no email, skipping")
		return nil
	}

	pdfPath, err := infra.GenerateInvoicePDF(inv, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("autosend_worker: PDF generation: %w", err)
	}

	totals := billing.CalculateTotals(inv.Job)
	body := fmt.Sprintf("Please find invoice %s attached.\nTotal due: %s\nDue date: %s",
		inv.InvoiceNumber,
		billing.FormatCurrency(totals.Total),
		billing.FormatDate(inv.Job.DueDate))
	if inv.DocURL != nil && *inv.DocURL != "" {
		body += "\n\nView online: " + *inv.DocURL
	}

	emailJob := EmailJobPayload{
		ToEmail: inv.Customer.Email,
		Subject: fmt.Sprintf("Invoice %s from %s", inv.InvoiceNumber, inv.Company.Name),
		Body:    body,
		PDFPath: pdfPath,
	}
	if err := w.emails.EnqueueEmail(ctx, emailJob); err != nil {
		return fmt.Errorf("autosend_worker: enqueue email: %w", err)
	}

	now := time.Now()
	inv.LastSentAt = &now
	if err := w.repo.Update(ctx, inv); err != nil {
		// The email is already queued; only the bookkeeping write failed.
		log.Warn().Err(err).Str("invoice_id", payload.InvoiceID).Msg("autosend_worker: failed to record last_sent_at")
	}

	log.Info().Str("invoice_id", payload.InvoiceID).Str("email", inv.Customer.Email).Msg("autosend_worker: invoice queued for delivery")
	return nil
}
