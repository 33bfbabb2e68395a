package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/infra"
)

// EmailWorker delivers queued emails through SMTP. Transient SMTP failures
// are retried with backoff; the pool moves jobs that still fail to the DLQ.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: invalid payload: %w", err)
	}
	if payload.ToEmail == "" {
		return fmt.Errorf("email_worker: missing recipient")
	}

	err := withRetry(ctx, 3, func(attempt int) error {
		if err := w.mailer.SendInvoice(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath); err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("email", payload.ToEmail).
				Msg("email_worker: send attempt failed, retrying")
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("email_worker: send after retries: %w", err)
	}

	log.Info().Str("email", payload.ToEmail).Msg("email_worker: email sent")
	return nil
}
