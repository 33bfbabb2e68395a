package worker

// Background goroutine that periodically claims due recurring invoices and
// enqueues their delivery. Claiming advances next_send_at (or clears it past
// the end date) before the job is enqueued, so a slow worker can never cause
// a duplicate send for the same slot.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/repository"
)

const (
	cronTickInterval = time.Minute
	cronBatchSize    = 20
)

// RecurringCronConfig holds all dependencies for the cron goroutine.
type RecurringCronConfig struct {
	Repo       repository.InvoiceRepository
	Dispatcher *Dispatcher
}

// StartRecurringCron launches a goroutine that ticks every minute, claims
// due auto-send invoices, and enqueues delivery jobs. It respects the
// context for graceful shutdown.
func StartRecurringCron(ctx context.Context, cfg RecurringCronConfig) {
	go func() {
		ticker := time.NewTicker(cronTickInterval)
		defer ticker.Stop()

		log.Info().Msg("recurring_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("recurring_cron: shutting down")
				return
			case <-ticker.C:
				processDue(ctx, cfg)
			}
		}
	}()
}

func processDue(ctx context.Context, cfg RecurringCronConfig) {
	now := time.Now()

	due, err := cfg.Repo.FindDueRecurring(ctx, now, cronBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("recurring_cron: query failed")
		return
	}

	for i := range due {
		inv := &due[i]

		// Claim: advance the schedule before enqueueing.
		if next, ok := NextRun(inv.Recurring.Frequency, now); ok && withinEndDate(inv.Recurring, next) {
			inv.NextSendAt = &next
		} else {
			inv.NextSendAt = nil // schedule exhausted
		}
		if err := cfg.Repo.Update(ctx, inv); err != nil {
			log.Error().Err(err).Str("invoice_id", inv.ID.String()).Msg("recurring_cron: claim failed, skipping")
			continue
		}

		job := AutoSendJobPayload{InvoiceID: inv.ID.String()}
		if err := cfg.Dispatcher.EnqueueAutoSend(ctx, job); err != nil {
			log.Error().Err(err).Str("invoice_id", inv.ID.String()).Msg("recurring_cron: enqueue failed")
			continue
		}
		log.Info().Str("invoice_id", inv.ID.String()).Msg("recurring_cron: delivery enqueued")
	}
}
