package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/dto"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/model"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/repository"
)

const isoDate = "2006-01-02"

type InvoiceService interface {
	Create(ctx context.Context, ownerID string, req dto.InvoiceRequest) (*model.Invoice, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, req dto.InvoiceRequest) (*model.Invoice, error)
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*model.Invoice, error)
	List(ctx context.Context, ownerID string) ([]model.Invoice, error)
	MarkPaid(ctx context.Context, ownerID string, id uuid.UUID) (*model.Invoice, error)
}

type invoiceService struct {
	repo repository.InvoiceRepository
	now  func() time.Time
}

func NewInvoiceService(repo repository.InvoiceRepository) InvoiceService {
	return &invoiceService{repo: repo, now: time.Now}
}

// Create stores a new draft. Blank identity fields get the standard
// defaults: a fresh INV-number, today's issue date, a due date one week out.
func (s *invoiceService) Create(ctx context.Context, ownerID string, req dto.InvoiceRequest) (*model.Invoice, error) {
	now := s.now()

	inv := &model.Invoice{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		InvoiceNumber: req.InvoiceNumber,
		IssueDate:     req.IssueDate,
		Status:        model.StatusDraft,
	}
	applyRequest(inv, req)

	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = fmt.Sprintf("INV-%04d", rand.Intn(10000))
	}
	if inv.IssueDate == "" {
		inv.IssueDate = now.Format(isoDate)
	}
	if inv.Job.DueDate == "" {
		inv.Job.DueDate = now.AddDate(0, 0, 7).Format(isoDate)
	}
	if inv.Recurring.Frequency == "" {
		inv.Recurring.Frequency = model.FrequencyNone
	}
	inv.NextSendAt = initialSendTime(inv, now)

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return inv, nil
}

// Update mutates a draft in place. Once a document has been generated the
// financial fields are frozen; recurring options stay editable.
func (s *invoiceService) Update(ctx context.Context, ownerID string, id uuid.UUID, req dto.InvoiceRequest) (*model.Invoice, error) {
	inv, err := s.ownedInvoice(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if inv.Locked() && changesFinancials(inv, req) {
		return nil, ErrInvoiceLocked
	}

	prevRecurring := inv.Recurring

	inv.InvoiceNumber = req.InvoiceNumber
	inv.IssueDate = req.IssueDate
	applyRequest(inv, req)
	if inv.Recurring.Frequency == "" {
		inv.Recurring.Frequency = model.FrequencyNone
	}
	// Reseed the schedule only when the recurring options actually changed.
	// The cron advances NextSendAt as it claims slots; recomputing it on an
	// unrelated edit would pull a future slot back to now and double-send.
	if changesSchedule(prevRecurring, inv.Recurring) {
		inv.NextSendAt = initialSendTime(inv, s.now())
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return inv, nil
}

func (s *invoiceService) Get(ctx context.Context, ownerID string, id uuid.UUID) (*model.Invoice, error) {
	return s.ownedInvoice(ctx, ownerID, id)
}

func (s *invoiceService) List(ctx context.Context, ownerID string) ([]model.Invoice, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// MarkPaid transitions Generated → Paid.
func (s *invoiceService) MarkPaid(ctx context.Context, ownerID string, id uuid.UUID) (*model.Invoice, error) {
	inv, err := s.ownedInvoice(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != model.StatusGenerated {
		return nil, fmt.Errorf("invoice in status %q cannot be marked paid", inv.Status)
	}
	inv.Status = model.StatusPaid
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return inv, nil
}

func (s *invoiceService) ownedInvoice(ctx context.Context, ownerID string, id uuid.UUID) (*model.Invoice, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return inv, nil
}

func applyRequest(inv *model.Invoice, req dto.InvoiceRequest) {
	inv.Company = model.Company{Name: req.Company.Name, LogoURL: req.Company.LogoURL}
	inv.Customer = model.Customer{
		Name:    req.Customer.Name,
		Email:   req.Customer.Email,
		Phone:   req.Customer.Phone,
		Address: req.Customer.Address,
	}
	inv.Job = model.JobDetails{
		Type:        req.Job.Type,
		Description: req.Job.Description,
		Cost:        req.Job.Cost,
		TaxRate:     req.Job.TaxRate,
		DueDate:     req.Job.DueDate,
	}
	inv.Recurring = model.RecurringOptions{
		Frequency: req.Recurring.Frequency,
		StartDate: req.Recurring.StartDate,
		EndDate:   req.Recurring.EndDate,
		AutoSend:  req.Recurring.AutoSend,
	}
}

func changesSchedule(before, after model.RecurringOptions) bool {
	if before.Frequency != after.Frequency ||
		before.StartDate != after.StartDate ||
		before.AutoSend != after.AutoSend {
		return true
	}
	switch {
	case before.EndDate == nil && after.EndDate == nil:
		return false
	case before.EndDate == nil || after.EndDate == nil:
		return true
	default:
		return *before.EndDate != *after.EndDate
	}
}

func changesFinancials(inv *model.Invoice, req dto.InvoiceRequest) bool {
	return !inv.Job.Cost.Equal(req.Job.Cost) ||
		!inv.Job.TaxRate.Equal(req.Job.TaxRate) ||
		inv.Job.Type != req.Job.Type ||
		inv.Job.Description != req.Job.Description ||
		inv.Job.DueDate != req.Job.DueDate
}

// initialSendTime seeds the auto-send schedule: the start date when it is
// still ahead, otherwise now (the cron advances it from there). Nil when
// the schedule is off — Frequency None means the other recurring fields
// are ignored even if present.
func initialSendTime(inv *model.Invoice, now time.Time) *time.Time {
	r := inv.Recurring
	if r.Frequency == model.FrequencyNone || r.Frequency == "" || !r.AutoSend {
		return nil
	}
	start, err := time.Parse(isoDate, r.StartDate)
	if err != nil {
		return nil
	}
	if r.EndDate != nil {
		if end, err := time.Parse(isoDate, *r.EndDate); err == nil && now.After(end.AddDate(0, 0, 1)) {
			return nil
		}
	}
	if start.After(now) {
		return &start
	}
	return &now
}
