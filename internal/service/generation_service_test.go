package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/docgen"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/model"
)

// ── In-memory InvoiceRepository stub ─────────────────────────────────────────

type stubInvoiceRepo struct {
	invoices  map[uuid.UUID]*model.Invoice
	updateErr error
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: make(map[uuid.UUID]*model.Invoice)}
}

func (r *stubInvoiceRepo) Create(_ context.Context, inv *model.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	inv.CreatedAt = time.Now()
	cloned := *inv
	r.invoices[inv.ID] = &cloned
	return nil
}

func (r *stubInvoiceRepo) Update(_ context.Context, inv *model.Invoice) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	cloned := *inv
	r.invoices[inv.ID] = &cloned
	return nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *inv
	return &cloned, nil
}

func (r *stubInvoiceRepo) ListByOwner(_ context.Context, ownerID string) ([]model.Invoice, error) {
	var out []model.Invoice
	for _, inv := range r.invoices {
		if inv.OwnerID == ownerID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *stubInvoiceRepo) FindDueRecurring(_ context.Context, now time.Time, limit int) ([]model.Invoice, error) {
	var out []model.Invoice
	for _, inv := range r.invoices {
		if inv.Recurring.AutoSend && inv.Recurring.Frequency != model.FrequencyNone &&
			inv.NextSendAt != nil && !inv.NextSendAt.After(now) {
			out = append(out, *inv)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// ── Recording DocumentService double ─────────────────────────────────────────

type fakeDocs struct {
	calls []string

	createErr     error
	batchErr      error
	permissionErr error

	createdTitle  string
	batchRequests []docgen.Request
	permRole      string
	permScope     string
}

func (f *fakeDocs) CreateDocument(_ context.Context, _, title string) (string, error) {
	f.calls = append(f.calls, "create")
	f.createdTitle = title
	if f.createErr != nil {
		return "", f.createErr
	}
	return "doc-123", nil
}

func (f *fakeDocs) BatchUpdate(_ context.Context, _, documentID string, requests []docgen.Request) error {
	f.calls = append(f.calls, "batch:"+documentID)
	f.batchRequests = requests
	return f.batchErr
}

func (f *fakeDocs) CreatePermission(_ context.Context, _, documentID, role, scope string) error {
	f.calls = append(f.calls, "permission:"+documentID)
	f.permRole = role
	f.permScope = scope
	return f.permissionErr
}

func testSession() Session {
	return Session{UserID: "user-1", Email: "owner@example.com", Name: "Owner", AccessToken: "google-token"}
}

func testInvoice(ownerID string) *model.Invoice {
	return &model.Invoice{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		InvoiceNumber: "INV-4821",
		IssueDate:     "2026-08-15",
		Status:        model.StatusDraft,
		Company:       model.Company{Name: "Acme Plumbing"},
		Customer:      model.Customer{Name: "Jane Cooper", Email: "jane@example.com"},
		Job: model.JobDetails{
			Type:    "Repair",
			Cost:    decimal.NewFromInt(1200),
			TaxRate: decimal.NewFromFloat(8.5),
			DueDate: "2026-08-22",
		},
		Recurring: model.RecurringOptions{Frequency: model.FrequencyNone},
	}
}

// ── GenerateDocument ─────────────────────────────────────────────────────────

func TestGenerateDocument_StepOrder(t *testing.T) {
	docs := &fakeDocs{}
	svc := NewGenerationService(docs, newStubInvoiceRepo(), false)

	result, err := svc.GenerateDocument(context.Background(), testSession(), testInvoice("user-1"))
	require.NoError(t, err)

	require.Equal(t, []string{"create", "batch:doc-123", "permission:doc-123"}, docs.calls)
	assert.Equal(t, "doc-123", result.DocID)
	assert.Equal(t, "https://docs.google.com/document/d/doc-123/view", result.DocURL)
	assert.Equal(t, "Invoice INV-4821 - Jane Cooper", docs.createdTitle)
	assert.Equal(t, "reader", docs.permRole)
	assert.Equal(t, "anyone", docs.permScope)
	assert.NotEmpty(t, docs.batchRequests)
}

func TestGenerateDocument_RequiresSession(t *testing.T) {
	docs := &fakeDocs{}
	svc := NewGenerationService(docs, newStubInvoiceRepo(), false)

	_, err := svc.GenerateDocument(context.Background(), Session{}, testInvoice("user-1"))
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, docs.calls, "no remote call before the auth check")
}

func TestGenerateDocument_CreateFailure(t *testing.T) {
	docs := &fakeDocs{createErr: errors.New("503 backend unavailable")}
	svc := NewGenerationService(docs, newStubInvoiceRepo(), false)

	_, err := svc.GenerateDocument(context.Background(), testSession(), testInvoice("user-1"))
	require.ErrorIs(t, err, ErrDocCreate)
	assert.Equal(t, []string{"create"}, docs.calls, "pipeline stops at the failed step")
}

func TestGenerateDocument_PopulateFailure(t *testing.T) {
	docs := &fakeDocs{batchErr: errors.New("invalid request")}
	svc := NewGenerationService(docs, newStubInvoiceRepo(), false)

	_, err := svc.GenerateDocument(context.Background(), testSession(), testInvoice("user-1"))
	require.ErrorIs(t, err, ErrDocPopulate)
	assert.Equal(t, []string{"create", "batch:doc-123"}, docs.calls, "no permission call after populate fails")
}

func TestGenerateDocument_PermissionFailure(t *testing.T) {
	docs := &fakeDocs{permissionErr: errors.New("quota exceeded")}
	svc := NewGenerationService(docs, newStubInvoiceRepo(), false)

	_, err := svc.GenerateDocument(context.Background(), testSession(), testInvoice("user-1"))
	require.ErrorIs(t, err, ErrDocPermission)
}

// panicDocs fails the test if any remote method is reached.
type panicDocs struct{ t *testing.T }

func (p *panicDocs) CreateDocument(context.Context, string, string) (string, error) {
	p.t.Fatal("demo mode must not call the remote API")
	return "", nil
}
func (p *panicDocs) BatchUpdate(context.Context, string, string, []docgen.Request) error {
	p.t.Fatal("demo mode must not call the remote API")
	return nil
}
func (p *panicDocs) CreatePermission(context.Context, string, string, string, string) error {
	p.t.Fatal("demo mode must not call the remote API")
	return nil
}

func TestGenerateDocument_DemoMode(t *testing.T) {
	svc := NewGenerationService(&panicDocs{t: t}, newStubInvoiceRepo(), true)
	svc.demoDelay = 0

	result, err := svc.GenerateDocument(context.Background(), testSession(), testInvoice("user-1"))
	require.NoError(t, err)
	assert.Equal(t, DemoDocumentID, result.DocID)
	assert.True(t, IsDemoDocument(result.DocID))
	assert.Equal(t, ViewURL(DemoDocumentID), result.DocURL)
}

func TestGenerateDocument_DemoModeHonorsContext(t *testing.T) {
	svc := NewGenerationService(&panicDocs{t: t}, newStubInvoiceRepo(), true)
	svc.demoDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GenerateDocument(ctx, testSession(), testInvoice("user-1"))
	require.ErrorIs(t, err, context.Canceled)
}

// ── GenerateForInvoice ───────────────────────────────────────────────────────

func TestGenerateForInvoice_RecordsResult(t *testing.T) {
	repo := newStubInvoiceRepo()
	inv := testInvoice("user-1")
	require.NoError(t, repo.Create(context.Background(), inv))

	svc := NewGenerationService(&fakeDocs{}, repo, false)

	result, err := svc.GenerateForInvoice(context.Background(), testSession(), inv.ID)
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusGenerated, stored.Status)
	require.NotNil(t, stored.DocID)
	assert.Equal(t, result.DocID, *stored.DocID)
	require.NotNil(t, stored.DocURL)
	assert.Equal(t, result.DocURL, *stored.DocURL)
}

func TestGenerateForInvoice_WrongOwner(t *testing.T) {
	repo := newStubInvoiceRepo()
	inv := testInvoice("someone-else")
	require.NoError(t, repo.Create(context.Background(), inv))

	svc := NewGenerationService(&fakeDocs{}, repo, false)

	_, err := svc.GenerateForInvoice(context.Background(), testSession(), inv.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestGenerateForInvoice_PopulateFailureKeepsDraft(t *testing.T) {
	repo := newStubInvoiceRepo()
	inv := testInvoice("user-1")
	require.NoError(t, repo.Create(context.Background(), inv))

	svc := NewGenerationService(&fakeDocs{batchErr: errors.New("boom")}, repo, false)

	_, err := svc.GenerateForInvoice(context.Background(), testSession(), inv.ID)
	require.ErrorIs(t, err, ErrDocPopulate)

	stored, err := repo.FindByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, stored.Status)
	assert.Nil(t, stored.DocID)
	assert.Nil(t, stored.DocURL)
}

func TestGenerateForInvoice_SaveFailureStillReturnsResult(t *testing.T) {
	repo := newStubInvoiceRepo()
	inv := testInvoice("user-1")
	require.NoError(t, repo.Create(context.Background(), inv))
	repo.updateErr = errors.New("connection reset")

	svc := NewGenerationService(&fakeDocs{}, repo, false)

	result, err := svc.GenerateForInvoice(context.Background(), testSession(), inv.ID)
	require.ErrorIs(t, err, ErrPersistence)
	require.NotNil(t, result, "the document link survives a failed record save")
	assert.Equal(t, "doc-123", result.DocID)
}
