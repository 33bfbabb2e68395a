package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/docgen"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/infra"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/model"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/repository"
)

// The HTTP client satisfies the injected interface.
var _ DocumentService = (*infra.GoogleDocsClient)(nil)

// DemoDocumentID is the sentinel returned by the unconfigured-environment
// path. Downstream consumers (the PDF download handler) special-case it
// instead of issuing real export requests.
const DemoDocumentID = "1234567890abcdef"

// demoGenerationDelay simulates remote latency so the demo path exercises
// the same in-progress UI states as a live call.
const demoGenerationDelay = 2 * time.Second

// ViewURL builds the durable viewer link for a generated document.
func ViewURL(docID string) string {
	return fmt.Sprintf("https://docs.google.com/document/d/%s/view", docID)
}

// ExportURL builds the PDF export link for a generated document.
func ExportURL(docID string) string {
	return fmt.Sprintf("https://docs.google.com/document/d/%s/export?format=pdf", docID)
}

// IsDemoDocument reports whether a document id is the demo sentinel.
func IsDemoDocument(docID string) bool {
	return docID == DemoDocumentID
}

// DocumentService is the remote document API the orchestrator drives.
// Injected so tests can substitute a recording double.
type DocumentService interface {
	CreateDocument(ctx context.Context, token, title string) (string, error)
	BatchUpdate(ctx context.Context, token, documentID string, requests []docgen.Request) error
	CreatePermission(ctx context.Context, token, documentID, role, scope string) error
}

// Session is the signed-in owner's capability for one generation call.
// AccessToken is read-only here — refreshing it belongs to the sign-in flow,
// never to the orchestrator.
type Session struct {
	UserID      string
	Email       string
	Name        string
	AccessToken string
}

// GenerationResult is the durable reference to a generated document.
type GenerationResult struct {
	DocID  string
	DocURL string
}

// GenerationService drives the remote document lifecycle:
// create → populate → publish → resolve, strictly in order, each step
// consuming data from the previous one. No retries, no compensating
// rollback — failures surface with the step that produced them.
type GenerationService struct {
	docs      DocumentService
	repo      repository.InvoiceRepository
	demoMode  bool
	demoDelay time.Duration
}

func NewGenerationService(docs DocumentService, repo repository.InvoiceRepository, demoMode bool) *GenerationService {
	return &GenerationService{
		docs:      docs,
		repo:      repo,
		demoMode:  demoMode,
		demoDelay: demoGenerationDelay,
	}
}

// GenerateDocument produces a shared remote document for the invoice and
// returns its durable reference. In demo mode it resolves the sentinel id
// after an artificial delay without touching the network.
func (s *GenerationService) GenerateDocument(ctx context.Context, sess Session, inv *model.Invoice) (*GenerationResult, error) {
	if sess.UserID == "" {
		return nil, ErrNotAuthenticated
	}

	if s.demoMode {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.demoDelay):
		}
		return &GenerationResult{DocID: DemoDocumentID, DocURL: ViewURL(DemoDocumentID)}, nil
	}

	// 1. Create — a failure here leaves nothing behind to clean up.
	title := fmt.Sprintf("Invoice %s - %s", inv.InvoiceNumber, inv.Customer.Name)
	docID, err := s.docs.CreateDocument(ctx, sess.AccessToken, title)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocCreate, err)
	}

	// 2. Populate — one atomic batch built against the empty buffer.
	blocks := docgen.PlanContent(inv)
	requests, _, err := docgen.BuildRequests(blocks, docgen.DocumentStartIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocPopulate, err)
	}
	if err := s.docs.BatchUpdate(ctx, sess.AccessToken, docID, requests); err != nil {
		// The empty document stays behind; surfaced, not rolled back.
		return nil, fmt.Errorf("%w: %v", ErrDocPopulate, err)
	}

	// 3. Publish — anyone with the link can read.
	if err := s.docs.CreatePermission(ctx, sess.AccessToken, docID, "reader", "anyone"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocPermission, err)
	}

	// 4. Resolve.
	return &GenerationResult{DocID: docID, DocURL: ViewURL(docID)}, nil
}

// GenerateForInvoice runs the full generation flow for a stored invoice and
// records the result. Re-generation always creates a new remote document;
// the stored reference is simply overwritten.
//
// When the record save fails after a successful generation, the result is
// returned together with ErrPersistence — dropping the URL on top of a save
// failure would strand an orphaned document with no record of it.
func (s *GenerationService) GenerateForInvoice(ctx context.Context, sess Session, id uuid.UUID) (*GenerationResult, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.OwnerID != sess.UserID {
		return nil, ErrForbidden
	}

	result, err := s.GenerateDocument(ctx, sess, inv)
	if err != nil {
		return nil, err
	}

	inv.Status = model.StatusGenerated
	inv.DocID = &result.DocID
	inv.DocURL = &result.DocURL
	if err := s.repo.Update(ctx, inv); err != nil {
		return result, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return result, nil
}
