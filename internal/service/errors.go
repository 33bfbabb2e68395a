package service

import "errors"

// Generation error taxonomy. Each remote step gets its own sentinel so the
// caller can tell which artifact state exists after a failure (no document /
// empty document / unshared document). Wrapped causes ride along via %w+%v.
var (
	// ErrNotAuthenticated — generation refused to start: no signed-in owner.
	// Distinct from step failures so the UI can re-trigger sign-in.
	ErrNotAuthenticated = errors.New("generation requires a signed-in user")

	// ErrDocCreate — step 1 failed; no remote document exists.
	ErrDocCreate = errors.New("document creation failed")

	// ErrDocPopulate — step 2 failed; an empty or partially titled document
	// was left behind. No automatic rollback: cleanup is an operator task.
	ErrDocPopulate = errors.New("document population failed")

	// ErrDocPermission — step 3 failed; the document is populated but not
	// link-shareable.
	ErrDocPermission = errors.New("document sharing failed")

	// ErrPersistence — the document was generated but the invoice record
	// could not be saved. The document URL is still returned alongside it.
	ErrPersistence = errors.New("saving the invoice record failed")

	// ErrInvoiceLocked — financial fields are immutable once generated.
	ErrInvoiceLocked = errors.New("invoice financial fields are locked after generation")

	// ErrForbidden — the invoice belongs to a different owner.
	ErrForbidden = errors.New("invoice belongs to a different owner")
)
