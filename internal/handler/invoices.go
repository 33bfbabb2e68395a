package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/apierror"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/billing"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/dto"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/middleware"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/model"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/service"
)

type InvoicesHandler struct {
	svc service.InvoiceService
	gen *service.GenerationService
}

func NewInvoicesHandler(svc service.InvoiceService, gen *service.GenerationService) *InvoicesHandler {
	return &InvoicesHandler{svc: svc, gen: gen}
}

// Create godoc
// @Summary      Create an invoice draft
// @Description  Stores a new draft. Blank invoice number, issue date and due date get server-side defaults.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.InvoiceRequest true "Invoice fields"
// @Success      201  {object} dto.InvoiceResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/invoices [post]
func (h *InvoicesHandler) Create(c *gin.Context) {
	var req dto.InvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	inv, err := h.svc.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toInvoiceResponse(inv))
}

// List godoc
// @Summary      List invoices
// @Description  Returns the signed-in owner's invoices, most recent first.
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.InvoiceResponse
// @Router       /v1/invoices [get]
func (h *InvoicesHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	invoices, err := h.svc.List(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list invoices"))
		return
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		out = append(out, toInvoiceResponse(&invoices[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Invoice UUID"
// @Success      200 {object} dto.InvoiceResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/invoices/{id} [get]
func (h *InvoicesHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)

	inv, err := h.svc.Get(c.Request.Context(), claims.UserID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceResponse(inv))
}

// Update godoc
// @Summary      Update an invoice
// @Description  Replaces the invoice fields. Once a document has been generated the financial fields are locked; changing them returns 409.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string             true "Invoice UUID"
// @Param        body body dto.InvoiceRequest true "Invoice fields"
// @Success      200  {object} dto.InvoiceResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/invoices/{id} [put]
func (h *InvoicesHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.InvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	inv, err := h.svc.Update(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceResponse(inv))
}

// Generate godoc
// @Summary      Generate the invoice document
// @Description  Creates a Google Doc for the invoice, fills it in one batch, shares it read-only by link and records the reference. In demo mode a sentinel document is resolved without touching Google.
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Invoice UUID"
// @Success      200 {object} dto.GenerateResponse
// @Failure      502 {object} apierror.APIError
// @Router       /v1/invoices/{id}/generate [post]
func (h *InvoicesHandler) Generate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	sess := service.Session{
		UserID:      claims.UserID,
		Email:       claims.Email,
		Name:        claims.Name,
		AccessToken: claims.GoogleToken,
	}

	result, err := h.gen.GenerateForInvoice(c.Request.Context(), sess, id)
	if err != nil && !errors.Is(err, service.ErrPersistence) {
		writeServiceError(c, err)
		return
	}

	// A persistence failure after a successful generation still returns the
	// links; the client learns the record was not saved via RecordSaved.
	c.JSON(http.StatusOK, dto.GenerateResponse{
		DocID:       result.DocID,
		DocURL:      result.DocURL,
		ExportURL:   service.ExportURL(result.DocID),
		RecordSaved: err == nil,
	})
}

// MarkPaid godoc
// @Summary      Mark an invoice as paid
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Invoice UUID"
// @Success      200 {object} dto.InvoiceResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/invoices/{id}/paid [patch]
func (h *InvoicesHandler) MarkPaid(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)

	inv, err := h.svc.MarkPaid(c.Request.Context(), claims.UserID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceResponse(inv))
}

// DownloadPDF godoc
// @Summary      Download the invoice as PDF
// @Description  Redirects to the Google Docs PDF export of the generated document. Demo documents have no real export and return 409.
// @Tags         invoices
// @Security     BearerAuth
// @Param        id path string true "Invoice UUID"
// @Success      302
// @Failure      409 {object} apierror.APIError
// @Router       /v1/invoices/{id}/pdf [get]
func (h *InvoicesHandler) DownloadPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)

	inv, err := h.svc.Get(c.Request.Context(), claims.UserID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if inv.DocID == nil {
		c.JSON(http.StatusConflict, apierror.New("No document has been generated for this invoice"))
		return
	}
	if service.IsDemoDocument(*inv.DocID) {
		c.JSON(http.StatusConflict, apierror.New("Demo documents have no PDF export. Configure Google credentials to generate real documents."))
		return
	}
	c.Redirect(http.StatusFound, service.ExportURL(*inv.DocID))
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid invoice ID"))
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Invoice not found"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, apierror.New("Invoice belongs to a different owner"))
	case errors.Is(err, service.ErrInvoiceLocked):
		c.JSON(http.StatusConflict, apierror.New("Financial fields are locked after document generation"))
	case errors.Is(err, service.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, apierror.New("Document generation requires a signed-in user"))
	case errors.Is(err, service.ErrDocCreate),
		errors.Is(err, service.ErrDocPopulate),
		errors.Is(err, service.ErrDocPermission):
		c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
	case errors.Is(err, service.ErrPersistence):
		// Never echo the wrapped DB error to clients.
		c.JSON(http.StatusInternalServerError, apierror.New("Could not save the invoice"))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}

func toInvoiceResponse(inv *model.Invoice) *dto.InvoiceResponse {
	totals := billing.CalculateTotals(inv.Job)
	return &dto.InvoiceResponse{
		ID:            inv.ID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     inv.IssueDate,
		Status:        inv.Status,
		Company:       inv.Company,
		Customer:      inv.Customer,
		Job:           inv.Job,
		Recurring:     inv.Recurring,
		Totals: dto.TotalsResponse{
			Subtotal:  totals.Subtotal,
			TaxAmount: totals.TaxAmount,
			Total:     totals.Total,
		},
		DocID:     inv.DocID,
		DocURL:    inv.DocURL,
		CreatedAt: inv.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: inv.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
