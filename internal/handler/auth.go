package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/apierror"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/dto"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/service"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Session godoc
// @Summary      Exchange a Google token for a session
// @Description  Verifies the Google OAuth access token and issues a session JWT. In demo mode (no Google client configured) a fixed demo identity is issued without verification.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.SessionRequest true "Google access token"
// @Success      200  {object} dto.SessionResponse
// @Failure      401  {object} apierror.APIError
// @Router       /v1/auth/session [post]
func (h *AuthHandler) Session(c *gin.Context) {
	var req dto.SessionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Session(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrSignInRejected) {
			c.JSON(http.StatusUnauthorized, apierror.New("Sign-in rejected"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Could not create session"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
