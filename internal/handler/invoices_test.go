package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/service"
)

func TestWriteServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantHidden string // substring that must NOT leak into the body
	}{
		{"not found", gorm.ErrRecordNotFound, http.StatusNotFound, ""},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, ""},
		{"locked", service.ErrInvoiceLocked, http.StatusConflict, ""},
		{"unauthenticated", service.ErrNotAuthenticated, http.StatusUnauthorized, ""},
		{"create step", fmt.Errorf("%w: 503", service.ErrDocCreate), http.StatusBadGateway, ""},
		{"populate step", fmt.Errorf("%w: 400", service.ErrDocPopulate), http.StatusBadGateway, ""},
		{"permission step", fmt.Errorf("%w: 403", service.ErrDocPermission), http.StatusBadGateway, ""},
		{
			"persistence",
			fmt.Errorf("%w: pq: connection refused at 10.0.0.5", service.ErrPersistence),
			http.StatusInternalServerError,
			"10.0.0.5",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			writeServiceError(c, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantHidden != "" {
				assert.NotContains(t, rec.Body.String(), tc.wantHidden,
					"internal error detail must not reach the client")
			}
		})
	}
}
