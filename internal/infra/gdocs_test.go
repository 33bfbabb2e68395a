package infra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/docgen"
)

func newTestClient(srv *httptest.Server) *GoogleDocsClient {
	return NewGoogleDocsClient(srv.URL, srv.URL, NewCircuitBreaker(DefaultCBConfig()))
}

func TestCreateDocument(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"documentId": "doc-abc"})
	}))
	defer srv.Close()

	id, err := newTestClient(srv).CreateDocument(context.Background(), "tok", "Invoice INV-1 - Jane")
	require.NoError(t, err)
	assert.Equal(t, "doc-abc", id)
	assert.Equal(t, "/v1/documents", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "Invoice INV-1 - Jane", gotBody["title"])
}

func TestCreateDocument_EmptyID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).CreateDocument(context.Background(), "tok", "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty documentId")
}

func TestBatchUpdate_PathAndPayload(t *testing.T) {
	var gotPath string
	var gotBody struct {
		Requests []json.RawMessage `json:"requests"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	requests, _, err := docgen.BuildRequests([]docgen.ContentBlock{{Text: "hello"}}, docgen.DocumentStartIndex)
	require.NoError(t, err)

	err = newTestClient(srv).BatchUpdate(context.Background(), "tok", "doc-abc", requests)
	require.NoError(t, err)
	assert.Equal(t, "/v1/documents/doc-abc:batchUpdate", gotPath)
	assert.Len(t, gotBody.Requests, len(requests))
}

func TestCreatePermission_Path(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestClient(srv).CreatePermission(context.Background(), "tok", "doc-abc", "reader", "anyone")
	require.NoError(t, err)
	assert.Equal(t, "/drive/v3/files/doc-abc/permissions", gotPath)
	assert.Equal(t, "reader", gotBody["role"])
	assert.Equal(t, "anyone", gotBody["type"])
}

func TestErrorSnippetSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"insufficient scopes"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).CreateDocument(context.Background(), "tok", "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "insufficient scopes")
}

func TestCircuitBreakerFastFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		OpenTimeout:      time.Hour,
	})
	client := NewGoogleDocsClient(srv.URL, srv.URL, cb)

	for i := 0; i < 2; i++ {
		_, err := client.CreateDocument(context.Background(), "tok", "t")
		require.Error(t, err)
	}
	require.Equal(t, CBOpen, cb.State())

	_, err := client.CreateDocument(context.Background(), "tok", "t")
	require.ErrorIs(t, err, ErrCircuitOpen)
}
