package infra

// HTTP client for the Google Docs and Drive REST APIs — the remote document
// service behind invoice generation. Every call is routed through the shared
// circuit breaker so an outage fast-fails instead of piling up timeouts.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/docgen"
)

// GoogleDocsClient talks to docs.googleapis.com (document CRUD + batch
// edits) and the Drive permissions endpoint (sharing). The caller supplies
// the OAuth bearer token per request: it is the signed-in owner's capability
// and this client never refreshes it.
type GoogleDocsClient struct {
	docsBaseURL  string
	driveBaseURL string
	httpClient   *http.Client
	cb           *CircuitBreaker
}

func NewGoogleDocsClient(docsBaseURL, driveBaseURL string, cb *CircuitBreaker) *GoogleDocsClient {
	return &GoogleDocsClient{
		docsBaseURL:  docsBaseURL,
		driveBaseURL: driveBaseURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		cb:           cb,
	}
}

type createDocumentRequest struct {
	Title string `json:"title"`
}

type createDocumentResponse struct {
	DocumentID string `json:"documentId"`
}

// CreateDocument creates an empty remote document and returns its id.
func (c *GoogleDocsClient) CreateDocument(ctx context.Context, token, title string) (string, error) {
	var result createDocumentResponse
	err := c.post(ctx, token,
		c.docsBaseURL+"/v1/documents",
		createDocumentRequest{Title: title},
		&result)
	if err != nil {
		return "", fmt.Errorf("gdocs: create document: %w", err)
	}
	if result.DocumentID == "" {
		return "", fmt.Errorf("gdocs: create document: empty documentId in response")
	}
	return result.DocumentID, nil
}

type batchUpdateRequest struct {
	Requests []docgen.Request `json:"requests"`
}

// BatchUpdate submits the full edit batch against a document in one request.
// The server applies the requests strictly in list order.
func (c *GoogleDocsClient) BatchUpdate(ctx context.Context, token, documentID string, requests []docgen.Request) error {
	err := c.post(ctx, token,
		fmt.Sprintf("%s/v1/documents/%s:batchUpdate", c.docsBaseURL, documentID),
		batchUpdateRequest{Requests: requests},
		nil)
	if err != nil {
		return fmt.Errorf("gdocs: batch update: %w", err)
	}
	return nil
}

type createPermissionRequest struct {
	Role string `json:"role"`
	Type string `json:"type"`
}

// CreatePermission grants access to the document, e.g. role "reader" with
// scope "anyone" for link sharing.
func (c *GoogleDocsClient) CreatePermission(ctx context.Context, token, documentID, role, scope string) error {
	err := c.post(ctx, token,
		fmt.Sprintf("%s/drive/v3/files/%s/permissions", c.driveBaseURL, documentID),
		createPermissionRequest{Role: role, Type: scope},
		nil)
	if err != nil {
		return fmt.Errorf("gdocs: create permission: %w", err)
	}
	return nil
}

// post issues one JSON request through the circuit breaker, decoding the
// response into out when out is non-nil.
func (c *GoogleDocsClient) post(ctx context.Context, token, url string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return c.cb.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("service unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("service returned %d: %s", resp.StatusCode, snippet)
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
		return nil
	})
}
