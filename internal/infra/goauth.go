package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GoogleUserInfo is the subset of the OAuth userinfo response this service
// needs to establish a session.
type GoogleUserInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleOAuthClient resolves a Google access token to the identity behind
// it. Sign-in itself (the OAuth consent flow) happens in the frontend; the
// backend only verifies the resulting token.
type GoogleOAuthClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGoogleOAuthClient(baseURL string) *GoogleOAuthClient {
	return &GoogleOAuthClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// UserInfo validates the access token against the userinfo endpoint.
// Any non-2xx response means the token is expired or was never valid.
func (c *GoogleOAuthClient) UserInfo(ctx context.Context, accessToken string) (*GoogleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/oauth2/v3/userinfo", nil)
	if err != nil {
		return nil, fmt.Errorf("goauth: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("goauth: userinfo unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("goauth: userinfo returned %d", resp.StatusCode)
	}

	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("goauth: decode response: %w", err)
	}
	return &info, nil
}
