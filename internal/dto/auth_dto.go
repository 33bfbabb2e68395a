package dto

type SessionRequest struct {
	// AccessToken is a Google OAuth access token obtained by the frontend
	// consent flow. Empty is allowed only in demo mode.
	AccessToken string `json:"access_token"`
}

type UserResponse struct {
	UID     string `json:"uid"`
	Email   string `json:"email"`
	Name    string `json:"displayName"`
	Picture string `json:"photoUrl,omitempty"`
}

type SessionResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`
}
