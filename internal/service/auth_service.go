package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/config"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/dto"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/infra"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/middleware"
)

// ErrSignInRejected — the supplied Google token did not verify.
var ErrSignInRejected = errors.New("sign-in rejected")

// DemoAccessToken is the Google-token stand-in issued by the demo path.
const DemoAccessToken = "demo-token"

// UserInfoProvider resolves a Google access token to the identity behind it.
type UserInfoProvider interface {
	UserInfo(ctx context.Context, accessToken string) (*infra.GoogleUserInfo, error)
}

type AuthService interface {
	// Session exchanges a Google access token for a local session JWT.
	// In demo mode it issues a fixed demo identity without verification.
	Session(ctx context.Context, req dto.SessionRequest) (*dto.SessionResponse, error)
}

type authService struct {
	oauth UserInfoProvider
	cfg   *config.Config
}

func NewAuthService(oauth UserInfoProvider, cfg *config.Config) AuthService {
	return &authService{oauth: oauth, cfg: cfg}
}

func (s *authService) Session(ctx context.Context, req dto.SessionRequest) (*dto.SessionResponse, error) {
	if s.cfg.DemoMode() {
		return s.issue(dto.UserResponse{
			UID:   "demo-user",
			Email: "demo@example.com",
			Name:  "Demo User",
		}, DemoAccessToken)
	}

	if req.AccessToken == "" {
		return nil, ErrSignInRejected
	}
	info, err := s.oauth.UserInfo(ctx, req.AccessToken)
	if err != nil {
		return nil, ErrSignInRejected
	}

	return s.issue(dto.UserResponse{
		UID:     info.Sub,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, req.AccessToken)
}

func (s *authService) issue(user dto.UserResponse, googleToken string) (*dto.SessionResponse, error) {
	ttl := time.Duration(s.cfg.JWTExpirationHours) * time.Hour

	claims := middleware.SessionClaims{
		UserID:      user.UID,
		Email:       user.Email,
		Name:        user.Name,
		GoogleToken: googleToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.SessionResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User:        user,
	}, nil
}
