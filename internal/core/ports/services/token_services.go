package services

import (
	"context"

	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
)

// TokenIssuer mints token pairs and makes them the user's only valid session.
type TokenIssuer interface {
	// IssueTokenPair signs a fresh pair and persists it, invalidating any earlier pair.
	IssueTokenPair(ctx context.Context, userID string) (domain.TokenPair, error)

	// Rotate exchanges the currently stored refresh token for a fresh pair.
	// Any token other than the stored one fails with Unauthorized.
	Rotate(ctx context.Context, userID string, presentedRefreshToken string) (domain.TokenPair, error)

	// Revoke clears both stored tokens. Revoking twice is a no-op.
	Revoke(ctx context.Context, userID string) error
}

// TokenVerifier checks signatures and expiry. All failures collapse to Unauthorized.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (string, error)
	VerifyRefreshToken(ctx context.Context, token string) (string, error)

	// Authenticate verifies an access token and requires it to be the one stored for its user.
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
}

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	TokenIssuer
	TokenVerifier
}
