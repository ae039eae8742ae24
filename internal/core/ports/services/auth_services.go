package services

import (
	"context"

	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	"github.com/SscSPs/hydration_tracker_app/internal/dto"
)

// RegistrationSvc covers sign-up and email ownership.
type RegistrationSvc interface {
	// Register creates an unverified user and sends the verification email.
	Register(ctx context.Context, req dto.RegisterUserRequest, host string) (*domain.User, error)

	// VerifyEmail consumes a verification token and signs the user in.
	VerifyEmail(ctx context.Context, verificationToken string) (*domain.LoginResult, error)

	// ResendVerification mints a new token for an unverified user and resends the email.
	ResendVerification(ctx context.Context, email string, host string) error
}

// SessionSvc covers login, logout and refresh.
type SessionSvc interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
	Logout(ctx context.Context, userID string) error
	RefreshTokens(ctx context.Context, refreshToken string) (domain.TokenPair, error)

	// LoginWithGoogle signs in, or creates, the user a validated Google identity belongs to.
	LoginWithGoogle(ctx context.Context, identity domain.GoogleIdentity) (*domain.LoginResult, error)
}

// PasswordResetSvc covers the forgot/reset password flow.
type PasswordResetSvc interface {
	RequestPasswordReset(ctx context.Context, email string, host string) error
	ValidateResetToken(ctx context.Context, token string) (bool, error)

	// ResetPassword reports false, without error, when the token is unknown or expired.
	ResetPassword(ctx context.Context, token, newPassword string) (bool, error)
}

// AuthSvcFacade combines the authentication state machine.
type AuthSvcFacade interface {
	RegistrationSvc
	SessionSvc
	PasswordResetSvc
}

// GoogleOAuthSvcFacade validates Google identities.
type GoogleOAuthSvcFacade interface {
	// VerifyIDToken validates an ID token issued to this application's client ID.
	VerifyIDToken(ctx context.Context, idToken string) (*domain.GoogleIdentity, error)

	// ExchangeCode trades an authorization code for tokens and validates the returned ID token.
	ExchangeCode(ctx context.Context, code string) (*domain.GoogleIdentity, error)
}
