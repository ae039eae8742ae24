package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their normalized email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByResetToken retrieves the user holding token, provided it has not expired at now.
	FindUserByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)

	// CountUsers returns the number of registered users.
	CountUsers(ctx context.Context) (int64, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// CreateUser persists a new user. A taken email yields apperrors.ErrDuplicate.
	CreateUser(ctx context.Context, user domain.User) error

	// UpdateProfile applies only the changed fields. An email change resets verification in the same statement.
	UpdateProfile(ctx context.Context, userID string, changes domain.ProfileChanges, now time.Time) (*domain.User, error)

	// UpdateSubscription sets the subscription tier.
	UpdateSubscription(ctx context.Context, userID string, tier domain.SubscriptionTier, now time.Time) error

	// UpdateAvatar replaces the avatar URL and storage reference.
	UpdateAvatar(ctx context.Context, userID string, url string, ref *string, now time.Time) error
}

// UserVerificationManager holds the conditional transitions of the verification state.
type UserVerificationManager interface {
	// VerifyByToken marks the holder of an unconsumed verification token verified and clears the token.
	VerifyByToken(ctx context.Context, token string, now time.Time) (*domain.User, error)

	// VerifyByID marks a user verified regardless of token, used when an identity provider vouches for the email.
	VerifyByID(ctx context.Context, userID string, now time.Time) (*domain.User, error)

	// ReplaceVerificationToken sets a fresh token on an unverified user found by email.
	ReplaceVerificationToken(ctx context.Context, email string, token string, now time.Time) (*domain.User, error)
}

// UserSessionManager holds the stored token hashes that define the active session.
type UserSessionManager interface {
	// StoreTokens overwrites both stored hashes, invalidating any earlier session.
	StoreTokens(ctx context.Context, userID string, accessHash, refreshHash string, now time.Time) error

	// RotateTokens replaces both hashes only while the stored refresh hash still equals expectedRefreshHash.
	// A mismatch yields apperrors.ErrNotFound.
	RotateTokens(ctx context.Context, userID string, expectedRefreshHash string, accessHash, refreshHash string, now time.Time) error

	// ClearTokens removes both hashes. Clearing an already cleared session is not an error.
	ClearTokens(ctx context.Context, userID string, now time.Time) error
}

// UserPasswordResetManager holds the reset-token pair transitions.
type UserPasswordResetManager interface {
	// SetResetToken stores the token and its expiry together for the user with email.
	SetResetToken(ctx context.Context, email string, token string, expiresAt time.Time, now time.Time) (*domain.User, error)

	// ResetPassword swaps the password hash and clears the reset pair if token is unexpired at now.
	// It reports false when no user matched.
	ResetPassword(ctx context.Context, token string, passwordHash string, now time.Time) (bool, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserVerificationManager
	UserSessionManager
	UserPasswordResetManager
}
