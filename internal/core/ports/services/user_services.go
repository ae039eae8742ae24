package services

import (
	"context"
	"encoding/json"

	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	GetCurrentUser(ctx context.Context, userID string) (*domain.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// UserWriterSvc defines profile write operations
type UserWriterSvc interface {
	// UpdateProfile applies the allow-listed fields of patch that differ from the stored profile.
	UpdateProfile(ctx context.Context, userID string, patch map[string]json.RawMessage, host string) (*domain.User, error)

	UpdateSubscription(ctx context.Context, userID string, tier string) (domain.SubscriptionTier, error)

	// UploadAvatar stores the upload as the user's avatar. The temporary file is always removed.
	UploadAvatar(ctx context.Context, userID string, upload *domain.AvatarUpload) (string, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
