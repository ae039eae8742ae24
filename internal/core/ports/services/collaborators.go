package services

import (
	"context"

	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
)

// Mailer dispatches an HTML email. Errors are returned to the caller, never swallowed.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ObjectStorage stores files and returns their public URL and a reference for later deletion.
type ObjectStorage interface {
	Upload(ctx context.Context, filePath string) (domain.StoredObject, error)
	Delete(ctx context.Context, ref string) error
}

// ImageProcessor prepares an uploaded image for storage. The returned path is a new
// temporary file the caller must remove.
type ImageProcessor interface {
	PrepareAvatar(ctx context.Context, srcPath string) (string, error)
}

// PasswordHasher is a salted, cost-tunable one-way hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hash string) bool
}
