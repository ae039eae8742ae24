package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hydration_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hydration_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/hydration_tracker_app/internal/platform/config"
	"github.com/SscSPs/hydration_tracker_app/internal/utils"
	"github.com/SscSPs/hydration_tracker_app/internal/utils/hydration"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

const maxNicknameLength = 64

var (
	nicknamePolicy = bluemonday.StrictPolicy()
	fieldValidator = validator.New()
)

// sanitizeNickname strips markup and surrounding space.
func sanitizeNickname(raw string) string {
	return strings.TrimSpace(nicknamePolicy.Sanitize(raw))
}

type userService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
	storage  portssvc.ObjectStorage
	images   portssvc.ImageProcessor
	notify   notifier
}

// NewUserService creates the profile service.
func NewUserService(
	cfg *config.Config,
	userRepo portsrepo.UserRepositoryFacade,
	mailer portssvc.Mailer,
	storage portssvc.ObjectStorage,
	images portssvc.ImageProcessor,
) portssvc.UserSvcFacade {
	return &userService{
		cfg:      cfg,
		userRepo: userRepo,
		storage:  storage,
		images:   images,
		notify:   notifier{cfg: cfg, mailer: mailer},
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetCurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, s.internalError(ctx, err, "Failed to load user")
	}
	return user, nil
}

func (s *userService) CountUsers(ctx context.Context) (int64, error) {
	n, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return 0, s.internalError(ctx, err, "Failed to count users")
	}
	return n, nil
}

// UpdateProfile rejects fields outside the allow-list, then keeps only values that differ from the
// stored profile. An email change always requires re-verification of the new address.
func (s *userService) UpdateProfile(ctx context.Context, userID string, patch map[string]json.RawMessage, host string) (*domain.User, error) {
	if len(patch) == 0 {
		return nil, apperrors.NewBadRequestError("No changes")
	}
	if disallowed := disallowedFields(patch); len(disallowed) > 0 {
		return nil, apperrors.NewBadRequestError("Fields not allowed to be updated: " + strings.Join(disallowed, ", "))
	}

	current, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	changes, err := profileDelta(current, patch)
	if err != nil {
		return nil, err
	}
	if changes.IsEmpty() {
		return nil, apperrors.NewBadRequestError("No changes")
	}

	if changes.Email != nil {
		if other, err := s.userRepo.FindUserByEmail(ctx, *changes.Email); err == nil && other.UserID != userID {
			return nil, apperrors.NewConflictError("Email in use")
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.internalError(ctx, err, "Failed to look up email")
		}
		token, err := utils.GenerateSecureRandomString(tokenBytes)
		if err != nil {
			return nil, s.internalError(ctx, err, "Failed to generate verification token")
		}
		changes.VerificationToken = &token
	}

	next := changes.Apply(*current)
	if err := next.CheckInvariants(); err != nil {
		return nil, s.internalError(ctx, err, "Profile update violates invariants", slog.String("user_id", userID))
	}

	updated, err := s.userRepo.UpdateProfile(ctx, userID, changes, s.Now())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			return nil, apperrors.NewConflictError("Email in use")
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, s.internalError(ctx, err, "Failed to update profile", slog.String("user_id", userID))
	}

	if changes.Email != nil {
		if err := s.notify.sendVerification(ctx, updated.Email, host, *changes.VerificationToken); err != nil {
			return nil, s.internalError(ctx, err, "Failed to send verification email", slog.String("user_id", userID))
		}
		s.LogInfo(ctx, "Email changed, verification required", slog.String("user_id", userID))
	}
	return updated, nil
}

func disallowedFields(patch map[string]json.RawMessage) []string {
	var out []string
	for field := range patch {
		if _, ok := domain.UpdatableProfileFields[field]; !ok {
			out = append(out, field)
		}
	}
	sort.Strings(out)
	return out
}

// profileDelta decodes and validates each supplied field and keeps the ones that change the profile.
func profileDelta(current *domain.User, patch map[string]json.RawMessage) (domain.ProfileChanges, error) {
	var c domain.ProfileChanges

	for field, raw := range patch {
		if isJSONNull(raw) {
			return c, apperrors.NewBadRequestError(fmt.Sprintf("%s must not be null", field))
		}
		switch field {
		case domain.ProfileFieldNickname:
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return c, invalidField(field)
			}
			v = sanitizeNickname(v)
			if v == "" || utf8.RuneCountInString(v) > maxNicknameLength {
				return c, invalidField(field)
			}
			if v != current.Nickname {
				c.Nickname = &v
			}
		case domain.ProfileFieldEmail:
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return c, invalidField(field)
			}
			v = domain.NormalizeEmail(v)
			if fieldValidator.Var(v, "required,email") != nil {
				return c, invalidField(field)
			}
			if v != domain.NormalizeEmail(current.Email) {
				c.Email = &v
			}
		case domain.ProfileFieldTimezone:
			var v string
			if err := json.Unmarshal(raw, &v); err != nil || !hydration.IsValidTimezone(v) {
				return c, invalidField(field)
			}
			if v != current.Timezone {
				c.Timezone = &v
			}
		case domain.ProfileFieldGender:
			var v domain.Gender
			if err := json.Unmarshal(raw, &v); err != nil || !v.IsValid() {
				return c, invalidField(field)
			}
			if current.Gender == nil || *current.Gender != v {
				c.Gender = &v
			}
		case domain.ProfileFieldWeight:
			v, err := nonNegativeDecimal(raw)
			if err != nil {
				return c, invalidField(field)
			}
			if current.Weight == nil || !current.Weight.Equal(v) {
				c.Weight = &v
			}
		case domain.ProfileFieldActiveTime:
			var v int
			if err := json.Unmarshal(raw, &v); err != nil || v < 0 {
				return c, invalidField(field)
			}
			if current.ActiveTime == nil || *current.ActiveTime != v {
				c.ActiveTime = &v
			}
		case domain.ProfileFieldDailyWaterIntake:
			v, err := nonNegativeDecimal(raw)
			if err != nil {
				return c, invalidField(field)
			}
			if current.DailyWaterIntake == nil || !current.DailyWaterIntake.Equal(v) {
				c.DailyWaterIntake = &v
			}
		}
	}
	return c, nil
}

func invalidField(field string) error {
	return apperrors.NewBadRequestError("Invalid value for " + field)
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func nonNegativeDecimal(raw json.RawMessage) (decimal.Decimal, error) {
	var v decimal.Decimal
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, err
	}
	if v.IsNegative() {
		return v, errors.New("negative value")
	}
	return v, nil
}

func (s *userService) UpdateSubscription(ctx context.Context, userID string, tier string) (domain.SubscriptionTier, error) {
	t := domain.SubscriptionTier(strings.ToLower(strings.TrimSpace(tier)))
	if !t.IsValid() {
		return "", apperrors.NewBadRequestError("Invalid subscription")
	}
	if err := s.userRepo.UpdateSubscription(ctx, userID, t, s.Now()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NewNotFoundError("User not found")
		}
		return "", s.internalError(ctx, err, "Failed to update subscription", slog.String("user_id", userID))
	}
	return t, nil
}

// UploadAvatar resizes the upload, stores it, points the user at it and then drops the old object.
// The spooled upload and the resized copy are removed on every path.
func (s *userService) UploadAvatar(ctx context.Context, userID string, upload *domain.AvatarUpload) (string, error) {
	if upload == nil || upload.TempPath == "" {
		return "", apperrors.NewBadRequestError("No file uploaded")
	}
	defer s.removeTemp(ctx, upload.TempPath)

	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return "", err
	}

	processed, err := s.images.PrepareAvatar(ctx, upload.TempPath)
	if err != nil {
		return "", s.internalError(ctx, err, "Failed to process avatar", slog.String("user_id", userID))
	}
	defer s.removeTemp(ctx, processed)

	stored, err := s.storage.Upload(ctx, processed)
	if err != nil {
		return "", s.internalError(ctx, err, "Failed to store avatar", slog.String("user_id", userID))
	}

	if err := s.userRepo.UpdateAvatar(ctx, userID, stored.URL, &stored.Ref, s.Now()); err != nil {
		if delErr := s.storage.Delete(ctx, stored.Ref); delErr != nil {
			s.LogError(ctx, delErr, "Failed to delete orphaned avatar", slog.String("ref", stored.Ref))
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NewNotFoundError("User not found")
		}
		return "", s.internalError(ctx, err, "Failed to update avatar", slog.String("user_id", userID))
	}

	if user.AvatarRef != nil && *user.AvatarRef != "" && *user.AvatarRef != stored.Ref {
		if err := s.storage.Delete(ctx, *user.AvatarRef); err != nil {
			return "", s.internalError(ctx, err, "Failed to delete previous avatar", slog.String("user_id", userID))
		}
	}
	return stored.URL, nil
}

func (s *userService) removeTemp(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.LogError(ctx, err, "Failed to remove temporary file", slog.String("path", path))
	}
}
