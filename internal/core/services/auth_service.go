package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hydration_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hydration_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/hydration_tracker_app/internal/dto"
	"github.com/SscSPs/hydration_tracker_app/internal/platform/config"
	"github.com/SscSPs/hydration_tracker_app/internal/utils"
	"github.com/google/uuid"
)

const (
	wrongCredentials = "Email or password is wrong"
	tokenBytes       = 32
	avatarSizeParam  = 250
)

// authService drives register -> verify -> login -> refresh -> logout and the password reset flow.
type authService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
	tokens   portssvc.TokenSvcFacade
	hasher   portssvc.PasswordHasher
	notify   notifier
}

// NewAuthService creates the authentication flow controller.
func NewAuthService(
	cfg *config.Config,
	userRepo portsrepo.UserRepositoryFacade,
	tokens portssvc.TokenSvcFacade,
	hasher portssvc.PasswordHasher,
	mailer portssvc.Mailer,
) portssvc.AuthSvcFacade {
	return &authService{
		cfg:      cfg,
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
		notify:   notifier{cfg: cfg, mailer: mailer},
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Register(ctx context.Context, req dto.RegisterUserRequest, host string) (*domain.User, error) {
	email := domain.NormalizeEmail(req.Email)

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflictError("Email in use")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, s.internalError(ctx, err, "Failed to look up email")
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, s.internalError(ctx, err, "Failed to hash password")
	}
	verificationToken, err := utils.GenerateSecureRandomString(tokenBytes)
	if err != nil {
		return nil, s.internalError(ctx, err, "Failed to generate verification token")
	}

	nickname := domain.NicknameFromEmail(email)
	if req.Nickname != nil {
		if clean := sanitizeNickname(*req.Nickname); clean != "" {
			nickname = clean
		}
	}
	timezone := domain.DefaultTimezone
	if req.Timezone != nil && *req.Timezone != "" {
		timezone = *req.Timezone
	}

	now := s.Now()
	user := domain.User{
		UserID:            uuid.NewString(),
		Email:             email,
		PasswordHash:      passwordHash,
		VerificationToken: &verificationToken,
		Nickname:          nickname,
		Timezone:          timezone,
		AvatarURL:         utils.GravatarURL(email, s.avatarSize()),
		Subscription:      domain.SubscriptionStarter,
		AuditFields:       domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := user.CheckInvariants(); err != nil {
		return nil, s.internalError(ctx, err, "New user violates invariants")
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Email in use")
		}
		return nil, s.internalError(ctx, err, "Failed to create user")
	}
	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))

	if err := s.notify.sendVerification(ctx, email, host, verificationToken); err != nil {
		return nil, s.internalError(ctx, err, "Failed to send verification email", slog.String("user_id", user.UserID))
	}
	return &user, nil
}

func (s *authService) VerifyEmail(ctx context.Context, verificationToken string) (*domain.LoginResult, error) {
	if verificationToken == "" {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	user, err := s.userRepo.VerifyByToken(ctx, verificationToken, s.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, s.internalError(ctx, err, "Failed to verify email")
	}
	s.LogInfo(ctx, "Email verified", slog.String("user_id", user.UserID))
	return s.signIn(ctx, user)
}

func (s *authService) ResendVerification(ctx context.Context, email string, host string) error {
	token, err := utils.GenerateSecureRandomString(tokenBytes)
	if err != nil {
		return s.internalError(ctx, err, "Failed to generate verification token")
	}
	user, err := s.userRepo.ReplaceVerificationToken(ctx, email, token, s.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("User not found or already verified")
		}
		return s.internalError(ctx, err, "Failed to replace verification token")
	}
	if err := s.notify.sendVerification(ctx, user.Email, host, token); err != nil {
		return s.internalError(ctx, err, "Failed to send verification email", slog.String("user_id", user.UserID))
	}
	return nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError(wrongCredentials)
		}
		return nil, s.internalError(ctx, err, "Failed to look up user")
	}
	if !s.hasher.Compare(password, user.PasswordHash) {
		s.GetLogger(ctx).Warn("Password mismatch", slog.String("user_id", user.UserID))
		return nil, apperrors.NewUnauthorizedError(wrongCredentials)
	}
	if !user.Verified {
		return nil, apperrors.NewForbiddenError("Email not verified")
	}
	return s.signIn(ctx, user)
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	return s.tokens.Revoke(ctx, userID)
}

// RefreshTokens checks signature and expiry before touching the store, then rotates against the stored token.
func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	userID, err := s.tokens.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return s.tokens.Rotate(ctx, userID, refreshToken)
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string, host string) error {
	token, err := utils.GenerateSecureRandomString(tokenBytes)
	if err != nil {
		return s.internalError(ctx, err, "Failed to generate reset token")
	}
	now := s.Now()
	user, err := s.userRepo.SetResetToken(ctx, email, token, now.Add(s.cfg.PasswordResetTTL), now)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("User not found")
		}
		return s.internalError(ctx, err, "Failed to store reset token")
	}
	if err := s.notify.sendPasswordReset(ctx, user.Email, host, token); err != nil {
		return s.internalError(ctx, err, "Failed to send password reset email", slog.String("user_id", user.UserID))
	}
	s.LogInfo(ctx, "Password reset requested", slog.String("user_id", user.UserID))
	return nil
}

func (s *authService) ValidateResetToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	_, err := s.userRepo.FindUserByResetToken(ctx, token, s.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, s.internalError(ctx, err, "Failed to look up reset token")
	}
	return true, nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) (bool, error) {
	if token == "" {
		return false, nil
	}
	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return false, s.internalError(ctx, err, "Failed to hash password")
	}
	ok, err := s.userRepo.ResetPassword(ctx, token, passwordHash, s.Now())
	if err != nil {
		return false, s.internalError(ctx, err, "Failed to reset password")
	}
	return ok, nil
}

// LoginWithGoogle signs in the owner of a validated Google identity. Unknown emails get a new,
// already verified account whose password is an unguessable random value.
func (s *authService) LoginWithGoogle(ctx context.Context, identity domain.GoogleIdentity) (*domain.LoginResult, error) {
	email := domain.NormalizeEmail(identity.Email)
	if email == "" {
		return nil, apperrors.NewUnauthorizedError("Google account has no email")
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		if !user.Verified {
			if !identity.EmailVerified {
				return nil, apperrors.NewForbiddenError("Email not verified")
			}
			if user, err = s.userRepo.VerifyByID(ctx, user.UserID, s.Now()); err != nil {
				return nil, s.internalError(ctx, err, "Failed to verify Google user")
			}
		}
	case errors.Is(err, apperrors.ErrNotFound):
		if user, err = s.createGoogleUser(ctx, email, identity); err != nil {
			return nil, err
		}
	default:
		return nil, s.internalError(ctx, err, "Failed to look up user")
	}

	s.LogInfo(ctx, "User signed in with Google", slog.String("user_id", user.UserID))
	return s.signIn(ctx, user)
}

func (s *authService) createGoogleUser(ctx context.Context, email string, identity domain.GoogleIdentity) (*domain.User, error) {
	randomPassword, err := utils.GenerateSecureRandomString(tokenBytes)
	if err != nil {
		return nil, s.internalError(ctx, err, "Failed to generate password")
	}
	passwordHash, err := s.hasher.Hash(randomPassword)
	if err != nil {
		return nil, s.internalError(ctx, err, "Failed to hash password")
	}

	nickname := sanitizeNickname(identity.Name)
	if nickname == "" {
		nickname = domain.NicknameFromEmail(email)
	}
	avatar := strings.TrimSpace(identity.Picture)
	if avatar == "" {
		avatar = utils.GravatarURL(email, s.avatarSize())
	}

	now := s.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Verified:     true,
		Nickname:     nickname,
		Timezone:     domain.DefaultTimezone,
		AvatarURL:    avatar,
		Subscription: domain.SubscriptionStarter,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := user.CheckInvariants(); err != nil {
		return nil, s.internalError(ctx, err, "New user violates invariants")
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Email in use")
		}
		return nil, s.internalError(ctx, err, "Failed to create user")
	}
	return &user, nil
}

func (s *authService) signIn(ctx context.Context, user *domain.User) (*domain.LoginResult, error) {
	pair, err := s.tokens.IssueTokenPair(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResult{Tokens: pair, User: *user}, nil
}

func (s *authService) avatarSize() int {
	if s.cfg.AvatarSize > 0 {
		return s.cfg.AvatarSize
	}
	return avatarSizeParam
}
