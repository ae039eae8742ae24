package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hydration_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hydration_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/hydration_tracker_app/internal/platform/config"
	"github.com/SscSPs/hydration_tracker_app/internal/utils"
)

const notAuthorized = "Not authorized"

// tokenService signs access and refresh tokens with separate secrets and keeps
// the hashes of the current pair on the user record.
type tokenService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) signPair(userID string) (domain.TokenPair, error) {
	access, accessExp, err := utils.GenerateJWT(userID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, refreshExp, err := utils.GenerateJWT(userID, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{
		AccessToken:           access,
		AccessTokenExpiresAt:  accessExp,
		RefreshToken:          refresh,
		RefreshTokenExpiresAt: refreshExp,
	}, nil
}

func (s *tokenService) IssueTokenPair(ctx context.Context, userID string) (domain.TokenPair, error) {
	pair, err := s.signPair(userID)
	if err != nil {
		return domain.TokenPair{}, s.internalError(ctx, err, "Failed to sign tokens", slog.String("user_id", userID))
	}
	err = s.userRepo.StoreTokens(ctx, userID, utils.HashToken(pair.AccessToken), utils.HashToken(pair.RefreshToken), s.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.TokenPair{}, apperrors.NewNotFoundError("User not found")
		}
		return domain.TokenPair{}, s.internalError(ctx, err, "Failed to store tokens", slog.String("user_id", userID))
	}
	s.LogDebug(ctx, "Issued token pair", slog.String("user_id", userID))
	return pair, nil
}

// Rotate succeeds only if presentedRefreshToken is the stored one; the compare and the swap are one statement.
func (s *tokenService) Rotate(ctx context.Context, userID string, presentedRefreshToken string) (domain.TokenPair, error) {
	pair, err := s.signPair(userID)
	if err != nil {
		return domain.TokenPair{}, s.internalError(ctx, err, "Failed to sign tokens", slog.String("user_id", userID))
	}
	err = s.userRepo.RotateTokens(ctx, userID,
		utils.HashToken(presentedRefreshToken),
		utils.HashToken(pair.AccessToken),
		utils.HashToken(pair.RefreshToken),
		s.Now(),
	)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.GetLogger(ctx).Warn("Refresh token does not match the stored one", slog.String("user_id", userID))
			return domain.TokenPair{}, apperrors.NewUnauthorizedError("Invalid refresh token")
		}
		return domain.TokenPair{}, s.internalError(ctx, err, "Failed to rotate tokens", slog.String("user_id", userID))
	}
	return pair, nil
}

func (s *tokenService) Revoke(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearTokens(ctx, userID, s.Now()); err != nil {
		return s.internalError(ctx, err, "Failed to clear tokens", slog.String("user_id", userID))
	}
	return nil
}

func (s *tokenService) VerifyAccessToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret, s.cfg.JWTIssuer)
	if err != nil {
		s.LogDebug(ctx, "Access token rejected", slog.String("reason", err.Error()))
		return "", apperrors.NewUnauthorizedError(notAuthorized)
	}
	return claims.Subject, nil
}

func (s *tokenService) VerifyRefreshToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.RefreshTokenSecret, s.cfg.JWTIssuer)
	if err != nil {
		s.LogDebug(ctx, "Refresh token rejected", slog.String("reason", err.Error()))
		return "", apperrors.NewUnauthorizedError("Invalid refresh token")
	}
	return claims.Subject, nil
}

func (s *tokenService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	userID, err := s.VerifyAccessToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError(notAuthorized)
		}
		return nil, s.internalError(ctx, err, "Failed to load user for authentication", slog.String("user_id", userID))
	}
	if user.AccessTokenHash == nil || !utils.CompareTokenHash(accessToken, *user.AccessTokenHash) {
		return nil, apperrors.NewUnauthorizedError(notAuthorized)
	}
	return user, nil
}
