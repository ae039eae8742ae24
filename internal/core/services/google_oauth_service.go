package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/hydration_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/hydration_tracker_app/internal/platform/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

type idTokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type codeExchanger interface {
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// googleOAuthService implements the GoogleOAuthSvcFacade.
type googleOAuthService struct {
	BaseService
	cfg       *config.Config
	exchanger codeExchanger
	validate  idTokenValidator
}

// NewGoogleOAuthService creates a new instance of googleOAuthService.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		cfg: cfg,
		exchanger: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		validate: idtoken.Validate,
	}
}

var _ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)

func (s *googleOAuthService) VerifyIDToken(ctx context.Context, idToken string) (*domain.GoogleIdentity, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, s.internalError(ctx, errors.New("google client ID is not configured"), "Google sign-in is not configured")
	}

	payload, err := s.validate(ctx, idToken, s.cfg.GoogleClientID)
	if err != nil {
		s.GetLogger(ctx).Warn("Google ID token validation failed", slog.String("error", err.Error()))
		return nil, apperrors.NewUnauthorizedError("Invalid Google ID token")
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || payload.Subject == "" {
		return nil, apperrors.NewUnauthorizedError("Essential user information missing from Google token")
	}

	return &domain.GoogleIdentity{
		Subject:       payload.Subject,
		Email:         email,
		EmailVerified: emailVerified,
		Name:          name,
		Picture:       picture,
	}, nil
}

func (s *googleOAuthService) ExchangeCode(ctx context.Context, code string) (*domain.GoogleIdentity, error) {
	token, err := s.exchanger.Exchange(ctx, code)
	if err != nil {
		s.GetLogger(ctx).Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "invalid_grant") || strings.Contains(msg, "bad request") {
			return nil, apperrors.NewBadRequestError("Invalid or expired authorization code")
		}
		return nil, apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service")
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return nil, s.internalError(ctx, errors.New("id_token missing from token response"), "Failed to retrieve ID token from Google")
	}
	return s.VerifyIDToken(ctx, idToken)
}
