package handlers

import (
	"context"
	"net/http"

	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/hydration_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/hydration_tracker_app/internal/dto"
	"github.com/SscSPs/hydration_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// googleOAuthHandler handles Google sign-in. The Google service validates the identity,
// the auth service signs the matching user in.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	authService        portssvc.AuthSvcFacade
}

func newGoogleOAuthHandler(g portssvc.GoogleOAuthSvcFacade, as portssvc.AuthSvcFacade) *googleOAuthHandler {
	return &googleOAuthHandler{googleOAuthService: g, authService: as}
}

// LoginWithIDToken godoc
// @Summary Sign in with a Google ID token
// @Tags oauth
// @Accept json
// @Produce json
// @Param body body dto.GoogleIDTokenRequest true "ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /users/google/id-token [post]
func (h *googleOAuthHandler) loginWithIDToken(c *gin.Context) {
	var req dto.GoogleIDTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	h.signIn(c, func(ctx context.Context) (*domain.GoogleIdentity, error) {
		return h.googleOAuthService.VerifyIDToken(ctx, req.IDToken)
	})
}

// ExchangeCodeGoogle handles the POST request from the frontend containing the authorization code from Google.
// @Summary Exchange authorization code for a token pair
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "Invalid authorization code"
// @Failure 504 {object} ErrorResponse "Google unreachable"
// @Router /users/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	h.signIn(c, func(ctx context.Context) (*domain.GoogleIdentity, error) {
		return h.googleOAuthService.ExchangeCode(ctx, req.Code)
	})
}

func (h *googleOAuthHandler) signIn(c *gin.Context, identify func(context.Context) (*domain.GoogleIdentity, error)) {
	ctx := c.Request.Context()
	identity, err := identify(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := h.authService.LoginWithGoogle(ctx, *identity)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.GetLoggerFromCtx(ctx).InfoContext(ctx, "Google sign-in completed")
	c.JSON(http.StatusOK, loginResponse(res))
}
