package handlers

import (
	"net/http"
	"net/url"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/hydration_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/hydration_tracker_app/internal/dto"
	"github.com/SscSPs/hydration_tracker_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration, sessions and password recovery.
type authHandler struct {
	authService portssvc.AuthSvcFacade
	frontendURL string
}

func newAuthHandler(as portssvc.AuthSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{authService: as, frontendURL: cfg.FrontendBaseURL}
}

func loginResponse(res *domain.LoginResult) dto.LoginResponse {
	return dto.LoginResponse{
		Token:        res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		User:         dto.ToUserResponse(&res.User),
	}
}

// Register godoc
// @Summary Register new user
// @Description Creates an unverified account and emails a verification link.
// @Tags users
// @Accept json
// @Produce json
// @Param register body dto.RegisterUserRequest true "Registration"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email in use"
// @Failure 500 {object} ErrorResponse
// @Router /users/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := h.authService.Register(c.Request.Context(), req, c.Request.Host)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// Login godoc
// @Summary User login
// @Description Authenticates a verified user and returns a fresh token pair.
// @Tags users
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Email not verified"
// @Router /users/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse(res))
}

// Logout godoc
// @Summary Log out
// @Description Invalidates the current token pair.
// @Tags users
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Router /users/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	noContent(c)
}

// RefreshTokens godoc
// @Summary Rotate tokens
// @Description Exchanges the current refresh token for a new pair. A refresh token works once.
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenPairResponse
// @Failure 401 {object} ErrorResponse
// @Router /users/refresh [post]
func (h *authHandler) refreshTokens(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	pair, err := h.authService.RefreshTokens(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenPairResponse{Token: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// VerifyEmail godoc
// @Summary Verify email
// @Description Consumes a verification token and signs the user in. Redirects to the frontend when one is configured.
// @Tags users
// @Produce json
// @Param verificationToken path string true "Verification token"
// @Success 200 {object} dto.LoginResponse
// @Success 302
// @Failure 404 {object} ErrorResponse
// @Router /users/verify/{verificationToken} [get]
func (h *authHandler) verifyEmail(c *gin.Context) {
	res, err := h.authService.VerifyEmail(c.Request.Context(), c.Param("verificationToken"))
	if err != nil {
		respondError(c, err)
		return
	}
	if h.frontendURL != "" {
		q := url.Values{}
		q.Set("token", res.Tokens.AccessToken)
		q.Set("refreshToken", res.Tokens.RefreshToken)
		c.Redirect(http.StatusFound, h.frontendURL+"/verify?"+q.Encode())
		return
	}
	c.JSON(http.StatusOK, loginResponse(res))
}

// ResendVerification godoc
// @Summary Resend verification email
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.EmailRequest true "Email"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} ErrorResponse "Unknown or already verified"
// @Router /users/verify/resend [post]
func (h *authHandler) resendVerification(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.authService.ResendVerification(c.Request.Context(), req.Email, c.Request.Host); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Verification email sent"})
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.EmailRequest true "Email"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/password/forgot [post]
func (h *authHandler) forgotPassword(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email, c.Request.Host); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset email sent"})
}

// ValidateResetToken godoc
// @Summary Check a password reset token
// @Tags users
// @Produce json
// @Param token path string true "Reset token"
// @Success 200 {object} dto.ResetTokenValidityResponse
// @Failure 400 {object} ErrorResponse
// @Router /users/password/reset/{token} [get]
func (h *authHandler) validateResetToken(c *gin.Context) {
	valid, err := h.authService.ValidateResetToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !valid {
		respondError(c, apperrors.NewBadRequestError("Invalid or expired token"))
		return
	}
	c.JSON(http.StatusOK, dto.ResetTokenValidityResponse{Valid: true})
}

// ResetPassword godoc
// @Summary Reset password
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} dto.MessageResponse
// @Success 302
// @Failure 400 {object} ErrorResponse
// @Router /users/password/reset [post]
func (h *authHandler) resetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	ok, err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		respondError(c, apperrors.NewBadRequestError("Invalid or expired token"))
		return
	}
	if h.frontendURL != "" {
		c.Redirect(http.StatusFound, h.frontendURL+"/password-reset-success")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password has been reset"})
}
