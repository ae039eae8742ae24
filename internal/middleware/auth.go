package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// Authenticator resolves a bearer token to the user whose current session it is.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
}

// AuthMiddleware creates a Gin middleware handler that requires a valid, current access token.
// Expired, malformed, foreign-signed and logged-out tokens are all answered with the same 401.
func AuthMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			abortUnauthorized(c, "Authorization header required")
			return
		}

		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(tokenString) == "" {
			logger.Warn("Authorization header format invalid")
			abortUnauthorized(c, "Authorization header format must be Bearer {token}")
			return
		}

		user, err := authenticator.Authenticate(c.Request.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			logger.Warn("Bearer authentication failed", slog.String("error", err.Error()))
			abortUnauthorized(c, "Not authorized")
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", user.UserID))
		ctx := context.WithValue(c.Request.Context(), userIDKey, user.UserID)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))
		c.Set(string(userIDKey), user.UserID)
		c.Set(string(userKey), user)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	appErr := apperrors.NewUnauthorizedError(msg)
	c.AbortWithStatusJSON(appErr.Code, appErr)
}
