package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	"github.com/SscSPs/hydration_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse documents the error body: {"code": 400, "message": "..."}.
type ErrorResponse = apperrors.AppError

// respondError writes err as its AppError status and message. Unknown errors become an opaque 500.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Unhandled error", slog.String("error", err.Error()))
		appErr = apperrors.NewInternalServerError("Internal server error")
	}
	c.AbortWithStatusJSON(appErr.Code, appErr)
}

// respondBindError answers a request that failed binding or validation.
func respondBindError(c *gin.Context, err error) {
	respondError(c, apperrors.NewBadRequestError("Invalid request: "+err.Error()))
}

// currentUserID reads the authenticated user set by AuthMiddleware.
func currentUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok || userID == "" {
		respondError(c, apperrors.NewUnauthorizedError("Not authorized"))
		return "", false
	}
	return userID, true
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
