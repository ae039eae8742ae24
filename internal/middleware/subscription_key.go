package middleware

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// SubscriptionKeyHeader carries the shared secret required to change a subscription.
const SubscriptionKeyHeader = "x-custom-key"

// subscriptionBodyLimit caps how much of the body is read when looking for the key field.
const subscriptionBodyLimit = 64 << 10

// SubscriptionKey requires the shared key in the x-custom-key header or in a "key" body field.
// An empty key disables the check.
func SubscriptionKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}

		presented := c.GetHeader(SubscriptionKeyHeader)
		if presented == "" && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, subscriptionBodyLimit)
			body, err := io.ReadAll(c.Request.Body)
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				appErr := apperrors.NewAppError(http.StatusRequestEntityTooLarge, "Request body too large", apperrors.ErrValidation)
				c.AbortWithStatusJSON(appErr.Code, appErr)
				return
			}
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewReader(body))
				var payload struct {
					Key string `json:"key"`
				}
				if json.Unmarshal(body, &payload) == nil {
					presented = payload.Key
				}
			}
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
			GetLoggerFromCtx(c.Request.Context()).Warn("Subscription key rejected")
			appErr := apperrors.NewForbiddenError("Access denied")
			c.AbortWithStatusJSON(appErr.Code, appErr)
			return
		}
		c.Next()
	}
}
