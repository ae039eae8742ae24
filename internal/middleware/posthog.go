package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/hydration_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// untrackedPaths are never reported to PostHog.
var untrackedPaths = map[string]bool{
	"/health": true,
}

// PosthogMiddleware reports successful authenticated requests as PostHog events named after the route,
// e.g. "/api/water/daily/:date" becomes "api_water_daily_:date".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if user, ok := GetUserFromContext(c); ok {
			props["subscription"] = string(user.Subscription)
			props["timezone"] = user.Timezone
		}
		// Route params are ids and dates, never secrets; token routes are unauthenticated and not tracked.
		for _, p := range c.Params {
			props["param_"+p.Key] = p.Value
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}
