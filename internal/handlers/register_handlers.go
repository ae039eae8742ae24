package handlers

import (
	"net/http"

	"github.com/SscSPs/hydration_tracker_app/cmd/docs"
	portssvc "github.com/SscSPs/hydration_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/hydration_tracker_app/internal/middleware"
	"github.com/SscSPs/hydration_tracker_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultAuthRateLimit = "5-M"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	rate := cfg.AuthRateLimit
	if rate == "" {
		rate = defaultAuthRateLimit
	}
	authLimiter, err := middleware.NewRateLimiter(rate)
	if err != nil {
		return err
	}

	api := r.Group("/api")
	requireAuth := middleware.AuthMiddleware(services.Token)

	registerUserRoutes(api, cfg, services, middleware.RateLimit(authLimiter), requireAuth)
	registerWaterRoutes(api, services.Water, requireAuth)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// registerUserRoutes mounts account, session and profile routes under /api/users.
func registerUserRoutes(
	api *gin.RouterGroup,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limited gin.HandlerFunc,
	requireAuth gin.HandlerFunc,
) {
	auth := newAuthHandler(services.Auth, cfg)
	user := newUserHandler(services.User, cfg.AvatarMaxBytes)
	google := newGoogleOAuthHandler(services.GoogleOAuth, services.Auth)

	users := api.Group("/users")
	{
		users.POST("/register", limited, auth.register)
		users.POST("/login", limited, auth.login)
		users.POST("/refresh", auth.refreshTokens)
		users.GET("/verify/:verificationToken", auth.verifyEmail)
		users.POST("/verify/resend", limited, auth.resendVerification)
		users.POST("/password/forgot", limited, auth.forgotPassword)
		users.GET("/password/reset/:token", auth.validateResetToken)
		users.POST("/password/reset", limited, auth.resetPassword)
		users.GET("/count", user.countUsers)

		users.POST("/google/id-token", limited, google.loginWithIDToken)
		users.POST("/google/exchange-code", limited, google.exchangeCode)

		users.POST("/logout", requireAuth, auth.logout)
		users.GET("/current", requireAuth, user.getCurrentUser)
		users.PATCH("/update", requireAuth, user.updateProfile)
		users.PATCH("/subscription", requireAuth, middleware.SubscriptionKey(cfg.SubscriptionUpdateKey), user.updateSubscription)
		users.PATCH("/avatars", requireAuth, user.uploadAvatar)
	}
}

// registerWaterRoutes mounts the owner-scoped record and aggregation routes under /api/water.
func registerWaterRoutes(api *gin.RouterGroup, waterService portssvc.WaterSvcFacade, requireAuth gin.HandlerFunc) {
	h := newWaterHandler(waterService)

	water := api.Group("/water", requireAuth)
	{
		water.POST("", h.createRecord)
		water.GET("", h.listRecords)
		water.PUT("/:id", h.updateRecord)
		water.DELETE("/:id", h.deleteRecord)
		water.GET("/daily/:date", h.dailyTotal)
		water.GET("/monthly/:year/:month", h.monthlyTotal)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
