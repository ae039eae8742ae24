package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret     = "a-very-secret-key-should-be-longer-and-random"
	defaultRefreshSecret = "default_insecure_refresh_secret_please_change_this_!@#$"
	minBcryptCost        = 10
)

// Config holds application configuration. It is built once in main and passed down explicitly.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret                  string
	JWTExpiryDuration          time.Duration
	JWTIssuer                  string
	RefreshTokenSecret         string
	RefreshTokenExpiryDuration time.Duration
	PasswordResetTTL           time.Duration
	BcryptCost                 int

	// Used to build links in outgoing email when no frontend is configured.
	PublicScheme    string
	FrontendBaseURL string

	SMTP SMTPConfig
	S3   S3Config

	AvatarSize     int
	AvatarMaxBytes int64

	SubscriptionUpdateKey string
	PosthogAPIKey         string
	CORSAllowedOrigins    []string
	AuthRateLimit         string

	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
}

// SMTPConfig configures the outgoing mail dispatcher. An empty Host disables delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// S3Config configures avatar object storage against any S3-compatible endpoint.
type S3Config struct {
	Bucket        string
	Region        string
	BaseEndpoint  string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "hydration-tracker")
	viper.SetDefault("REFRESH_TOKEN_SECRET", defaultRefreshSecret)
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("PASSWORD_RESET_TTL", "1h")
	viper.SetDefault("BCRYPT_COST", 12)
	viper.SetDefault("PUBLIC_SCHEME", "http")
	viper.SetDefault("FRONTEND_BASE_URL", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_FROM", "no-reply@hydration.local")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("AVATAR_SIZE", 250)
	viper.SetDefault("AVATAR_MAX_BYTES", 5<<20)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("AUTH_RATE_LIMIT", "5-M")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    viper.GetString("PGSQL_URL"),
		Port:           viper.GetString("PORT"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath: viper.GetString("MIGRATIONS_PATH"),

		JWTSecret:                  viper.GetString("JWT_SECRET"),
		JWTIssuer:                  viper.GetString("JWT_ISSUER"),
		RefreshTokenSecret:         viper.GetString("REFRESH_TOKEN_SECRET"),
		JWTExpiryDuration:          durationOr("JWT_EXPIRY_DURATION", time.Hour),
		RefreshTokenExpiryDuration: durationOr("REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour),
		PasswordResetTTL:           durationOr("PASSWORD_RESET_TTL", time.Hour),
		BcryptCost:                 viper.GetInt("BCRYPT_COST"),

		PublicScheme:    viper.GetString("PUBLIC_SCHEME"),
		FrontendBaseURL: strings.TrimRight(viper.GetString("FRONTEND_BASE_URL"), "/"),

		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			Username: viper.GetString("SMTP_USERNAME"),
			Password: viper.GetString("SMTP_PASSWORD"),
			From:     viper.GetString("SMTP_FROM"),
		},
		S3: S3Config{
			Bucket:        viper.GetString("S3_BUCKET"),
			Region:        viper.GetString("S3_REGION"),
			BaseEndpoint:  viper.GetString("S3_BASE_ENDPOINT"),
			AccessKey:     viper.GetString("S3_ACCESS_KEY"),
			SecretKey:     viper.GetString("S3_SECRET_KEY"),
			PublicBaseURL: strings.TrimRight(viper.GetString("S3_PUBLIC_BASE_URL"), "/"),
		},

		AvatarSize:     viper.GetInt("AVATAR_SIZE"),
		AvatarMaxBytes: viper.GetInt64("AVATAR_MAX_BYTES"),

		SubscriptionUpdateKey: viper.GetString("SUBSCRIPTION_UPDATE_KEY"),
		PosthogAPIKey:         viper.GetString("POSTHOG_API_KEY"),
		CORSAllowedOrigins:    splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		AuthRateLimit:         viper.GetString("AUTH_RATE_LIMIT"),

		GoogleClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  viper.GetString("GOOGLE_REDIRECT_URL"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == defaultJWTSecret || cfg.RefreshTokenSecret == defaultRefreshSecret {
		log.Println("Warning: JWT_SECRET or REFRESH_TOKEN_SECRET not set, using default insecure secrets. THIS IS NOT FOR PRODUCTION.")
	}
	if cfg.JWTSecret == cfg.RefreshTokenSecret {
		log.Println("Warning: JWT_SECRET and REFRESH_TOKEN_SECRET are equal; a leaked access key could forge refresh tokens.")
	}
	if cfg.BcryptCost < minBcryptCost {
		log.Printf("Warning: BCRYPT_COST %d is below %d. Using %d.\n", cfg.BcryptCost, minBcryptCost, minBcryptCost)
		cfg.BcryptCost = minBcryptCost
	}
	if cfg.SMTP.Host == "" {
		log.Println("Warning: SMTP_HOST not set. Outgoing email is disabled.")
	}
	if cfg.S3.Bucket == "" {
		log.Println("Warning: S3_BUCKET not set. Avatar uploads will fail.")
	}
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	return cfg, nil
}

func durationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
