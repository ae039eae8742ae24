package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the row shape of the users table.
// Token columns hold SHA-256 hashes of the issued strings, never the tokens themselves.
type User struct {
	UserID       string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`

	AccessTokenHash  *string `db:"access_token_hash"`
	RefreshTokenHash *string `db:"refresh_token_hash"`

	Verified          bool    `db:"verified"`
	VerificationToken *string `db:"verification_token"`

	ResetToken          *string    `db:"reset_token"`
	ResetTokenExpiresAt *time.Time `db:"reset_token_expires_at"`

	Nickname         string              `db:"nickname"`
	Gender           *string             `db:"gender"`
	Weight           decimal.NullDecimal `db:"weight"`
	ActiveTime       *int32              `db:"active_time"`
	DailyWaterIntake decimal.NullDecimal `db:"daily_water_intake"`
	Timezone         string              `db:"timezone"`
	AvatarURL        string              `db:"avatar_url"`
	AvatarRef        *string             `db:"avatar_ref"`
	Subscription     string              `db:"subscription"`
	AuditFields
}
