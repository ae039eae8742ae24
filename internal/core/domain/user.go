package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionTier is the plan a user is on.
type SubscriptionTier string

const (
	SubscriptionStarter  SubscriptionTier = "starter"
	SubscriptionPro      SubscriptionTier = "pro"
	SubscriptionBusiness SubscriptionTier = "business"
)

// IsValid reports whether t is one of the known tiers.
func (t SubscriptionTier) IsValid() bool {
	switch t {
	case SubscriptionStarter, SubscriptionPro, SubscriptionBusiness:
		return true
	}
	return false
}

// Gender is the optional self-reported gender used for intake recommendations.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// DefaultTimezone is used when a user never set one.
const DefaultTimezone = "UTC"

var (
	ErrVerificationStateInvalid = errors.New("exactly one of verified or verification token must be set")
	ErrResetTokenStateInvalid   = errors.New("reset token and its expiry must be set together")
)

// User is the credential and profile record of an account.
type User struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`

	// Hashes of the currently valid tokens; nil when logged out.
	AccessTokenHash  *string `json:"-"`
	RefreshTokenHash *string `json:"-"`

	Verified          bool    `json:"verified"`
	VerificationToken *string `json:"-"`

	ResetToken          *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	Nickname         string           `json:"nickname"`
	Gender           *Gender          `json:"gender,omitempty"`
	Weight           *decimal.Decimal `json:"weight,omitempty"`
	ActiveTime       *int             `json:"activeTime,omitempty"`
	DailyWaterIntake *decimal.Decimal `json:"dailyWaterIntake,omitempty"`
	Timezone         string           `json:"timezone"`
	AvatarURL        string           `json:"avatarURL"`
	AvatarRef        *string          `json:"-"`
	Subscription     SubscriptionTier `json:"subscription"`
	AuditFields
}

// CheckInvariants validates the pairing rules that every persisted user must satisfy.
func (u *User) CheckInvariants() error {
	hasVerificationToken := u.VerificationToken != nil && *u.VerificationToken != ""
	if u.Verified == hasVerificationToken {
		return ErrVerificationStateInvalid
	}
	if (u.ResetToken == nil) != (u.ResetTokenExpiresAt == nil) {
		return ErrResetTokenStateInvalid
	}
	return nil
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NicknameFromEmail returns the local part of an address.
func NicknameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
