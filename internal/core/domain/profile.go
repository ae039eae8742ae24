package domain

import "github.com/shopspring/decimal"

// Profile field names accepted by a profile update.
const (
	ProfileFieldNickname         = "nickname"
	ProfileFieldEmail            = "email"
	ProfileFieldTimezone         = "timezone"
	ProfileFieldGender           = "gender"
	ProfileFieldWeight           = "weight"
	ProfileFieldActiveTime       = "activeTime"
	ProfileFieldDailyWaterIntake = "dailyWaterIntake"
)

// UpdatableProfileFields is the allow-list for profile updates.
var UpdatableProfileFields = map[string]struct{}{
	ProfileFieldNickname:         {},
	ProfileFieldEmail:            {},
	ProfileFieldTimezone:         {},
	ProfileFieldGender:           {},
	ProfileFieldWeight:           {},
	ProfileFieldActiveTime:       {},
	ProfileFieldDailyWaterIntake: {},
}

// ProfileChanges holds only the fields whose values differ from the stored profile.
// When Email is set, VerificationToken carries the fresh token the user must confirm.
type ProfileChanges struct {
	Nickname         *string
	Email            *string
	Timezone         *string
	Gender           *Gender
	Weight           *decimal.Decimal
	ActiveTime       *int
	DailyWaterIntake *decimal.Decimal

	VerificationToken *string
}

// IsEmpty reports whether no profile field changed.
func (c ProfileChanges) IsEmpty() bool {
	return c.Nickname == nil && c.Email == nil && c.Timezone == nil && c.Gender == nil &&
		c.Weight == nil && c.ActiveTime == nil && c.DailyWaterIntake == nil
}

// Apply returns a copy of u with the changes applied.
func (c ProfileChanges) Apply(u User) User {
	if c.Nickname != nil {
		u.Nickname = *c.Nickname
	}
	if c.Email != nil {
		u.Email = *c.Email
		u.Verified = false
		u.VerificationToken = c.VerificationToken
	}
	if c.Timezone != nil {
		u.Timezone = *c.Timezone
	}
	if c.Gender != nil {
		u.Gender = c.Gender
	}
	if c.Weight != nil {
		u.Weight = c.Weight
	}
	if c.ActiveTime != nil {
		u.ActiveTime = c.ActiveTime
	}
	if c.DailyWaterIntake != nil {
		u.DailyWaterIntake = c.DailyWaterIntake
	}
	return u
}
