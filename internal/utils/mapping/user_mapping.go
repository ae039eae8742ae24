package mapping

import (
	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	"github.com/SscSPs/hydration_tracker_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:              d.UserID,
		Email:               d.Email,
		PasswordHash:        d.PasswordHash,
		AccessTokenHash:     d.AccessTokenHash,
		RefreshTokenHash:    d.RefreshTokenHash,
		Verified:            d.Verified,
		VerificationToken:   d.VerificationToken,
		ResetToken:          d.ResetToken,
		ResetTokenExpiresAt: d.ResetTokenExpiresAt,
		Nickname:            d.Nickname,
		Weight:              toNullDecimal(d.Weight),
		DailyWaterIntake:    toNullDecimal(d.DailyWaterIntake),
		Timezone:            d.Timezone,
		AvatarURL:           d.AvatarURL,
		AvatarRef:           d.AvatarRef,
		Subscription:        string(d.Subscription),
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
	if d.Gender != nil {
		g := string(*d.Gender)
		m.Gender = &g
	}
	if d.ActiveTime != nil {
		at := int32(*d.ActiveTime)
		m.ActiveTime = &at
	}
	return m
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:              m.UserID,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		AccessTokenHash:     m.AccessTokenHash,
		RefreshTokenHash:    m.RefreshTokenHash,
		Verified:            m.Verified,
		VerificationToken:   m.VerificationToken,
		ResetToken:          m.ResetToken,
		ResetTokenExpiresAt: m.ResetTokenExpiresAt,
		Nickname:            m.Nickname,
		Weight:              fromNullDecimal(m.Weight),
		DailyWaterIntake:    fromNullDecimal(m.DailyWaterIntake),
		Timezone:            m.Timezone,
		AvatarURL:           m.AvatarURL,
		AvatarRef:           m.AvatarRef,
		Subscription:        domain.SubscriptionTier(m.Subscription),
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
	if m.Gender != nil {
		g := domain.Gender(*m.Gender)
		d.Gender = &g
	}
	if m.ActiveTime != nil {
		at := int(*m.ActiveTime)
		d.ActiveTime = &at
	}
	if d.Timezone == "" {
		d.Timezone = domain.DefaultTimezone
	}
	return d
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	v := n.Decimal
	return &v
}
