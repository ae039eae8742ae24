package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func stringPtr(s string) *string {
	return &s
}

func TestUser_CheckInvariants(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	tests := []struct {
		name    string
		user    domain.User
		wantErr error
	}{
		{
			name: "unverified with verification token",
			user: domain.User{VerificationToken: stringPtr("abc")},
		},
		{
			name: "verified without verification token",
			user: domain.User{Verified: true},
		},
		{
			name:    "unverified without verification token",
			user:    domain.User{},
			wantErr: domain.ErrVerificationStateInvalid,
		},
		{
			name:    "verified while still holding a token",
			user:    domain.User{Verified: true, VerificationToken: stringPtr("abc")},
			wantErr: domain.ErrVerificationStateInvalid,
		},
		{
			name:    "empty verification token counts as absent",
			user:    domain.User{VerificationToken: stringPtr("")},
			wantErr: domain.ErrVerificationStateInvalid,
		},
		{
			name: "reset token with expiry",
			user: domain.User{Verified: true, ResetToken: stringPtr("r"), ResetTokenExpiresAt: &expiry},
		},
		{
			name:    "reset token without expiry",
			user:    domain.User{Verified: true, ResetToken: stringPtr("r")},
			wantErr: domain.ErrResetTokenStateInvalid,
		},
		{
			name:    "expiry without reset token",
			user:    domain.User{Verified: true, ResetTokenExpiresAt: &expiry},
			wantErr: domain.ErrResetTokenStateInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.CheckInvariants()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSubscriptionTier_IsValid(t *testing.T) {
	assert.True(t, domain.SubscriptionStarter.IsValid())
	assert.True(t, domain.SubscriptionPro.IsValid())
	assert.True(t, domain.SubscriptionBusiness.IsValid())
	assert.False(t, domain.SubscriptionTier("enterprise").IsValid())
	assert.False(t, domain.SubscriptionTier("").IsValid())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", domain.NormalizeEmail("  Jane@Example.COM "))
	assert.Equal(t, "jane", domain.NicknameFromEmail("jane@example.com"))
	assert.Equal(t, "noat", domain.NicknameFromEmail("noat"))
}

func TestProfileChanges_ApplyEmailResetsVerification(t *testing.T) {
	weight := decimal.NewFromInt(70)
	user := domain.User{Email: "old@example.com", Verified: true, Timezone: "UTC"}
	changes := domain.ProfileChanges{
		Email:             stringPtr("new@example.com"),
		VerificationToken: stringPtr("fresh"),
		Weight:            &weight,
	}

	assert.False(t, changes.IsEmpty())
	updated := changes.Apply(user)

	assert.Equal(t, "new@example.com", updated.Email)
	assert.False(t, updated.Verified)
	assert.Equal(t, "fresh", *updated.VerificationToken)
	assert.True(t, weight.Equal(*updated.Weight))
	assert.NoError(t, updated.CheckInvariants())
	// the input value is left untouched
	assert.True(t, user.Verified)
}

func TestProfileChanges_IsEmpty(t *testing.T) {
	assert.True(t, domain.ProfileChanges{}.IsEmpty())
	assert.True(t, domain.ProfileChanges{VerificationToken: stringPtr("x")}.IsEmpty())
	assert.False(t, domain.ProfileChanges{Nickname: stringPtr("n")}.IsEmpty())
}
