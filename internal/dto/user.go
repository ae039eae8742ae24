package dto

import (
	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UserResponse is the sanitized profile. It never carries hashes or tokens.
type UserResponse struct {
	UserID           string           `json:"userID"`
	Email            string           `json:"email"`
	Verified         bool             `json:"verified"`
	Nickname         string           `json:"nickname"`
	Gender           *string          `json:"gender,omitempty"`
	Weight           *decimal.Decimal `json:"weight,omitempty"`
	ActiveTime       *int             `json:"activeTime,omitempty"`
	DailyWaterIntake *decimal.Decimal `json:"dailyWaterIntake,omitempty"`
	Timezone         string           `json:"timezone"`
	AvatarURL        string           `json:"avatarURL"`
	Subscription     string           `json:"subscription"`
}

func ToUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		UserID:           u.UserID,
		Email:            u.Email,
		Verified:         u.Verified,
		Nickname:         u.Nickname,
		Weight:           u.Weight,
		ActiveTime:       u.ActiveTime,
		DailyWaterIntake: u.DailyWaterIntake,
		Timezone:         u.Timezone,
		AvatarURL:        u.AvatarURL,
		Subscription:     string(u.Subscription),
	}
	if u.Gender != nil {
		g := string(*u.Gender)
		resp.Gender = &g
	}
	return resp
}

// UpdateProfileResponse is returned by PATCH /api/users/update.
type UpdateProfileResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// UpdateSubscriptionRequest is the body of PATCH /api/users/subscription.
// Key is accepted as an alternative to the x-custom-key header.
type UpdateSubscriptionRequest struct {
	Subscription string `json:"subscription" binding:"required,subscription"`
	Key          string `json:"key"`
}

type SubscriptionResponse struct {
	Subscription string `json:"subscription"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatarURL"`
}

type CountUsersResponse struct {
	TotalUsers int64 `json:"totalUsers"`
}
