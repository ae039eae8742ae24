package dto

// RegisterUserRequest is the body of POST /api/users/register.
type RegisterUserRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Nickname *string `json:"nickname" binding:"omitempty,max=64"`
	Timezone *string `json:"timezone" binding:"omitempty,timezone"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// EmailRequest carries a bare address, used by resend-verification and forgot-password.
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RefreshTokenRequest is the body of POST /api/users/refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ResetPasswordRequest is the body of POST /api/users/password/reset.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// GoogleIDTokenRequest is the body of POST /api/users/google/id-token.
type GoogleIDTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// ExchangeCodeRequest defines the expected JSON body for the /google/exchange-code endpoint.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// TokenPairResponse is returned by refresh and by verify-email when no frontend is configured.
type TokenPairResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ResetTokenValidityResponse answers GET /api/users/password/reset/:token.
type ResetTokenValidityResponse struct {
	Valid bool `json:"valid"`
}
