package domain

import "time"

// TokenPair is an access/refresh token pair issued together.
type TokenPair struct {
	AccessToken           string    `json:"token"`
	AccessTokenExpiresAt  time.Time `json:"-"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"-"`
}

// LoginResult is returned by every flow that signs a user in.
type LoginResult struct {
	Tokens TokenPair
	User   User
}

// AuthProvider identifies how an identity was asserted.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// GoogleIdentity is the subset of a validated Google ID token the app relies on.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}
