package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	"github.com/SscSPs/hydration_tracker_app/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

type stubExchanger struct {
	token *oauth2.Token
	err   error
}

func (s stubExchanger) Exchange(context.Context, string, ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	return s.token, s.err
}

func newTestGoogleService(validate idTokenValidator, ex codeExchanger) *googleOAuthService {
	return &googleOAuthService{
		cfg:       &config.Config{GoogleClientID: "client-id"},
		exchanger: ex,
		validate:  validate,
	}
}

func validPayload(_ context.Context, token, audience string) (*idtoken.Payload, error) {
	if token != "good" || audience != "client-id" {
		return nil, errors.New("idtoken: invalid")
	}
	return &idtoken.Payload{
		Subject: "sub-1",
		Claims: map[string]interface{}{
			"email":          "g@example.com",
			"email_verified": true,
			"name":           "Gee",
			"picture":        "https://lh3.example/p.png",
		},
	}, nil
}

func TestGoogleOAuth_VerifyIDToken(t *testing.T) {
	svc := newTestGoogleService(validPayload, nil)

	identity, err := svc.VerifyIDToken(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", identity.Subject)
	assert.Equal(t, "g@example.com", identity.Email)
	assert.True(t, identity.EmailVerified)
	assert.Equal(t, "Gee", identity.Name)

	_, err = svc.VerifyIDToken(context.Background(), "forged")
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusCode(err))
}

func TestGoogleOAuth_VerifyIDToken_MissingEmail(t *testing.T) {
	svc := newTestGoogleService(func(context.Context, string, string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Subject: "sub-1", Claims: map[string]interface{}{}}, nil
	}, nil)

	_, err := svc.VerifyIDToken(context.Background(), "any")
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusCode(err))
}

func TestGoogleOAuth_ExchangeCode(t *testing.T) {
	token := (&oauth2.Token{AccessToken: "at"}).WithExtra(map[string]interface{}{"id_token": "good"})
	svc := newTestGoogleService(validPayload, stubExchanger{token: token})

	identity, err := svc.ExchangeCode(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, "g@example.com", identity.Email)
}

func TestGoogleOAuth_ExchangeCode_Failures(t *testing.T) {
	tests := []struct {
		name string
		ex   stubExchanger
		code int
	}{
		{"invalid grant", stubExchanger{err: errors.New(`oauth2: "invalid_grant"`)}, http.StatusBadRequest},
		{"upstream down", stubExchanger{err: errors.New("dial tcp: timeout")}, http.StatusGatewayTimeout},
		{"no id token", stubExchanger{token: &oauth2.Token{AccessToken: "at"}}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestGoogleService(validPayload, tt.ex)
			_, err := svc.ExchangeCode(context.Background(), "code")
			assert.Equal(t, tt.code, apperrors.StatusCode(err))
		})
	}
}
