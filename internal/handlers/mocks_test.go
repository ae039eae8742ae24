package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/hydration_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/hydration_tracker_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockTokenService struct{ mock.Mock }

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

func (m *MockTokenService) IssueTokenPair(ctx context.Context, userID string) (domain.TokenPair, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.TokenPair), args.Error(1)
}

func (m *MockTokenService) Rotate(ctx context.Context, userID, refresh string) (domain.TokenPair, error) {
	args := m.Called(ctx, userID, refresh)
	return args.Get(0).(domain.TokenPair), args.Error(1)
}

func (m *MockTokenService) Revoke(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockTokenService) VerifyAccessToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) VerifyRefreshToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockAuthService struct{ mock.Mock }

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

func loginResult(args mock.Arguments) (*domain.LoginResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResult), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterUserRequest, host string) (*domain.User, error) {
	args := m.Called(ctx, req, host)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) (*domain.LoginResult, error) {
	return loginResult(m.Called(ctx, token))
}

func (m *MockAuthService) ResendVerification(ctx context.Context, email, host string) error {
	return m.Called(ctx, email, host).Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	return loginResult(m.Called(ctx, email, password))
}

func (m *MockAuthService) Logout(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refresh string) (domain.TokenPair, error) {
	args := m.Called(ctx, refresh)
	return args.Get(0).(domain.TokenPair), args.Error(1)
}

func (m *MockAuthService) LoginWithGoogle(ctx context.Context, identity domain.GoogleIdentity) (*domain.LoginResult, error) {
	return loginResult(m.Called(ctx, identity))
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email, host string) error {
	return m.Called(ctx, email, host).Error(0)
}

func (m *MockAuthService) ValidateResetToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, pw string) (bool, error) {
	args := m.Called(ctx, token, pw)
	return args.Bool(0), args.Error(1)
}

type MockUserService struct{ mock.Mock }

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) GetCurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, patch map[string]json.RawMessage, host string) (*domain.User, error) {
	args := m.Called(ctx, userID, patch, host)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateSubscription(ctx context.Context, userID, tier string) (domain.SubscriptionTier, error) {
	args := m.Called(ctx, userID, tier)
	return args.Get(0).(domain.SubscriptionTier), args.Error(1)
}

func (m *MockUserService) UploadAvatar(ctx context.Context, userID string, upload *domain.AvatarUpload) (string, error) {
	args := m.Called(ctx, userID, upload)
	return args.String(0), args.Error(1)
}

type MockWaterService struct{ mock.Mock }

var _ portssvc.WaterSvcFacade = (*MockWaterService)(nil)

func record(args mock.Arguments) (*domain.WaterRecord, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaterRecord), args.Error(1)
}

func (m *MockWaterService) CreateRecord(ctx context.Context, ownerID string, volume decimal.Decimal, ts time.Time) (*domain.WaterRecord, error) {
	return record(m.Called(ctx, ownerID, volume, ts))
}

func (m *MockWaterService) UpdateRecord(ctx context.Context, recordID, ownerID string, patch domain.WaterRecordPatch) (*domain.WaterRecord, error) {
	return record(m.Called(ctx, recordID, ownerID, patch))
}

func (m *MockWaterService) DeleteRecord(ctx context.Context, recordID, ownerID string) (*domain.WaterRecord, error) {
	return record(m.Called(ctx, recordID, ownerID))
}

func (m *MockWaterService) ListRecords(ctx context.Context, ownerID string, limit int, next *string) ([]domain.WaterRecord, *string, error) {
	args := m.Called(ctx, ownerID, limit, next)
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	return args.Get(0).([]domain.WaterRecord), token, args.Error(2)
}

func summary(args mock.Arguments) (*domain.IntakeSummary, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntakeSummary), args.Error(1)
}

func (m *MockWaterService) DailyTotal(ctx context.Context, ownerID, date, tz string) (*domain.IntakeSummary, error) {
	return summary(m.Called(ctx, ownerID, date, tz))
}

func (m *MockWaterService) MonthlyTotal(ctx context.Context, ownerID string, year, month int, tz string) (*domain.IntakeSummary, error) {
	return summary(m.Called(ctx, ownerID, year, month, tz))
}

type MockGoogleOAuthService struct{ mock.Mock }

var _ portssvc.GoogleOAuthSvcFacade = (*MockGoogleOAuthService)(nil)

func (m *MockGoogleOAuthService) VerifyIDToken(ctx context.Context, idToken string) (*domain.GoogleIdentity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleIdentity), args.Error(1)
}

func (m *MockGoogleOAuthService) ExchangeCode(ctx context.Context, code string) (*domain.GoogleIdentity, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleIdentity), args.Error(1)
}
