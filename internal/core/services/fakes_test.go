package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hydration_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/hydration_tracker_app/internal/utils/pagination"
	"github.com/stretchr/testify/mock"
)

// memUserRepo mirrors the conditional statements of the Postgres repository.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

var _ portsrepo.UserRepositoryFacade = (*memUserRepo)(nil)

func clone(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *memUserRepo) byEmail(email string) *domain.User {
	email = domain.NormalizeEmail(email)
	for _, u := range r.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (r *memUserRepo) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		return clone(u), nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *memUserRepo) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u := r.byEmail(email); u != nil {
		return clone(u), nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *memUserRepo) FindUserByResetToken(_ context.Context, token string, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token && u.ResetTokenExpiresAt.After(now) {
			return clone(u), nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memUserRepo) CountUsers(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *memUserRepo) CreateUser(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byEmail(user.Email) != nil {
		return apperrors.ErrDuplicate
	}
	r.users[user.UserID] = clone(&user)
	return nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, userID string, changes domain.ProfileChanges, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if changes.Email != nil {
		if other := r.byEmail(*changes.Email); other != nil && other.UserID != userID {
			return nil, apperrors.ErrDuplicate
		}
	}
	next := changes.Apply(*u)
	next.LastUpdatedAt = now
	r.users[userID] = &next
	return clone(&next), nil
}

func (r *memUserRepo) UpdateSubscription(_ context.Context, userID string, tier domain.SubscriptionTier, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Subscription = tier
	u.LastUpdatedAt = now
	return nil
}

func (r *memUserRepo) UpdateAvatar(_ context.Context, userID string, url string, ref *string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.AvatarURL = url
	u.AvatarRef = ref
	u.LastUpdatedAt = now
	return nil
}

func (r *memUserRepo) VerifyByToken(_ context.Context, token string, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if !u.Verified && u.VerificationToken != nil && *u.VerificationToken == token {
			u.Verified = true
			u.VerificationToken = nil
			u.LastUpdatedAt = now
			return clone(u), nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memUserRepo) VerifyByID(_ context.Context, userID string, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	u.Verified = true
	u.VerificationToken = nil
	u.LastUpdatedAt = now
	return clone(u), nil
}

func (r *memUserRepo) ReplaceVerificationToken(_ context.Context, email string, token string, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.byEmail(email)
	if u == nil || u.Verified {
		return nil, apperrors.ErrNotFound
	}
	u.VerificationToken = &token
	u.LastUpdatedAt = now
	return clone(u), nil
}

func (r *memUserRepo) StoreTokens(_ context.Context, userID string, accessHash, refreshHash string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.AccessTokenHash = &accessHash
	u.RefreshTokenHash = &refreshHash
	u.LastUpdatedAt = now
	return nil
}

func (r *memUserRepo) RotateTokens(_ context.Context, userID string, expectedRefreshHash string, accessHash, refreshHash string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok || u.RefreshTokenHash == nil || *u.RefreshTokenHash != expectedRefreshHash {
		return apperrors.ErrNotFound
	}
	u.AccessTokenHash = &accessHash
	u.RefreshTokenHash = &refreshHash
	u.LastUpdatedAt = now
	return nil
}

func (r *memUserRepo) ClearTokens(_ context.Context, userID string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.AccessTokenHash = nil
		u.RefreshTokenHash = nil
		u.LastUpdatedAt = now
	}
	return nil
}

func (r *memUserRepo) SetResetToken(_ context.Context, email string, token string, expiresAt time.Time, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.byEmail(email)
	if u == nil {
		return nil, apperrors.ErrNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiresAt = &expiresAt
	u.LastUpdatedAt = now
	return clone(u), nil
}

func (r *memUserRepo) ResetPassword(_ context.Context, token string, passwordHash string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token && u.ResetTokenExpiresAt.After(now) {
			u.PasswordHash = passwordHash
			u.ResetToken = nil
			u.ResetTokenExpiresAt = nil
			u.LastUpdatedAt = now
			return true, nil
		}
	}
	return false, nil
}

// memWaterRepo is an owner-scoped in-memory record store.
type memWaterRepo struct {
	mu      sync.Mutex
	records map[string]domain.WaterRecord
}

func newMemWaterRepo() *memWaterRepo {
	return &memWaterRepo{records: map[string]domain.WaterRecord{}}
}

var _ portsrepo.WaterRecordRepositoryFacade = (*memWaterRepo)(nil)

func (r *memWaterRepo) ListRecordsInRange(_ context.Context, ownerID string, from, to time.Time) ([]domain.WaterRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.WaterRecord
	for _, rec := range r.records {
		if rec.OwnerID == ownerID && !rec.Timestamp.Before(from) && rec.Timestamp.Before(to) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (r *memWaterRepo) ListRecords(_ context.Context, ownerID string, limit int, nextToken *string) ([]domain.WaterRecord, *string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cursor *pagination.Cursor
	if nextToken != nil {
		c, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewBadRequestError("invalid nextToken")
		}
		cursor = c
	}
	var all []domain.WaterRecord
	for _, rec := range r.records {
		if rec.OwnerID != ownerID {
			continue
		}
		if cursor != nil && !(rec.Timestamp.Before(cursor.Timestamp) ||
			(rec.Timestamp.Equal(cursor.Timestamp) && rec.RecordID < cursor.ID)) {
			continue
		}
		all = append(all, rec)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Timestamp.Equal(all[j].Timestamp) {
			return all[i].RecordID > all[j].RecordID
		}
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	if len(all) <= limit {
		return all, nil, nil
	}
	page := all[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeCursor(pagination.Cursor{Timestamp: last.Timestamp, ID: last.RecordID})
	return page, &token, nil
}

func (r *memWaterRepo) CreateRecord(_ context.Context, record domain.WaterRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.RecordID] = record
	return nil
}

func (r *memWaterRepo) UpdateRecordForOwner(_ context.Context, recordID, ownerID string, patch domain.WaterRecordPatch, now time.Time) (*domain.WaterRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[recordID]
	if !ok || rec.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	if patch.Volume != nil {
		rec.Volume = *patch.Volume
	}
	if patch.Timestamp != nil {
		rec.Timestamp = patch.Timestamp.UTC()
	}
	rec.LastUpdatedAt = now
	r.records[recordID] = rec
	return &rec, nil
}

func (r *memWaterRepo) DeleteRecordForOwner(_ context.Context, recordID, ownerID string) (*domain.WaterRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[recordID]
	if !ok || rec.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	delete(r.records, recordID)
	return &rec, nil
}

// MockMailer records sent emails.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, filePath string) (domain.StoredObject, error) {
	args := m.Called(ctx, filePath)
	return args.Get(0).(domain.StoredObject), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

type MockImageProcessor struct {
	mock.Mock
}

func (m *MockImageProcessor) PrepareAvatar(ctx context.Context, srcPath string) (string, error) {
	args := m.Called(ctx, srcPath)
	return args.String(0), args.Error(1)
}
