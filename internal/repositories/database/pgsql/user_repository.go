package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hydration_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/hydration_tracker_app/internal/models"
	"github.com/SscSPs/hydration_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, password_hash, access_token_hash, refresh_token_hash, verified, verification_token,
	reset_token, reset_token_expires_at, nickname, gender, weight, active_time, daily_water_intake,
	timezone, avatar_url, avatar_ref, subscription, created_at, updated_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool PgxPool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.PasswordHash,
		&m.AccessTokenHash,
		&m.RefreshTokenHash,
		&m.Verified,
		&m.VerificationToken,
		&m.ResetToken,
		&m.ResetTokenExpiresAt,
		&m.Nickname,
		&m.Gender,
		&m.Weight,
		&m.ActiveTime,
		&m.DailyWaterIntake,
		&m.Timezone,
		&m.AvatarURL,
		&m.AvatarRef,
		&m.Subscription,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

// queryUser runs a single-row query and maps pgx.ErrNoRows to apperrors.ErrNotFound.
func (r *PgxUserRepository) queryUser(ctx context.Context, op string, query string, args ...any) (*domain.User, error) {
	user, err := scanUser(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (r *PgxUserRepository) CreateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Email,
		m.PasswordHash,
		m.AccessTokenHash,
		m.RefreshTokenHash,
		m.Verified,
		m.VerificationToken,
		m.ResetToken,
		m.ResetTokenExpiresAt,
		m.Nickname,
		m.Gender,
		m.Weight,
		m.ActiveTime,
		m.DailyWaterIntake,
		m.Timezone,
		m.AvatarURL,
		m.AvatarRef,
		m.Subscription,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %q already registered: %w", user.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1;`
	return r.queryUser(ctx, "failed to find user by ID", query, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	return r.queryUser(ctx, "failed to find user by email", query, domain.NormalizeEmail(email))
}

func (r *PgxUserRepository) FindUserByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token = $1 AND reset_token_expires_at > $2;`
	return r.queryUser(ctx, "failed to find user by reset token", query, token, now)
}

func (r *PgxUserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// UpdateProfile builds the SET list from the non-nil changes only.
func (r *PgxUserRepository) UpdateProfile(ctx context.Context, userID string, changes domain.ProfileChanges, now time.Time) (*domain.User, error) {
	if changes.IsEmpty() {
		return nil, fmt.Errorf("empty profile update: %w", apperrors.ErrValidation)
	}

	var sets []string
	args := []any{userID, now}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if changes.Nickname != nil {
		set("nickname", *changes.Nickname)
	}
	if changes.Email != nil {
		if changes.VerificationToken == nil || *changes.VerificationToken == "" {
			return nil, fmt.Errorf("email change without verification token: %w", apperrors.ErrValidation)
		}
		set("email", domain.NormalizeEmail(*changes.Email))
		sets = append(sets, "verified = false")
		set("verification_token", *changes.VerificationToken)
	}
	if changes.Timezone != nil {
		set("timezone", *changes.Timezone)
	}
	if changes.Gender != nil {
		set("gender", string(*changes.Gender))
	}
	if changes.Weight != nil {
		set("weight", *changes.Weight)
	}
	if changes.ActiveTime != nil {
		set("active_time", int32(*changes.ActiveTime))
	}
	if changes.DailyWaterIntake != nil {
		set("daily_water_intake", *changes.DailyWaterIntake)
	}

	query := `UPDATE users SET ` + strings.Join(sets, ", ") + `, updated_at = $2 WHERE id = $1 RETURNING ` + userColumns + `;`
	return r.queryUser(ctx, "failed to update profile", query, args...)
}

func (r *PgxUserRepository) UpdateSubscription(ctx context.Context, userID string, tier domain.SubscriptionTier, now time.Time) error {
	query := `UPDATE users SET subscription = $2, updated_at = $3 WHERE id = $1;`
	return r.execOne(ctx, "failed to update subscription", query, userID, string(tier), now)
}

func (r *PgxUserRepository) UpdateAvatar(ctx context.Context, userID string, url string, ref *string, now time.Time) error {
	query := `UPDATE users SET avatar_url = $2, avatar_ref = $3, updated_at = $4 WHERE id = $1;`
	return r.execOne(ctx, "failed to update avatar", query, userID, url, ref, now)
}

// VerifyByToken consumes the token in the same statement that sets verified, so a token verifies at most once.
func (r *PgxUserRepository) VerifyByToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	query := `
		UPDATE users SET verified = true, verification_token = NULL, updated_at = $2
		WHERE verification_token = $1 AND NOT verified
		RETURNING ` + userColumns + `;`
	return r.queryUser(ctx, "failed to verify user", query, token, now)
}

func (r *PgxUserRepository) VerifyByID(ctx context.Context, userID string, now time.Time) (*domain.User, error) {
	query := `
		UPDATE users SET verified = true, verification_token = NULL, updated_at = $2
		WHERE id = $1
		RETURNING ` + userColumns + `;`
	return r.queryUser(ctx, "failed to verify user", query, userID, now)
}

func (r *PgxUserRepository) ReplaceVerificationToken(ctx context.Context, email string, token string, now time.Time) (*domain.User, error) {
	query := `
		UPDATE users SET verification_token = $2, updated_at = $3
		WHERE email = $1 AND NOT verified
		RETURNING ` + userColumns + `;`
	return r.queryUser(ctx, "failed to replace verification token", query, domain.NormalizeEmail(email), token, now)
}

func (r *PgxUserRepository) StoreTokens(ctx context.Context, userID string, accessHash, refreshHash string, now time.Time) error {
	query := `UPDATE users SET access_token_hash = $2, refresh_token_hash = $3, updated_at = $4 WHERE id = $1;`
	return r.execOne(ctx, "failed to store tokens", query, userID, accessHash, refreshHash, now)
}

// RotateTokens compares and swaps the refresh hash in one statement; a concurrent rotation wins at most once.
func (r *PgxUserRepository) RotateTokens(ctx context.Context, userID string, expectedRefreshHash string, accessHash, refreshHash string, now time.Time) error {
	query := `
		UPDATE users SET access_token_hash = $3, refresh_token_hash = $4, updated_at = $5
		WHERE id = $1 AND refresh_token_hash = $2;`
	return r.execOne(ctx, "failed to rotate tokens", query, userID, expectedRefreshHash, accessHash, refreshHash, now)
}

func (r *PgxUserRepository) ClearTokens(ctx context.Context, userID string, now time.Time) error {
	query := `
		UPDATE users SET access_token_hash = NULL, refresh_token_hash = NULL, updated_at = $2
		WHERE id = $1 AND (access_token_hash IS NOT NULL OR refresh_token_hash IS NOT NULL);`
	if _, err := r.Pool.Exec(ctx, query, userID, now); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) SetResetToken(ctx context.Context, email string, token string, expiresAt time.Time, now time.Time) (*domain.User, error) {
	query := `
		UPDATE users SET reset_token = $2, reset_token_expires_at = $3, updated_at = $4
		WHERE email = $1
		RETURNING ` + userColumns + `;`
	return r.queryUser(ctx, "failed to set reset token", query, domain.NormalizeEmail(email), token, expiresAt, now)
}

func (r *PgxUserRepository) ResetPassword(ctx context.Context, token string, passwordHash string, now time.Time) (bool, error) {
	query := `
		UPDATE users SET password_hash = $2, reset_token = NULL, reset_token_expires_at = NULL, updated_at = $3
		WHERE reset_token = $1 AND reset_token_expires_at > $3;`
	cmdTag, err := r.Pool.Exec(ctx, query, token, passwordHash, now)
	if err != nil {
		return false, fmt.Errorf("failed to reset password: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// execOne runs an update that must touch exactly one row.
func (r *PgxUserRepository) execOne(ctx context.Context, op string, query string, args ...any) error {
	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	return nil
}
