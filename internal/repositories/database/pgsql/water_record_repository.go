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
	"github.com/SscSPs/hydration_tracker_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const waterRecordColumns = `id, owner_id, volume, consumed_at, created_at, updated_at`

type PgxWaterRecordRepository struct {
	BaseRepository
}

func newPgxWaterRecordRepository(pool PgxPool) *PgxWaterRecordRepository {
	return &PgxWaterRecordRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WaterRecordRepositoryFacade = (*PgxWaterRecordRepository)(nil)

func scanWaterRecord(row pgx.Row) (models.WaterRecord, error) {
	var m models.WaterRecord
	err := row.Scan(&m.RecordID, &m.OwnerID, &m.Volume, &m.ConsumedAt, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

func (r *PgxWaterRecordRepository) CreateRecord(ctx context.Context, record domain.WaterRecord) error {
	m := mapping.ToModelWaterRecord(record)
	query := `INSERT INTO water_records (` + waterRecordColumns + `) VALUES ($1, $2, $3, $4, $5, $6);`
	_, err := r.Pool.Exec(ctx, query, m.RecordID, m.OwnerID, m.Volume, m.ConsumedAt, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create water record: %w", err)
	}
	return nil
}

// UpdateRecordForOwner matches on both id and owner, so a foreign record looks exactly like a missing one.
func (r *PgxWaterRecordRepository) UpdateRecordForOwner(ctx context.Context, recordID, ownerID string, patch domain.WaterRecordPatch, now time.Time) (*domain.WaterRecord, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("empty water record update: %w", apperrors.ErrValidation)
	}
	args := []any{recordID, ownerID, now}
	sets := []string{"updated_at = $3"}
	if patch.Volume != nil {
		args = append(args, *patch.Volume)
		sets = append(sets, "volume = $"+strconv.Itoa(len(args)))
	}
	if patch.Timestamp != nil {
		args = append(args, patch.Timestamp.UTC())
		sets = append(sets, "consumed_at = $"+strconv.Itoa(len(args)))
	}

	query := `UPDATE water_records SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 AND owner_id = $2 RETURNING ` + waterRecordColumns + `;`
	m, err := scanWaterRecord(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update water record %s: %w", recordID, err)
	}
	d := mapping.ToDomainWaterRecord(m)
	return &d, nil
}

func (r *PgxWaterRecordRepository) DeleteRecordForOwner(ctx context.Context, recordID, ownerID string) (*domain.WaterRecord, error) {
	query := `DELETE FROM water_records WHERE id = $1 AND owner_id = $2 RETURNING ` + waterRecordColumns + `;`
	m, err := scanWaterRecord(r.Pool.QueryRow(ctx, query, recordID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete water record %s: %w", recordID, err)
	}
	d := mapping.ToDomainWaterRecord(m)
	return &d, nil
}

func (r *PgxWaterRecordRepository) ListRecordsInRange(ctx context.Context, ownerID string, from, to time.Time) ([]domain.WaterRecord, error) {
	query := `
		SELECT ` + waterRecordColumns + `
		FROM water_records
		WHERE owner_id = $1 AND consumed_at >= $2 AND consumed_at < $3
		ORDER BY consumed_at ASC, id ASC;`
	rows, err := r.Pool.Query(ctx, query, ownerID, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query water records in range: %w", err)
	}
	defer rows.Close()

	records := []models.WaterRecord{}
	for rows.Next() {
		m, err := scanWaterRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan water record row: %w", err)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating water record rows: %w", err)
	}
	return mapping.ToDomainWaterRecordSlice(records), nil
}

// ListRecords pages newest first. One extra row is fetched to learn whether another page exists.
func (r *PgxWaterRecordRepository) ListRecords(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.WaterRecord, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	args := []any{ownerID}
	query := `SELECT ` + waterRecordColumns + ` FROM water_records WHERE owner_id = $1`

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewBadRequestError("invalid nextToken")
		}
		// Tuple comparison keeps the ordering stable across equal timestamps.
		args = append(args, cursor.Timestamp, cursor.ID)
		query += ` AND (consumed_at, id) < ($2, $3)`
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY consumed_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query water records for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	records := make([]models.WaterRecord, 0, fetchLimit)
	for rows.Next() {
		m, err := scanWaterRecord(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan water record row: %w", err)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating water record rows: %w", err)
	}

	var nextTokenVal *string
	if len(records) > limit {
		last := records[limit-1]
		token := pagination.EncodeCursor(pagination.Cursor{Timestamp: last.ConsumedAt, ID: last.RecordID})
		nextTokenVal = &token
		records = records[:limit]
	}
	return mapping.ToDomainWaterRecordSlice(records), nextTokenVal, nil
}
