package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hydration_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hydration_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/hydration_tracker_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type waterService struct {
	BaseService
	waterRepo portsrepo.WaterRecordRepositoryFacade
}

// NewWaterService creates the record store and aggregation service.
func NewWaterService(waterRepo portsrepo.WaterRecordRepositoryFacade) portssvc.WaterSvcFacade {
	return &waterService{waterRepo: waterRepo}
}

var _ portssvc.WaterSvcFacade = (*waterService)(nil)

func (s *waterService) CreateRecord(ctx context.Context, ownerID string, volume decimal.Decimal, timestamp time.Time) (*domain.WaterRecord, error) {
	if volume.IsNegative() {
		return nil, apperrors.NewBadRequestError("Volume must not be negative")
	}
	now := s.Now()
	record := domain.WaterRecord{
		RecordID:    uuid.NewString(),
		OwnerID:     ownerID,
		Volume:      volume,
		Timestamp:   timestamp.UTC(),
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.waterRepo.CreateRecord(ctx, record); err != nil {
		return nil, s.internalError(ctx, err, "Failed to create water record")
	}
	s.LogDebug(ctx, "Water record created", slog.String("record_id", record.RecordID))
	return &record, nil
}

func (s *waterService) UpdateRecord(ctx context.Context, recordID, ownerID string, patch domain.WaterRecordPatch) (*domain.WaterRecord, error) {
	if patch.IsEmpty() {
		return nil, apperrors.NewBadRequestError("No changes")
	}
	if patch.Volume != nil && patch.Volume.IsNegative() {
		return nil, apperrors.NewBadRequestError("Volume must not be negative")
	}
	record, err := s.waterRepo.UpdateRecordForOwner(ctx, recordID, ownerID, patch, s.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Not found")
		}
		return nil, s.internalError(ctx, err, "Failed to update water record", slog.String("record_id", recordID))
	}
	return record, nil
}

func (s *waterService) DeleteRecord(ctx context.Context, recordID, ownerID string) (*domain.WaterRecord, error) {
	record, err := s.waterRepo.DeleteRecordForOwner(ctx, recordID, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Not found")
		}
		return nil, s.internalError(ctx, err, "Failed to delete water record", slog.String("record_id", recordID))
	}
	return record, nil
}

func (s *waterService) ListRecords(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.WaterRecord, *string, error) {
	limit = pagination.ClampLimit(limit, defaultPageSize, maxPageSize)
	records, next, err := s.waterRepo.ListRecords(ctx, ownerID, limit, nextToken)
	if err != nil {
		return nil, nil, s.internalError(ctx, err, "Failed to list water records")
	}
	return records, next, nil
}
