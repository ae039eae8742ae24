package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
)

// WaterRecordReader defines owner-scoped read operations for water records.
type WaterRecordReader interface {
	// ListRecordsInRange returns the owner's records with timestamp in [from, to), oldest first.
	ListRecordsInRange(ctx context.Context, ownerID string, from, to time.Time) ([]domain.WaterRecord, error)

	// ListRecords returns a page of the owner's records, newest first, and the token of the next page.
	ListRecords(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.WaterRecord, *string, error)
}

// WaterRecordWriter defines owner-scoped write operations. Records owned by someone
// else are reported as apperrors.ErrNotFound.
type WaterRecordWriter interface {
	CreateRecord(ctx context.Context, record domain.WaterRecord) error
	UpdateRecordForOwner(ctx context.Context, recordID, ownerID string, patch domain.WaterRecordPatch, now time.Time) (*domain.WaterRecord, error)
	DeleteRecordForOwner(ctx context.Context, recordID, ownerID string) (*domain.WaterRecord, error)
}

// WaterRecordRepositoryFacade combines all water-record repository interfaces
type WaterRecordRepositoryFacade interface {
	WaterRecordReader
	WaterRecordWriter
}
