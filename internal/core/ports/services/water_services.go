package services

import (
	"context"
	"time"

	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WaterRecordSvc is the owner-scoped record store.
type WaterRecordSvc interface {
	CreateRecord(ctx context.Context, ownerID string, volume decimal.Decimal, timestamp time.Time) (*domain.WaterRecord, error)
	UpdateRecord(ctx context.Context, recordID, ownerID string, patch domain.WaterRecordPatch) (*domain.WaterRecord, error)
	DeleteRecord(ctx context.Context, recordID, ownerID string) (*domain.WaterRecord, error)
	ListRecords(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.WaterRecord, *string, error)
}

// AggregationSvc totals records per calendar bucket of an explicit IANA zone.
type AggregationSvc interface {
	DailyTotal(ctx context.Context, ownerID string, date string, timezone string) (*domain.IntakeSummary, error)
	MonthlyTotal(ctx context.Context, ownerID string, year, month int, timezone string) (*domain.IntakeSummary, error)
}

// WaterSvcFacade combines record CRUD and aggregation.
type WaterSvcFacade interface {
	WaterRecordSvc
	AggregationSvc
}
