package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WaterRecord is the row shape of the water_records table.
type WaterRecord struct {
	RecordID   string          `db:"id"`
	OwnerID    string          `db:"owner_id"`
	Volume     decimal.Decimal `db:"volume"`
	ConsumedAt time.Time       `db:"consumed_at"`
	AuditFields
}
