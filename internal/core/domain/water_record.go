package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WaterRecord is a single logged intake. Timestamp is an absolute instant.
type WaterRecord struct {
	RecordID  string          `json:"id"`
	OwnerID   string          `json:"owner"`
	Volume    decimal.Decimal `json:"volume"`
	Timestamp time.Time       `json:"date"`
	AuditFields
}

// WaterRecordPatch carries the optional replacement values of an update.
type WaterRecordPatch struct {
	Volume    *decimal.Decimal
	Timestamp *time.Time
}

func (p WaterRecordPatch) IsEmpty() bool {
	return p.Volume == nil && p.Timestamp == nil
}

// IntakeEntry is a record as reported inside an aggregation.
type IntakeEntry struct {
	RecordID  string          `json:"id"`
	Volume    decimal.Decimal `json:"volume"`
	Timestamp time.Time       `json:"date"`
}

// IntakeSummary is the total of all records in a calendar bucket.
type IntakeSummary struct {
	Timezone    string          `json:"timezone"`
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	TotalVolume decimal.Decimal `json:"totalVolume"`
	Count       int             `json:"count"`
	Records     []IntakeEntry   `json:"records"`
}
