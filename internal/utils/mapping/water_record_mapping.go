package mapping

import (
	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	"github.com/SscSPs/hydration_tracker_app/internal/models"
)

// ToModelWaterRecord converts a domain WaterRecord to a model WaterRecord
func ToModelWaterRecord(d domain.WaterRecord) models.WaterRecord {
	return models.WaterRecord{
		RecordID:    d.RecordID,
		OwnerID:     d.OwnerID,
		Volume:      d.Volume,
		ConsumedAt:  d.Timestamp.UTC(),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWaterRecord converts a model WaterRecord to a domain WaterRecord
func ToDomainWaterRecord(m models.WaterRecord) domain.WaterRecord {
	return domain.WaterRecord{
		RecordID:    m.RecordID,
		OwnerID:     m.OwnerID,
		Volume:      m.Volume,
		Timestamp:   m.ConsumedAt.UTC(),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWaterRecordSlice converts a slice of model WaterRecords to domain WaterRecords
func ToDomainWaterRecordSlice(ms []models.WaterRecord) []domain.WaterRecord {
	ds := make([]domain.WaterRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWaterRecord(m)
	}
	return ds
}
