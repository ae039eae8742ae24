package dto

import (
	"time"

	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWaterRecordRequest is the body of POST /api/water.
// Date is RFC 3339, or a naive wall-clock value interpreted in Timezone.
type CreateWaterRecordRequest struct {
	Volume   *decimal.Decimal `json:"volume" binding:"required"`
	Date     string           `json:"date" binding:"required"`
	Timezone string           `json:"timezone" binding:"required,timezone"`
}

// UpdateWaterRecordRequest is the body of PUT /api/water/:id. At least one of Volume or Date is required.
type UpdateWaterRecordRequest struct {
	Volume   *decimal.Decimal `json:"volume"`
	Date     *string          `json:"date"`
	Timezone string           `json:"timezone" binding:"omitempty,timezone"`
}

// ListWaterRecordsParams defines query parameters for listing records.
type ListWaterRecordsParams struct {
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// AggregationQuery is the optional zone override of the daily and monthly endpoints.
type AggregationQuery struct {
	Timezone string `form:"timezone" binding:"omitempty,timezone"`
}

type MonthPath struct {
	Year  int `uri:"year" binding:"required,min=1970,max=9999"`
	Month int `uri:"month" binding:"required,min=1,max=12"`
}

type WaterRecordResponse struct {
	ID     string          `json:"id"`
	Owner  string          `json:"owner"`
	Volume decimal.Decimal `json:"volume"`
	Date   time.Time       `json:"date"`
}

func ToWaterRecordResponse(r *domain.WaterRecord) WaterRecordResponse {
	return WaterRecordResponse{ID: r.RecordID, Owner: r.OwnerID, Volume: r.Volume, Date: r.Timestamp}
}

type ListWaterRecordsResponse struct {
	Records   []WaterRecordResponse `json:"records"`
	NextToken *string               `json:"nextToken,omitempty"`
}

func ToListWaterRecordsResponse(records []domain.WaterRecord, next *string) ListWaterRecordsResponse {
	out := make([]WaterRecordResponse, len(records))
	for i := range records {
		out[i] = ToWaterRecordResponse(&records[i])
	}
	return ListWaterRecordsResponse{Records: out, NextToken: next}
}

// IntakeSummaryResponse is the daily or monthly total. Instants are rendered in the requested zone.
type IntakeSummaryResponse struct {
	Timezone    string                `json:"timezone"`
	From        time.Time             `json:"from"`
	To          time.Time             `json:"to"`
	TotalVolume decimal.Decimal       `json:"totalVolume"`
	Count       int                   `json:"count"`
	Records     []WaterRecordResponse `json:"records"`
}

func ToIntakeSummaryResponse(s *domain.IntakeSummary, ownerID string) IntakeSummaryResponse {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		loc = time.UTC
	}
	records := make([]WaterRecordResponse, len(s.Records))
	for i, e := range s.Records {
		records[i] = WaterRecordResponse{ID: e.RecordID, Owner: ownerID, Volume: e.Volume, Date: e.Timestamp.In(loc)}
	}
	return IntakeSummaryResponse{
		Timezone:    s.Timezone,
		From:        s.From.In(loc),
		To:          s.To.In(loc),
		TotalVolume: s.TotalVolume,
		Count:       s.Count,
		Records:     records,
	}
}
