package services

import (
	"context"
	"time"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	"github.com/SscSPs/hydration_tracker_app/internal/utils/hydration"
)

// DailyTotal sums the owner's records within the calendar day date of timezone.
func (s *waterService) DailyTotal(ctx context.Context, ownerID string, date string, timezone string) (*domain.IntakeSummary, error) {
	loc, err := hydration.LoadLocation(timezone)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid timezone")
	}
	from, to, err := hydration.DayBounds(date, loc)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
	}
	return s.summarize(ctx, ownerID, from, to, timezone)
}

// MonthlyTotal sums the owner's records within month (1-12) of year in timezone.
func (s *waterService) MonthlyTotal(ctx context.Context, ownerID string, year, month int, timezone string) (*domain.IntakeSummary, error) {
	loc, err := hydration.LoadLocation(timezone)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid timezone")
	}
	from, to, err := hydration.MonthBounds(year, month, loc)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Month must be between 1 and 12")
	}
	return s.summarize(ctx, ownerID, from, to, timezone)
}

func (s *waterService) summarize(ctx context.Context, ownerID string, from, to time.Time, timezone string) (*domain.IntakeSummary, error) {
	records, err := s.waterRepo.ListRecordsInRange(ctx, ownerID, from, to)
	if err != nil {
		return nil, s.internalError(ctx, err, "Failed to load water records")
	}
	summary := hydration.Summarize(records, from, to, timezone)
	return &summary, nil
}
