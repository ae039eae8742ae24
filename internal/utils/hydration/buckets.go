// Package hydration holds the calendar arithmetic behind daily and monthly intake totals.
// Records are stored as absolute instants; buckets are computed in the viewer's zone.
package hydration

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day format accepted for daily totals.
const DateLayout = "2006-01-02"

var (
	ErrInvalidTimezone  = errors.New("invalid timezone")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidMonth     = errors.New("month must be between 1 and 12")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// naiveLayouts are wall-clock formats interpreted in a caller-supplied zone.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateLayout,
}

// LoadLocation resolves an IANA zone name. Empty names and "Local" are rejected:
// buckets never depend on the server's own zone.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidTimezone)
	}
	if strings.EqualFold(name, "Local") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}

// IsValidTimezone reports whether name is a loadable IANA zone.
func IsValidTimezone(name string) bool {
	_, err := LoadLocation(name)
	return err == nil
}

// DayBounds returns [start of date, start of next day) in loc as absolute instants.
// The interval is not always 24h long: DST transition days are 23 or 25 hours.
func DayBounds(date string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	return start, end, nil
}

// MonthBounds returns [start of month, start of next month) in loc. month is 1-indexed.
func MonthBounds(year, month int, loc *time.Location) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, loc)
	return start, end, nil
}

// ParseTimestamp parses an RFC 3339 instant, or a naive wall-clock value interpreted in loc.
// loc may be nil only when value carries its own offset.
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	if loc == nil {
		return time.Time{}, fmt.Errorf("%w: %q needs a timezone", ErrInvalidTimestamp, value)
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

// Summarize totals the records that fall in [from, to). Records outside the interval are ignored,
// so callers may pass a superset.
func Summarize(records []domain.WaterRecord, from, to time.Time, timezone string) domain.IntakeSummary {
	summary := domain.IntakeSummary{
		Timezone:    timezone,
		From:        from,
		To:          to,
		TotalVolume: decimal.Zero,
		Records:     make([]domain.IntakeEntry, 0, len(records)),
	}
	for _, r := range records {
		if r.Timestamp.Before(from) || !r.Timestamp.Before(to) {
			continue
		}
		summary.TotalVolume = summary.TotalVolume.Add(r.Volume)
		summary.Records = append(summary.Records, domain.IntakeEntry{
			RecordID:  r.RecordID,
			Volume:    r.Volume,
			Timestamp: r.Timestamp,
		})
	}
	summary.Count = len(summary.Records)
	return summary
}
