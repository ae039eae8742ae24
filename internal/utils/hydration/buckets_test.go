package hydration

import (
	"testing"
	"time"

	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func record(id string, ml int64, at time.Time) domain.WaterRecord {
	return domain.WaterRecord{RecordID: id, Volume: decimal.NewFromInt(ml), Timestamp: at}
}

func TestLoadLocation(t *testing.T) {
	_, err := LoadLocation("Europe/Kyiv")
	assert.NoError(t, err)

	_, err = LoadLocation("Mars/Olympus")
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = LoadLocation("")
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	assert.True(t, IsValidTimezone("UTC"))
	assert.False(t, IsValidTimezone("Not/AZone"))
}

func TestLoadLocation_RejectsServerZone(t *testing.T) {
	for _, name := range []string{"Local", "local", " Local "} {
		_, err := LoadLocation(name)
		assert.ErrorIs(t, err, ErrInvalidTimezone, name)
		assert.False(t, IsValidTimezone(name), name)
	}
}

func TestDayBounds_SpringForwardNewYork(t *testing.T) {
	loc := mustLoad(t, "America/New_York")

	start, end, err := DayBounds("2024-03-10", loc)
	require.NoError(t, err)

	assert.True(t, start.Equal(time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC)), "start is midnight EST")
	assert.True(t, end.Equal(time.Date(2024, 3, 11, 4, 0, 0, 0, time.UTC)), "end is midnight EDT")
	assert.Equal(t, 23*time.Hour, end.Sub(start))
}

func TestDayBounds_FallBackNewYork(t *testing.T) {
	loc := mustLoad(t, "America/New_York")

	start, end, err := DayBounds("2024-11-03", loc)
	require.NoError(t, err)
	assert.Equal(t, 25*time.Hour, end.Sub(start))
}

func TestDayBounds_InvalidDate(t *testing.T) {
	_, _, err := DayBounds("2024-02-30", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, _, err = DayBounds("yesterday", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestMonthBounds(t *testing.T) {
	start, end, err := MonthBounds(2024, 2, time.UTC)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, end.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))

	start, end, err = MonthBounds(2023, 12, time.UTC)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, end.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	_, _, err = MonthBounds(2024, 0, time.UTC)
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, _, err = MonthBounds(2024, 13, time.UTC)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestSummarize_LeapFebruary(t *testing.T) {
	start, end, err := MonthBounds(2024, 2, time.UTC)
	require.NoError(t, err)

	records := []domain.WaterRecord{
		record("jan31", 100, time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)),
		record("feb1", 200, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
		record("feb29", 300, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)),
		record("mar1", 400, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
	}

	summary := Summarize(records, start, end, "UTC")

	assert.Equal(t, 2, summary.Count)
	assert.True(t, decimal.NewFromInt(500).Equal(summary.TotalVolume))
	require.Len(t, summary.Records, 2)
	assert.Equal(t, "feb1", summary.Records[0].RecordID)
	assert.Equal(t, "feb29", summary.Records[1].RecordID)
}

func TestSummarize_DSTDayIsZoneAware(t *testing.T) {
	loc := mustLoad(t, "America/New_York")
	start, end, err := DayBounds("2024-03-10", loc)
	require.NoError(t, err)

	records := []domain.WaterRecord{
		// 23:30 EST on March 9th
		record("before", 100, time.Date(2024, 3, 10, 4, 30, 0, 0, time.UTC)),
		// first instant of March 10th in New York
		record("first", 250, time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC)),
		// 23:59 EDT on March 10th, already March 11th in UTC
		record("late", 300, time.Date(2024, 3, 11, 3, 59, 0, 0, time.UTC)),
		// midnight EDT on March 11th
		record("next", 400, time.Date(2024, 3, 11, 4, 0, 0, 0, time.UTC)),
	}

	summary := Summarize(records, start, end, "America/New_York")

	assert.Equal(t, 2, summary.Count)
	assert.True(t, decimal.NewFromInt(550).Equal(summary.TotalVolume))
	assert.Equal(t, "first", summary.Records[0].RecordID)
	assert.Equal(t, "late", summary.Records[1].RecordID)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, time.Unix(0, 0), time.Unix(100, 0), "UTC")
	assert.Equal(t, 0, summary.Count)
	assert.True(t, summary.TotalVolume.IsZero())
	assert.NotNil(t, summary.Records)
	assert.Empty(t, summary.Records)
}

func TestParseTimestamp(t *testing.T) {
	kyiv := mustLoad(t, "Europe/Kyiv")

	got, err := ParseTimestamp("2024-06-01T08:30:00Z", nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)))

	got, err = ParseTimestamp("2024-06-01T08:30", kyiv)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 6, 1, 5, 30, 0, 0, time.UTC)), "Kyiv is UTC+3 in summer")

	got, err = ParseTimestamp("2024-06-01", kyiv)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 5, 31, 21, 0, 0, 0, time.UTC)))

	_, err = ParseTimestamp("2024-06-01T08:30", nil)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)

	_, err = ParseTimestamp("soon", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}
