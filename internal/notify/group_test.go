package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/internal/domain"
)

func TestGroupByDay(t *testing.T) {
	now := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
	list := []domain.Notification{
		{ID: "a", Timestamp: "2024-01-01T10:00:00Z"},
		{ID: "b", Timestamp: "2023-12-25T10:00:00Z"},
		{ID: "c", Timestamp: "2023-12-31T23:59:00Z"},
		{ID: "d", Timestamp: "2024-01-01T00:00:00Z"},
		{ID: "e", Timestamp: "2023-12-25T08:00:00Z"},
	}

	groups := GroupByDay(list, now, time.UTC, "en")

	require.Len(t, groups, 3)
	assert.Equal(t, "Today", groups[0].Label)
	assert.Equal(t, []string{"a", "d"}, ids(groups[0].Notifications))
	assert.Equal(t, "Monday, December 25, 2023", groups[1].Label)
	assert.Equal(t, []string{"b", "e"}, ids(groups[1].Notifications))
	assert.Equal(t, "Yesterday", groups[2].Label)
	assert.Equal(t, []string{"c"}, ids(groups[2].Notifications))
}

func TestGroupByDay_Location(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	now := time.Date(2024, 1, 2, 1, 0, 0, 0, loc)

	// 20:00 UTC on Jan 1 is 03:00 on Jan 2 in UTC+7
	groups := GroupByDay([]domain.Notification{{ID: "a", Timestamp: "2024-01-01T20:00:00Z"}}, now, loc, "en")

	require.Len(t, groups, 1)
	assert.Equal(t, "Today", groups[0].Label)
}

func TestGroupByDay_Undated(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	list := []domain.Notification{
		{ID: "x", Timestamp: "not a date"},
		{ID: "a", Timestamp: "2024-01-01T10:00:00Z"},
	}

	groups := GroupByDay(list, now, time.UTC, "id")

	require.Len(t, groups, 2)
	assert.Equal(t, "Hari ini", groups[0].Label)
	assert.Equal(t, "Sebelumnya", groups[1].Label)
	assert.Equal(t, []string{"x"}, ids(groups[1].Notifications))
}

func TestGroupByDay_Empty(t *testing.T) {
	assert.Empty(t, GroupByDay(nil, time.Now(), nil, "en"))
}

func TestGroupByDay_LocalizedDateLabel(t *testing.T) {
	now := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
	list := []domain.Notification{{ID: "b", Timestamp: "2023-12-25T10:00:00Z"}}

	groups := GroupByDay(list, now, time.UTC, "id")

	require.Len(t, groups, 1)
	assert.Equal(t, "Senin, 25 Desember 2023", groups[0].Label)
}

func TestGroupByDay_ZonelessTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	now := time.Date(2024, 1, 1, 18, 0, 0, 0, loc)
	list := []domain.Notification{
		{ID: "a", Timestamp: "2024-01-01T10:00:00"},
		{ID: "b", Timestamp: "2023-12-31T23:30:00"},
	}

	groups := GroupByDay(list, now, loc, "en")

	require.Len(t, groups, 2)
	assert.Equal(t, "Today", groups[0].Label)
	assert.Equal(t, []string{"a"}, ids(groups[0].Notifications))
	assert.Equal(t, "Yesterday", groups[1].Label)
}

func TestParseTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)

	ts, err := ParseTimestamp("2024-01-01T10:00:00Z", loc)
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))

	ts, err = ParseTimestamp("2024-01-01T10:00:00", loc)
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)))

	_, err = ParseTimestamp("yesterday", loc)
	assert.Error(t, err)
}

func TestFormatFullDate_UnknownLocale(t *testing.T) {
	day := time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Monday, December 25, 2023", FormatFullDate(day, "fr"))
}
