package notify

import (
	"time"

	"github.com/goodsign/monday"

	"tripmate/internal/domain"
	"tripmate/internal/pkg/i18n"
)

// localTimestampLayout is ISO-8601 without a zone, read in the viewer's location.
const localTimestampLayout = "2006-01-02T15:04:05"

var dateLocales = map[string]monday.Locale{
	"en": monday.LocaleEnUS,
	"id": monday.LocaleIdID,
}

// ParseTimestamp reads an RFC 3339 timestamp, falling back to a zoneless
// ISO-8601 date-time interpreted in loc.
func ParseTimestamp(ts string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, ts)
	if err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.Local
	}
	if t, lerr := time.ParseInLocation(localTimestampLayout, ts, loc); lerr == nil {
		return t, nil
	}
	return time.Time{}, err
}

// FormatFullDate renders day with the locale's full date layout and
// translated day and month names.
func FormatFullDate(day time.Time, locale string) string {
	ml, ok := dateLocales[locale]
	if !ok {
		ml = monday.LocaleEnUS
	}
	return monday.Format(day, i18n.Translate(locale, "DATE_FULL"), ml)
}

type DayGroup struct {
	Label         string
	Notifications []domain.Notification
}

// GroupByDay partitions list into day buckets relative to now in loc.
// Buckets are ordered by first appearance and keep the list's order inside.
// Entries whose timestamp cannot be parsed end up in a trailing bucket.
func GroupByDay(list []domain.Notification, now time.Time, loc *time.Location, locale string) []DayGroup {
	if loc == nil {
		loc = time.Local
	}

	today := dayStart(now.In(loc))
	yesterday := today.AddDate(0, 0, -1)

	var groups []DayGroup
	index := make(map[string]int)
	var undated []domain.Notification

	for _, n := range list {
		ts, err := ParseTimestamp(n.Timestamp, loc)
		if err != nil {
			undated = append(undated, n)
			continue
		}

		day := dayStart(ts.In(loc))
		var label string
		switch {
		case day.Equal(today):
			label = i18n.Translate(locale, "TODAY")
		case day.Equal(yesterday):
			label = i18n.Translate(locale, "YESTERDAY")
		default:
			label = FormatFullDate(day, locale)
		}

		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, DayGroup{Label: label})
		}
		groups[i].Notifications = append(groups[i].Notifications, n)
	}

	if len(undated) > 0 {
		groups = append(groups, DayGroup{Label: i18n.Translate(locale, "EARLIER"), Notifications: undated})
	}

	return groups
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
