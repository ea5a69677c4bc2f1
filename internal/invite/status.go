package invite

import (
	"fmt"
	"time"

	"tripmate/internal/pkg/i18n"
)

type Status struct {
	Never     bool
	Expired   bool
	Remaining time.Duration
	Text      string
}

// Describe derives the expiry display for expiresAt at now. Nothing is
// re-evaluated afterwards; callers re-render to refresh it.
func Describe(expiresAt *time.Time, now time.Time, locale string) Status {
	if expiresAt == nil {
		return Status{Never: true, Text: i18n.Translate(locale, "NEVER_EXPIRES")}
	}

	if expiresAt.Before(now) {
		return Status{Expired: true, Text: i18n.Translate(locale, "EXPIRED")}
	}

	remaining := expiresAt.Sub(now)
	return Status{
		Remaining: remaining,
		Text:      i18n.Translatef(locale, "EXPIRES_IN", FormatRemaining(remaining)),
	}
}

// FormatRemaining renders a countdown with its two most significant units.
func FormatRemaining(d time.Duration) string {
	d = d.Round(time.Second)

	days := int(d / (24 * time.Hour))
	hours := int(d % (24 * time.Hour) / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	seconds := int(d % time.Minute / time.Second)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
