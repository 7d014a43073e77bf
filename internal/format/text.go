package format

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as "Xh Ym" (or "Ym Zs" under an hour).
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}

// TimeAgo renders how long ago t was relative to now.
func TimeAgo(t, now time.Time) string {
	if t.IsZero() || t.After(now) {
		return "just now"
	}
	seconds := int64(now.Sub(t).Seconds())
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return plural(seconds/60, "minute")
	case seconds < 86400:
		return plural(seconds/3600, "hour")
	default:
		return plural(seconds/86400, "day")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// FormatSize renders a byte count in megabytes.
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.1f MB", float64(bytes)/1_000_000)
}

// FormatNumber renders n with thousands separators.
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatNumber(n/1000), n%1000)
}
