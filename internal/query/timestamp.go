package query

import (
	"fmt"
	"time"
)

// FormatTimestamp renders t relative to the current time.
func FormatTimestamp(t time.Time) string {
	return FormatTimestampAt(t, time.Now())
}

// FormatTimestampAt renders t relative to now as a coarse age label:
// seconds under a minute, minutes under an hour, hours under a day and
// days under a week. Older instants are shown as an absolute M/D/YYYY date
// in UTC. Instants after now count as zero seconds old.
func FormatTimestampAt(t, now time.Time) string {
	secs := int64(now.Sub(t) / time.Second)
	if secs < 0 {
		secs = 0
	}

	switch {
	case secs < 60:
		return fmt.Sprintf("%d SECONDS AGO", secs)
	case secs < 3600:
		return fmt.Sprintf("%d MINUTES AGO", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%d HOURS AGO", secs/3600)
	case secs < 604800:
		return fmt.Sprintf("%d DAYS AGO", secs/86400)
	default:
		return t.UTC().Format("1/2/2006")
	}
}
