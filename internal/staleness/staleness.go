// Package staleness buckets "days since last sent" into discrete severity
// levels used for coloring contacts on the dashboard.
package staleness

import (
	"time"

	"touchbase/internal/model"
)

type Bucket string

const (
	Unknown  Bucket = "unknown"
	Fresh    Bucket = "fresh"
	Caution  Bucket = "caution"
	Warning  Bucket = "warning"
	Critical Bucket = "critical"
)

// Classify maps the elapsed time since lastSent to a bucket relative to the
// user's threshold in days. A nil or zero timestamp is Unknown. Bucket lower
// bounds are inclusive: days >= T is Critical, days >= 0.6*T Warning,
// days >= 0.3*T Caution, anything below Fresh.
func Classify(lastSent *time.Time, thresholdDays int, now time.Time) Bucket {
	if lastSent == nil || lastSent.IsZero() {
		return Unknown
	}
	t := float64(model.ClampStaleThreshold(thresholdDays))
	days := now.Sub(*lastSent).Hours() / 24

	switch {
	case days >= t:
		return Critical
	case days >= 0.6*t:
		return Warning
	case days >= 0.3*t:
		return Caution
	default:
		return Fresh
	}
}
