package monitor

import (
	"time"

	"go.uber.org/zap"
)

// CheckTimeFormatter renders a UTC instant as the check-time string shown in
// notifications: MM/DD/YYYY hh:mmPM plus a fixed zone label.
type CheckTimeFormatter func(t time.Time) string

// The rendered label is the literal "CST" year-round, even when the zone
// database would report CDT. The source output has always used the literal
// label, so it is preserved here.
const checkTimeLabel = "CST"

// NewCheckTimeFormatter prefers the zone database's America/Chicago rules
// and falls back to a fixed UTC-6 offset when no zone data is available.
func NewCheckTimeFormatter(logger *zap.Logger) CheckTimeFormatter {
	if loc, err := time.LoadLocation("America/Chicago"); err == nil {
		return locationFormatter(loc)
	}
	logger.Warn("Zone database unavailable; using fixed CST offset")
	return locationFormatter(time.FixedZone(checkTimeLabel, -6*60*60))
}

func locationFormatter(loc *time.Location) CheckTimeFormatter {
	return func(t time.Time) string {
		return t.In(loc).Format("01/02/2006 03:04PM") + " " + checkTimeLabel
	}
}
