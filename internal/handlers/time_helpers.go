package handlers

import (
	"time"
)

// parseDateInOrgZone reads a YYYY-MM-DD date in the organization timezone.
// An empty value means today.
func parseDateInOrgZone(dateStr string, loc *time.Location) (time.Time, error) {
	if dateStr == "" {
		return time.Now().In(loc), nil
	}
	return time.ParseInLocation("2006-01-02", dateStr, loc)
}
