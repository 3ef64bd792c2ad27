package timezone

import (
	"fmt"
	"time"
)

const DefaultTimezone = "America/New_York"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ResolutionError reports a local wall-clock time that cannot be resolved to
// exactly one instant because it falls in a DST gap or fold.
type ResolutionError struct {
	Date   string // YYYY-MM-DD
	Clock  string // HH:MM
	Zone   string
	Reason string // "nonexistent" or "ambiguous"
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("timezone: %s %s is %s in %s", e.Date, e.Clock, e.Reason, e.Zone)
}

const (
	ReasonNonexistent = "nonexistent"
	ReasonAmbiguous   = "ambiguous"
)

// ToInstant resolves a local calendar date and wall-clock time to a UTC
// instant in loc. The offset is looked up per date, never carried over from
// another date, so DST transitions inside a horizon resolve independently.
//
// Times that fall inside a DST gap (skipped by spring-forward) or a fold
// (repeated by fall-back) are rejected with a ResolutionError instead of
// silently picking an offset.
func ToInstant(year int, month time.Month, day, hour, minute int, loc *time.Location) (time.Time, error) {
	t := time.Date(year, month, day, hour, minute, 0, 0, loc)

	// time.Date normalizes nonexistent wall clocks to the other side of the
	// gap, so any drift from the requested fields means the time was skipped.
	if t.Year() != year || t.Month() != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute {
		return time.Time{}, &ResolutionError{
			Date:   fmt.Sprintf("%04d-%02d-%02d", year, month, day),
			Clock:  fmt.Sprintf("%02d:%02d", hour, minute),
			Zone:   loc.String(),
			Reason: ReasonNonexistent,
		}
	}

	// A fold exists when a second instant maps to the same wall clock. Probe
	// the usual transition sizes on both sides.
	for _, delta := range []time.Duration{
		-time.Hour, time.Hour, -30 * time.Minute, 30 * time.Minute,
	} {
		u := t.Add(delta)
		if u.Equal(t) {
			continue
		}
		if u.Year() == year && u.Month() == month && u.Day() == day &&
			u.Hour() == hour && u.Minute() == minute {
			return time.Time{}, &ResolutionError{
				Date:   fmt.Sprintf("%04d-%02d-%02d", year, month, day),
				Clock:  fmt.Sprintf("%02d:%02d", hour, minute),
				Zone:   loc.String(),
				Reason: ReasonAmbiguous,
			}
		}
	}

	return t.UTC(), nil
}

// ToLocal converts an instant back to the local calendar date and wall-clock
// time in loc.
func ToLocal(instant time.Time, loc *time.Location) (date string, clock string) {
	local := instant.In(loc)
	return local.Format("2006-01-02"), local.Format("15:04")
}
