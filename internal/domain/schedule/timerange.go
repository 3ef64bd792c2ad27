package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/voluntree/scheduler/internal/apperr"
)

// MinSlotDuration is the shortest time range a provider may publish.
const MinSlotDuration = 60 * time.Minute

// TimeRange is a local wall-clock window within one day. Times are "HH:MM"
// 24h strings; they carry no offset and are interpreted in the organization
// timezone when materialized.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r TimeRange) Validate() error {
	start, err := MinutesOfDay(r.Start)
	if err != nil {
		return apperr.Validation("invalid_start_time", fmt.Sprintf("%q is not a valid HH:MM time", r.Start))
	}
	end, err := MinutesOfDay(r.End)
	if err != nil {
		return apperr.Validation("invalid_end_time", fmt.Sprintf("%q is not a valid HH:MM time", r.End))
	}
	if end <= start {
		return apperr.Validation("end_before_start", "End time must be after start time.")
	}
	if time.Duration(end-start)*time.Minute < MinSlotDuration {
		return apperr.Validation("range_too_short", "A time range must be at least 60 minutes long.")
	}
	return nil
}

// Duration is End - Start. Only meaningful for a validated range.
func (r TimeRange) Duration() time.Duration {
	start, _ := MinutesOfDay(r.Start)
	end, _ := MinutesOfDay(r.End)
	return time.Duration(end-start) * time.Minute
}

// Overlaps reports whether two ranges share any time on the same day.
func (r TimeRange) Overlaps(other TimeRange) bool {
	s1, _ := MinutesOfDay(r.Start)
	e1, _ := MinutesOfDay(r.End)
	s2, _ := MinutesOfDay(other.Start)
	e2, _ := MinutesOfDay(other.End)
	return s1 < e2 && s2 < e1
}

var clockRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// MinutesOfDay parses an "HH:MM" 24h string into minutes since midnight.
func MinutesOfDay(hm string) (int, error) {
	m := clockRe.FindStringSubmatch(hm)
	if m == nil {
		return 0, fmt.Errorf("schedule: %q is not an HH:MM time", hm)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return h*60 + min, nil
}

// Grammar: h[:mm] (am|pm), case-insensitive, optional punctuation in the
// meridiem ("a.m.").
var wallClockRe = regexp.MustCompile(`^\s*([1-9]|1[0-2])(?::([0-5][0-9]))?\s*([AaPp])\.?[Mm]\.?\s*$`)

// ParseWallClock normalizes a requester-supplied wall-clock string ("11am",
// "2:30 PM", "9:15 a.m.") or a 24h "HH:MM" into canonical "HH:MM".
func ParseWallClock(s string) (string, error) {
	if clockRe.MatchString(s) {
		mins, _ := MinutesOfDay(s)
		return fmt.Sprintf("%02d:%02d", mins/60, mins%60), nil
	}

	m := wallClockRe.FindStringSubmatch(s)
	if m == nil {
		return "", apperr.Validation("invalid_time", fmt.Sprintf("%q is not a recognized time of day", s))
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}

	pm := m[3] == "p" || m[3] == "P"
	if hour == 12 {
		hour = 0
	}
	if pm {
		hour += 12
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
