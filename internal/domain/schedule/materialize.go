package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/voluntree/scheduler/internal/apperr"
	"github.com/voluntree/scheduler/internal/models"
	"github.com/voluntree/scheduler/internal/timezone"
)

const DefaultHorizonWeeks = 12

// Materialize projects a weekly template into concrete slots for the next
// horizonWeeks weeks. It is a pure function: no I/O, no clock reads; the
// caller supplies "now" (or any reference instant) as earliest.
//
// Publishing starts no earlier than the day after earliest's local date.
// Occurrence dates advance in local calendar terms, and each occurrence's
// start and end instants are resolved per date through the timezone
// projector, so a DST shift inside the horizon changes the UTC offset of
// later weeks without disturbing the local wall-clock times.
func Materialize(providerID uint, tpl WeeklyTemplate, horizonWeeks int, earliest time.Time, loc *time.Location) ([]models.AvailabilitySlot, error) {
	if horizonWeeks <= 0 {
		horizonWeeks = DefaultHorizonWeeks
	}

	// Pure calendar arithmetic on date-only values. UTC midnight has no DST,
	// so AddDate stays a plain day counter here; the real zone only enters
	// when a date is resolved to instants below.
	local := earliest.In(loc)
	eligible := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	// Anchor iteration on the Monday on/before the eligible date.
	monday := eligible.AddDate(0, 0, -daysSinceMonday(eligible.Weekday()))

	var slots []models.AvailabilitySlot

	for weekday := 0; weekday <= 6; weekday++ {
		ranges := append([]TimeRange(nil), tpl.Days[weekday]...)
		if len(ranges) == 0 {
			continue
		}
		sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })

		first := monday.AddDate(0, 0, daysFromMonday(time.Weekday(weekday)))
		if first.Before(eligible) {
			first = first.AddDate(0, 0, 7)
		}

		for _, r := range ranges {
			group := uuid.New()
			want := r.Duration()

			occurrence := first
			for week := 0; week < horizonWeeks; week++ {
				start, end, err := resolveOccurrence(occurrence, r, loc)
				if err != nil {
					return nil, err
				}
				if end.Sub(start) != want {
					return nil, apperr.TimeZoneResolution(
						"unresolvable_occurrence",
						fmt.Sprintf("A clock change on %s makes %s-%s shorter or longer than the template range.",
							occurrence.Format("2006-01-02"), r.Start, r.End),
						nil,
					)
				}

				groupID := group
				slots = append(slots, models.AvailabilitySlot{
					ID:                uuid.New(),
					ProviderID:        providerID,
					StartTime:         start,
					EndTime:           end,
					RecurrenceGroupID: &groupID,
				})

				occurrence = occurrence.AddDate(0, 0, 7)
			}
		}
	}

	return slots, nil
}

func resolveOccurrence(date time.Time, r TimeRange, loc *time.Location) (time.Time, time.Time, error) {
	sh, sm := splitClock(r.Start)
	eh, em := splitClock(r.End)

	start, err := timezone.ToInstant(date.Year(), date.Month(), date.Day(), sh, sm, loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.TimeZoneResolution(
			"unresolvable_occurrence",
			fmt.Sprintf("%s %s cannot be resolved to a single instant.", date.Format("2006-01-02"), r.Start),
			err,
		)
	}
	end, err := timezone.ToInstant(date.Year(), date.Month(), date.Day(), eh, em, loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.TimeZoneResolution(
			"unresolvable_occurrence",
			fmt.Sprintf("%s %s cannot be resolved to a single instant.", date.Format("2006-01-02"), r.End),
			err,
		)
	}
	return start, end, nil
}

func splitClock(hm string) (int, int) {
	mins, _ := MinutesOfDay(hm)
	return mins / 60, mins % 60
}

func daysSinceMonday(w time.Weekday) int {
	// Monday-based week: Mon=0 .. Sun=6.
	return (int(w) + 6) % 7
}

func daysFromMonday(w time.Weekday) int {
	return (int(w) + 6) % 7
}
