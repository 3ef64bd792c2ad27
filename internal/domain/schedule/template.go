package schedule

import (
	"sort"

	"github.com/voluntree/scheduler/internal/apperr"
	"github.com/voluntree/scheduler/internal/models"
)

// WeeklyTemplate is a provider's recurring day-of-week pattern. Weekdays use
// time.Weekday numbering: 0 = Sunday .. 6 = Saturday. A weekday absent from
// Days publishes nothing.
type WeeklyTemplate struct {
	Days map[int][]TimeRange
}

// RangeConflict points at one offending range of a template.
type RangeConflict struct {
	Weekday int            `json:"weekday"`
	Index   int            `json:"index"`
	Reason  ConflictReason `json:"reason"`
}

// Validate checks every range invariant and runs the conflict detector per
// day. Any conflict refuses the whole template; there is no partial save.
func (t WeeklyTemplate) Validate() error {
	for weekday, ranges := range t.Days {
		if weekday < 0 || weekday > 6 {
			return apperr.Validation("invalid_weekday", "Weekday must be between 0 and 6.")
		}
		for _, r := range ranges {
			if err := r.Validate(); err != nil {
				return err
			}
		}
	}

	var conflicts []RangeConflict
	for weekday, ranges := range t.Days {
		for idx, reason := range DetectConflicts(ranges) {
			conflicts = append(conflicts, RangeConflict{
				Weekday: weekday,
				Index:   idx,
				Reason:  reason,
			})
		}
	}

	if len(conflicts) > 0 {
		sort.Slice(conflicts, func(i, j int) bool {
			if conflicts[i].Weekday != conflicts[j].Weekday {
				return conflicts[i].Weekday < conflicts[j].Weekday
			}
			return conflicts[i].Index < conflicts[j].Index
		})
		err := apperr.Conflict("conflicting_ranges", "The template has overlapping or duplicate time ranges.")
		err.Details = conflicts
		return err
	}

	return nil
}

// IsEmpty reports whether the template publishes no ranges at all. An empty
// template is valid: it means fully cleared availability.
func (t WeeklyTemplate) IsEmpty() bool {
	for _, ranges := range t.Days {
		if len(ranges) > 0 {
			return false
		}
	}
	return true
}

// TemplateFromRules groups persisted rule rows back into a template.
func TemplateFromRules(rules []models.AvailabilityRule) WeeklyTemplate {
	t := WeeklyTemplate{Days: make(map[int][]TimeRange)}
	for _, rule := range rules {
		t.Days[rule.Weekday] = append(t.Days[rule.Weekday], TimeRange{
			Start: rule.StartTime,
			End:   rule.EndTime,
		})
	}
	return t
}

// Rules flattens the template into rule rows for persistence, ordered by
// weekday then start time.
func (t WeeklyTemplate) Rules(providerID uint) []models.AvailabilityRule {
	var rules []models.AvailabilityRule
	for weekday := 0; weekday <= 6; weekday++ {
		ranges := append([]TimeRange(nil), t.Days[weekday]...)
		sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
		for _, r := range ranges {
			rules = append(rules, models.AvailabilityRule{
				ProviderID: providerID,
				Weekday:    weekday,
				StartTime:  r.Start,
				EndTime:    r.End,
			})
		}
	}
	return rules
}
