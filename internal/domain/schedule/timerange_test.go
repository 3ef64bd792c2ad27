package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voluntree/scheduler/internal/apperr"
)

func TestTimeRangeValidate(t *testing.T) {
	tests := []struct {
		name     string
		r        TimeRange
		wantCode string
	}{
		{"valid one hour", TimeRange{Start: "09:00", End: "10:00"}, ""},
		{"valid multi hour", TimeRange{Start: "09:00", End: "17:00"}, ""},
		{"bad start", TimeRange{Start: "25:00", End: "10:00"}, "invalid_start_time"},
		{"bad end", TimeRange{Start: "09:00", End: "9am"}, "invalid_end_time"},
		{"end before start", TimeRange{Start: "14:00", End: "09:00"}, "end_before_start"},
		{"end equals start", TimeRange{Start: "09:00", End: "09:00"}, "end_before_start"},
		{"under an hour", TimeRange{Start: "09:00", End: "09:30"}, "range_too_short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperr.CodeOf(err))
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestTimeRangeDuration(t *testing.T) {
	r := TimeRange{Start: "09:00", End: "12:30"}
	assert.Equal(t, 3*time.Hour+30*time.Minute, r.Duration())
}

func TestTimeRangeOverlaps(t *testing.T) {
	a := TimeRange{Start: "09:00", End: "11:00"}

	assert.True(t, a.Overlaps(TimeRange{Start: "10:00", End: "12:00"}))
	assert.True(t, a.Overlaps(TimeRange{Start: "08:00", End: "09:30"}))
	assert.True(t, a.Overlaps(TimeRange{Start: "09:00", End: "11:00"}))

	// Touching endpoints do not overlap.
	assert.False(t, a.Overlaps(TimeRange{Start: "11:00", End: "13:00"}))
	assert.False(t, a.Overlaps(TimeRange{Start: "07:00", End: "09:00"}))
}

func TestParseWallClock(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"11am", "11:00"},
		{"11AM", "11:00"},
		{"11 am", "11:00"},
		{"2:30 PM", "14:30"},
		{"2:30pm", "14:30"},
		{"9:15 a.m.", "09:15"},
		{"9:15 P.M.", "21:15"},
		{"12am", "00:00"},
		{"12pm", "12:00"},
		{"12:30 am", "00:30"},
		{"  7 pm  ", "19:00"},
		// 24h input passes through normalized.
		{"09:00", "09:00"},
		{"9:00", "09:00"},
		{"23:45", "23:45"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWallClock(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWallClockRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "13pm", "0am", "11:5 am", "am", "noon", "11 xm", "24:00"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseWallClock(in)
			require.Error(t, err)
			assert.Equal(t, "invalid_time", apperr.CodeOf(err))
		})
	}
}
