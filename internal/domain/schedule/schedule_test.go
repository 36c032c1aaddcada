//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"kitchenhub/internal/domain/schedule"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) schedule.TimeOfDay {
	t.Helper()
	tod, err := schedule.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid", input: "09:30", want: "09:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "single digit hour", input: "9:30", wantErr: true},
		{name: "minute out of range", input: "09:60", wantErr: true},
		{name: "past end of day", input: "24:01", wantErr: true},
		{name: "missing minutes", input: "09", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tod, err := schedule.ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, schedule.ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tod.String())
		})
	}
}

func TestEffectiveWindow(t *testing.T) {
	// 2026-03-02 is a Monday.
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	weekly := []schedule.WeeklyWindow{
		{DayOfWeek: time.Monday, Window: schedule.Window{StartHour: 9, EndHour: 17, Capacity: 2}, Available: true},
		{DayOfWeek: time.Tuesday, Window: schedule.Window{StartHour: 9, EndHour: 17, Capacity: 2}, Available: false},
	}

	t.Run("weekly entry applies without override", func(t *testing.T) {
		w, open := schedule.EffectiveWindow(weekly, nil, monday)
		require.True(t, open)
		assert.Equal(t, schedule.Window{StartHour: 9, EndHour: 17, Capacity: 2}, w)
	})

	t.Run("unavailable weekly entry closes the day", func(t *testing.T) {
		_, open := schedule.EffectiveWindow(weekly, nil, monday.AddDate(0, 0, 1))
		assert.False(t, open)
	})

	t.Run("no entry for the weekday closes the day", func(t *testing.T) {
		_, open := schedule.EffectiveWindow(weekly, nil, monday.AddDate(0, 0, 2))
		assert.False(t, open)
	})

	t.Run("override supersedes weekly", func(t *testing.T) {
		override := &schedule.DateOverride{
			Date:      monday,
			Window:    schedule.Window{StartHour: 12, EndHour: 20, Capacity: 1},
			Available: true,
		}
		w, open := schedule.EffectiveWindow(weekly, override, monday)
		require.True(t, open)
		assert.Equal(t, schedule.Window{StartHour: 12, EndHour: 20, Capacity: 1}, w)
	})

	t.Run("closed override closes an otherwise open day", func(t *testing.T) {
		override := &schedule.DateOverride{Date: monday, Available: false, Reason: "maintenance"}
		_, open := schedule.EffectiveWindow(weekly, override, monday)
		assert.False(t, open)
	})
}

func TestSlotStarts(t *testing.T) {
	t.Run("nine to five yields eight buckets", func(t *testing.T) {
		starts := schedule.SlotStarts(schedule.Window{StartHour: 9, EndHour: 17, Capacity: 2})
		require.Len(t, starts, 8)
		assert.Equal(t, "09:00", starts[0].String())
		assert.Equal(t, "16:00", starts[7].String())
	})

	t.Run("degenerate window yields nothing", func(t *testing.T) {
		assert.Empty(t, schedule.SlotStarts(schedule.Window{StartHour: 17, EndHour: 9}))
	})
}

func TestSlotsSpanning(t *testing.T) {
	toStrings := func(slots []schedule.TimeOfDay) []string {
		out := make([]string, 0, len(slots))
		for _, s := range slots {
			out = append(out, s.String())
		}
		return out
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{name: "exact hours", start: "09:00", end: "12:00", want: []string{"09:00", "10:00", "11:00"}},
		{name: "partial trailing hour claims its bucket", start: "09:00", end: "11:30", want: []string{"09:00", "10:00", "11:00"}},
		{name: "single hour", start: "09:00", end: "10:00", want: []string{"09:00"}},
		{name: "inverted range", start: "12:00", end: "09:00", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toStrings(schedule.SlotsSpanning(mustTime(t, tt.start), mustTime(t, tt.end)))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("slots mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOverlapsSlot(t *testing.T) {
	start := mustTime(t, "10:00")
	end := mustTime(t, "12:00")

	assert.True(t, schedule.OverlapsSlot(10, start, end))
	assert.True(t, schedule.OverlapsSlot(11, start, end))
	assert.False(t, schedule.OverlapsSlot(9, start, end))
	// End is exclusive.
	assert.False(t, schedule.OverlapsSlot(12, start, end))

	// Partial interval still claims the bucket it starts in.
	assert.True(t, schedule.OverlapsSlot(10, mustTime(t, "10:30"), mustTime(t, "11:00")))
}

func TestValidateRange(t *testing.T) {
	window := schedule.Window{StartHour: 9, EndHour: 17, Capacity: 2}

	tests := []struct {
		name  string
		open  bool
		start string
		end   string
		want  schedule.InvalidityReason
	}{
		{name: "valid range", open: true, start: "09:00", end: "12:00", want: schedule.ReasonNone},
		{name: "inverted range", open: true, start: "12:00", end: "09:00", want: schedule.ReasonInvalidRange},
		{name: "zero length range", open: true, start: "09:00", end: "09:00", want: schedule.ReasonInvalidRange},
		{name: "closed kitchen", open: false, start: "09:00", end: "12:00", want: schedule.ReasonKitchenClosed},
		{name: "starts before the window", open: true, start: "08:00", end: "12:00", want: schedule.ReasonOutsideWindow},
		{name: "ends past the window", open: true, start: "15:00", end: "18:00", want: schedule.ReasonOutsideWindow},
		{name: "misaligned start", open: true, start: "09:30", end: "12:00", want: schedule.ReasonMisalignedSlot},
		{name: "ends exactly at close", open: true, start: "16:00", end: "17:00", want: schedule.ReasonNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schedule.ValidateRange(window, tt.open, mustTime(t, tt.start), mustTime(t, tt.end))
			assert.Equal(t, tt.want, got)
		})
	}
}
