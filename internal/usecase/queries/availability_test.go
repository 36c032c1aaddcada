//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"kitchenhub/internal/domain/schedule"
	"kitchenhub/internal/infra/db"
	"kitchenhub/internal/usecase/queries"
	"kitchenhub/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduleReads struct {
	weekly   []schedule.WeeklyWindow
	override *schedule.DateOverride
	booked   []shared.BookedInterval
}

func (f *fakeScheduleReads) WeeklyWindows(_ context.Context, _ db.DBTX, _ uuid.UUID) ([]schedule.WeeklyWindow, error) {
	return f.weekly, nil
}

func (f *fakeScheduleReads) OverrideForDate(_ context.Context, _ db.DBTX, _ uuid.UUID, _ time.Time) (*schedule.DateOverride, error) {
	return f.override, nil
}

func (f *fakeScheduleReads) BookedIntervals(_ context.Context, _ db.DBTX, _ uuid.UUID, _ time.Time) ([]shared.BookedInterval, error) {
	return f.booked, nil
}

func mustTime(t *testing.T, s string) schedule.TimeOfDay {
	t.Helper()
	tod, err := schedule.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func openMondays(capacity int) []schedule.WeeklyWindow {
	return []schedule.WeeklyWindow{
		{DayOfWeek: time.Monday, Window: schedule.Window{StartHour: 9, EndHour: 17, Capacity: capacity}, Available: true},
	}
}

func TestGetAllTimeSlotsWithBookingInfo(t *testing.T) {
	t.Run("counts overlapping bookings per bucket", func(t *testing.T) {
		reads := &fakeScheduleReads{
			weekly: openMondays(2),
			booked: []shared.BookedInterval{
				{Start: mustTime(t, "09:00"), End: mustTime(t, "11:00")},
				{Start: mustTime(t, "10:00"), End: mustTime(t, "12:00")},
			},
		}
		q := queries.NewAvailabilityQueries(reads, nil)

		slots, err := q.GetAllTimeSlotsWithBookingInfo(context.Background(), uuid.New(), monday)
		require.NoError(t, err)
		require.Len(t, slots, 8)

		want := queries.SlotInfo{Time: "10:00", Capacity: 2, BookedCount: 2, Available: 0, IsFullyBooked: true}
		if diff := cmp.Diff(want, slots[1]); diff != "" {
			t.Errorf("slot mismatch (-want +got):\n%s", diff)
		}

		assert.Equal(t, 1, slots[0].BookedCount)
		assert.Equal(t, 1, slots[0].Available)
		assert.Equal(t, 0, slots[3].BookedCount)
	})

	t.Run("closed override yields no slots", func(t *testing.T) {
		reads := &fakeScheduleReads{
			weekly:   openMondays(2),
			override: &schedule.DateOverride{Date: monday, Available: false},
		}
		q := queries.NewAvailabilityQueries(reads, nil)

		slots, err := q.GetAllTimeSlotsWithBookingInfo(context.Background(), uuid.New(), monday)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("override window replaces the weekly one", func(t *testing.T) {
		reads := &fakeScheduleReads{
			weekly: openMondays(2),
			override: &schedule.DateOverride{
				Date:      monday,
				Window:    schedule.Window{StartHour: 12, EndHour: 15, Capacity: 1},
				Available: true,
			},
		}
		q := queries.NewAvailabilityQueries(reads, nil)

		slots, err := q.GetAllTimeSlotsWithBookingInfo(context.Background(), uuid.New(), monday)
		require.NoError(t, err)
		require.Len(t, slots, 3)
		assert.Equal(t, "12:00", slots[0].Time)
		assert.Equal(t, 1, slots[0].Capacity)
	})
}

func TestGetAvailableSlots(t *testing.T) {
	reads := &fakeScheduleReads{
		weekly: openMondays(1),
		booked: []shared.BookedInterval{
			{Start: mustTime(t, "09:00"), End: mustTime(t, "10:00")},
		},
	}
	q := queries.NewAvailabilityQueries(reads, nil)

	slots, err := q.GetAvailableSlots(context.Background(), uuid.New(), monday)
	require.NoError(t, err)

	// The fully booked 09:00 bucket is filtered out.
	require.Len(t, slots, 7)
	assert.Equal(t, "10:00", slots[0].Time)
	for _, s := range slots {
		assert.Positive(t, s.Available)
	}
}

func TestValidateBookingAvailability(t *testing.T) {
	reads := &fakeScheduleReads{weekly: openMondays(2)}
	q := queries.NewAvailabilityQueries(reads, nil)

	t.Run("valid range", func(t *testing.T) {
		result, err := q.ValidateBookingAvailability(context.Background(), uuid.New(), monday, mustTime(t, "09:00"), mustTime(t, "12:00"))
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, schedule.ReasonNone, result.Reason)
	})

	t.Run("outside window", func(t *testing.T) {
		result, err := q.ValidateBookingAvailability(context.Background(), uuid.New(), monday, mustTime(t, "07:00"), mustTime(t, "12:00"))
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, schedule.ReasonOutsideWindow, result.Reason)
	})

	t.Run("closed day", func(t *testing.T) {
		result, err := q.ValidateBookingAvailability(context.Background(), uuid.New(), monday.AddDate(0, 0, 1), mustTime(t, "09:00"), mustTime(t, "12:00"))
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, schedule.ReasonKitchenClosed, result.Reason)
	})
}
