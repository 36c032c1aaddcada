//go:build unit

package booking_test

import (
	"testing"
	"time"

	"kitchenhub/internal/domain/booking"
	"kitchenhub/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) schedule.TimeOfDay {
	t.Helper()
	tod, err := schedule.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func newChefBooking(t *testing.T) *booking.KitchenBooking {
	t.Helper()
	chefID := uuid.New()
	b, err := booking.NewKitchenBooking(
		uuid.New(),
		&chefID,
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		mustTime(t, "09:00"),
		mustTime(t, "13:00"),
		nil,
		2500,
		"USD",
		booking.TypeChef,
	)
	require.NoError(t, err)
	return b
}

func TestNewKitchenBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := newChefBooking(t)

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, booking.TypeChef, b.BookingType())
		assert.InDelta(t, 4.0, b.DurationHours(), 0.001)
		assert.Zero(t, b.TotalPriceCents())
	})

	t.Run("derives contiguous slots when none given", func(t *testing.T) {
		b := newChefBooking(t)

		slots := b.SelectedSlots()
		require.Len(t, slots, 4)
		assert.Equal(t, "09:00", slots[0].String())
		assert.Equal(t, "12:00", slots[3].String())
	})

	t.Run("keeps an explicit slot list", func(t *testing.T) {
		chefID := uuid.New()
		explicit := []schedule.TimeOfDay{mustTime(t, "09:00"), mustTime(t, "14:00")}
		b, err := booking.NewKitchenBooking(
			uuid.New(), &chefID,
			time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			mustTime(t, "09:00"), mustTime(t, "15:00"),
			explicit, 2500, "USD", booking.TypeChef,
		)
		require.NoError(t, err)
		assert.Len(t, b.SelectedSlots(), 2)
	})

	t.Run("missing kitchen", func(t *testing.T) {
		_, err := booking.NewKitchenBooking(
			uuid.Nil, nil,
			time.Now(), mustTime(t, "09:00"), mustTime(t, "10:00"),
			nil, 2500, "USD", booking.TypeChef,
		)
		assert.ErrorIs(t, err, booking.ErrMissingKitchen)
	})

	t.Run("inverted time range", func(t *testing.T) {
		_, err := booking.NewKitchenBooking(
			uuid.New(), nil,
			time.Now(), mustTime(t, "13:00"), mustTime(t, "09:00"),
			nil, 2500, "USD", booking.TypeChef,
		)
		assert.ErrorIs(t, err, booking.ErrInvalidTimeRange)
	})
}

func TestNewPortalBooking(t *testing.T) {
	b, err := booking.NewPortalBooking(
		uuid.New(),
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		mustTime(t, "10:00"), mustTime(t, "12:00"),
		2500, "USD",
		booking.ExternalContact{Name: "Dana", Email: "dana@example.com", Phone: "555-0101"},
	)
	require.NoError(t, err)

	assert.Nil(t, b.ChefID())
	assert.Equal(t, booking.TypePortal, b.BookingType())
	require.NotNil(t, b.ExternalContact())
	assert.Equal(t, "Dana", b.ExternalContact().Name)
}

func TestFinalize(t *testing.T) {
	b := newChefBooking(t)
	items := []booking.StorageItem{{ID: uuid.New(), Name: "Dry shelf", TotalPriceCents: 2000}}

	b.Finalize(12600, 600, items, nil)

	assert.Equal(t, int64(12600), b.TotalPriceCents())
	assert.Equal(t, int64(600), b.ServiceFeeCents())
	require.Len(t, b.StorageItems(), 1)
	assert.Empty(t, b.EquipmentItems())
}

func TestStatusTransitions(t *testing.T) {
	t.Run("confirm pending", func(t *testing.T) {
		b := newChefBooking(t)
		require.NoError(t, b.Confirm())
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("cannot confirm cancelled", func(t *testing.T) {
		b := newChefBooking(t)
		b.Cancel()
		assert.ErrorIs(t, b.Confirm(), booking.ErrInvalidStatus)
	})

	t.Run("cancelled stops counting toward capacity", func(t *testing.T) {
		b := newChefBooking(t)
		assert.True(t, b.Status().CountsTowardCapacity())
		b.Cancel()
		assert.False(t, b.Status().CountsTowardCapacity())
	})
}
