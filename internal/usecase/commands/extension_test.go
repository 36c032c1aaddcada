//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"kitchenhub/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type extensionFixture struct {
	storageBookingID uuid.UUID
	listingID        uuid.UUID
	endDate          time.Time

	storage    *fakeStorageRepo
	bookings   *fakeBookingRepo
	listings   *fakeListingReads
	extensions *fakeExtensionRepo

	svc commands.ExtensionCommands
}

func newExtensionFixture(t *testing.T) *extensionFixture {
	t.Helper()

	f := &extensionFixture{
		storageBookingID: uuid.New(),
		listingID:        uuid.New(),
		endDate:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		bookings:         &fakeBookingRepo{},
		extensions:       newFakeExtensionRepo(),
	}
	f.storage = &fakeStorageRepo{
		snapshots: map[uuid.UUID]*commands.StorageBookingSnapshot{
			f.storageBookingID: {
				ID:               f.storageBookingID,
				KitchenBookingID: uuid.New(),
				ListingID:        f.listingID,
				ListingName:      "Walk-in shelf",
				StartDate:        f.endDate.AddDate(0, 0, -5),
				EndDate:          f.endDate,
				PricingModel:     "daily",
				TotalPriceCents:  5250,
				ServiceFeeCents:  250,
				Status:           commands.StorageBookingStatusActive,
			},
		},
	}
	f.listings = &fakeListingReads{
		storage: map[uuid.UUID]*commands.StorageListingSnapshot{
			f.listingID: {
				ID:                     f.listingID,
				Name:                   "Walk-in shelf",
				BasePriceCents:         1000,
				PricingModel:           "daily",
				MinimumBookingDuration: 2,
			},
		},
	}

	f.svc = commands.NewExtensionCommands(
		f.storage,
		f.bookings,
		f.listings,
		f.extensions,
		fakeTxRunner{},
		nil,
		testBookingConfig(),
		testLogger(),
	)
	return f
}

func TestExtendStorageBooking(t *testing.T) {
	t.Run("adds the incremental amount on top of existing totals", func(t *testing.T) {
		f := newExtensionFixture(t)
		newEnd := f.endDate.AddDate(0, 0, 3)

		result, err := f.svc.ExtendStorageBooking(context.Background(), f.storageBookingID, newEnd)
		require.NoError(t, err)

		// 3 days at 1000 = 3000 base, 5% fee = 150.
		assert.Equal(t, 3, result.ExtensionDays)
		assert.Equal(t, int64(3000), result.AddedBaseCents)
		assert.Equal(t, int64(150), result.AddedFeeCents)
		assert.Equal(t, int64(3150), result.AddedTotal)

		assert.Equal(t, newEnd, f.storage.appliedEnd)
		assert.Equal(t, int64(3150), f.storage.appliedTotal)
		assert.Equal(t, int64(150), f.storage.appliedFee)

		// Updated snapshot reflects the additive write.
		assert.Equal(t, int64(5250+3150), result.Booking.TotalPriceCents)
		assert.Equal(t, newEnd, result.Booking.EndDate)
	})

	t.Run("mirrors the new end date into the booking summary", func(t *testing.T) {
		f := newExtensionFixture(t)
		newEnd := f.endDate.AddDate(0, 0, 3)

		_, err := f.svc.ExtendStorageBooking(context.Background(), f.storageBookingID, newEnd)
		require.NoError(t, err)

		require.Len(t, f.bookings.mirrorCalls, 1)
		assert.Equal(t, f.storageBookingID, f.bookings.mirrorCalls[0].storageBookingID)
		assert.Equal(t, "2026-03-13", f.bookings.mirrorCalls[0].endDate)
		assert.Equal(t, int64(5250+3150), f.bookings.mirrorCalls[0].totalPriceCents)
	})

	t.Run("mirror failure does not fail the extension", func(t *testing.T) {
		f := newExtensionFixture(t)
		f.bookings.mirrorErr = notFoundErr("summary missing")

		_, err := f.svc.ExtendStorageBooking(context.Background(), f.storageBookingID, f.endDate.AddDate(0, 0, 3))
		require.NoError(t, err)
	})

	t.Run("new end date must move forward", func(t *testing.T) {
		f := newExtensionFixture(t)

		_, err := f.svc.ExtendStorageBooking(context.Background(), f.storageBookingID, f.endDate)
		assert.ErrorIs(t, err, commands.ErrInvalidExtension)

		_, err = f.svc.ExtendStorageBooking(context.Background(), f.storageBookingID, f.endDate.AddDate(0, 0, -1))
		assert.ErrorIs(t, err, commands.ErrInvalidExtension)
	})

	t.Run("extension below the listing minimum is rejected", func(t *testing.T) {
		f := newExtensionFixture(t)

		// Listing minimum is 2 days.
		_, err := f.svc.ExtendStorageBooking(context.Background(), f.storageBookingID, f.endDate.AddDate(0, 0, 1))
		assert.ErrorIs(t, err, commands.ErrBelowMinimumDuration)
		assert.Zero(t, f.storage.appliedTotal)
	})

	t.Run("unknown storage booking", func(t *testing.T) {
		f := newExtensionFixture(t)

		_, err := f.svc.ExtendStorageBooking(context.Background(), uuid.New(), f.endDate.AddDate(0, 0, 3))
		assert.ErrorIs(t, err, commands.ErrStorageBookingNotFound)
	})
}

func TestRequestStorageExtension(t *testing.T) {
	t.Run("records a pending extension without touching the booking", func(t *testing.T) {
		f := newExtensionFixture(t)
		newEnd := f.endDate.AddDate(0, 0, 3)

		ext, err := f.svc.RequestStorageExtension(context.Background(), f.storageBookingID, newEnd, "sess_123")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, ext.ID)
		assert.Equal(t, commands.ExtensionStatusPending, ext.Status)
		assert.Equal(t, int64(3150), ext.PriceCents)
		// Booking untouched until completion.
		assert.Zero(t, f.storage.appliedTotal)
	})

	t.Run("quote validation applies up front", func(t *testing.T) {
		f := newExtensionFixture(t)

		_, err := f.svc.RequestStorageExtension(context.Background(), f.storageBookingID, f.endDate.AddDate(0, 0, 1), "sess_123")
		assert.ErrorIs(t, err, commands.ErrBelowMinimumDuration)
	})
}

func TestCompleteStorageExtension(t *testing.T) {
	t.Run("successful payment applies the extension", func(t *testing.T) {
		f := newExtensionFixture(t)
		newEnd := f.endDate.AddDate(0, 0, 3)
		ext, err := f.svc.RequestStorageExtension(context.Background(), f.storageBookingID, newEnd, "sess_ok")
		require.NoError(t, err)

		result, err := f.svc.CompleteStorageExtension(context.Background(), "sess_ok", true)
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, int64(3150), result.AddedTotal)
		assert.Equal(t, newEnd, f.storage.appliedEnd)
		assert.Equal(t, commands.ExtensionStatusCompleted, f.extensions.statuses[ext.ID])
	})

	t.Run("failed payment marks the extension failed", func(t *testing.T) {
		f := newExtensionFixture(t)
		ext, err := f.svc.RequestStorageExtension(context.Background(), f.storageBookingID, f.endDate.AddDate(0, 0, 3), "sess_bad")
		require.NoError(t, err)

		result, err := f.svc.CompleteStorageExtension(context.Background(), "sess_bad", false)
		require.NoError(t, err)
		assert.Nil(t, result)

		assert.Equal(t, commands.ExtensionStatusFailed, f.extensions.statuses[ext.ID])
		assert.Zero(t, f.storage.appliedTotal)
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newExtensionFixture(t)

		_, err := f.svc.CompleteStorageExtension(context.Background(), "sess_missing", true)
		assert.ErrorIs(t, err, commands.ErrExtensionNotFound)
	})

	t.Run("already resolved extension is rejected", func(t *testing.T) {
		f := newExtensionFixture(t)
		_, err := f.svc.RequestStorageExtension(context.Background(), f.storageBookingID, f.endDate.AddDate(0, 0, 3), "sess_once")
		require.NoError(t, err)

		_, err = f.svc.CompleteStorageExtension(context.Background(), "sess_once", true)
		require.NoError(t, err)

		_, err = f.svc.CompleteStorageExtension(context.Background(), "sess_once", true)
		assert.ErrorIs(t, err, commands.ErrExtensionAlreadyResolved)
	})
}
