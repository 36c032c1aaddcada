package commands

import (
	"context"
	"log/slog"
	"time"

	"kitchenhub/internal/domain/booking"
	"kitchenhub/internal/domain/pricing"
	"kitchenhub/internal/infra"
	"kitchenhub/internal/infra/db"
	"kitchenhub/internal/pkg/config"
	"kitchenhub/internal/pkg/errs"
	"kitchenhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrStorageBookingNotFound   = errs.New("storage booking not found")
	ErrListingNotFound          = errs.New("listing not found")
	ErrInvalidExtension         = errs.New("new end date must be after the current end date")
	ErrBelowMinimumDuration     = errs.New("extension shorter than the listing minimum duration")
	ErrExtensionNotFound        = errs.New("pending extension not found")
	ErrExtensionAlreadyResolved = errs.New("pending extension already resolved")
)

type ExtendStorageBookingResult struct {
	Booking        *StorageBookingSnapshot
	ExtensionDays  int
	AddedBaseCents int64
	AddedFeeCents  int64
	AddedTotal     int64
}

type ExtensionCommands interface {
	// ExtendStorageBooking applies an extension immediately (already-paid path).
	ExtendStorageBooking(ctx context.Context, id uuid.UUID, newEndDate time.Time) (*ExtendStorageBookingResult, error)
	// RequestStorageExtension records a pending extension tied to an external
	// payment session; the booking is untouched until the payment confirms.
	RequestStorageExtension(ctx context.Context, id uuid.UUID, newEndDate time.Time, paymentSessionID string) (*PendingExtension, error)
	CompleteStorageExtension(ctx context.Context, paymentSessionID string, succeeded bool) (*ExtendStorageBookingResult, error)
}

type extensionCommandsImpl struct {
	storage    StorageBookingRepository
	bookings   BookingRepository
	listings   ListingReads
	extensions ExtensionRepository
	tx         shared.TxRunner
	dbx        db.DBTX
	cfg        config.BookingConfig
	logger     *slog.Logger
}

func NewExtensionCommands(
	storage StorageBookingRepository,
	bookings BookingRepository,
	listings ListingReads,
	extensions ExtensionRepository,
	tx shared.TxRunner,
	dbx db.DBTX,
	cfg config.BookingConfig,
	logger *slog.Logger,
) ExtensionCommands {
	return &extensionCommandsImpl{
		storage:    storage,
		bookings:   bookings,
		listings:   listings,
		extensions: extensions,
		tx:         tx,
		dbx:        dbx,
		cfg:        cfg,
		logger:     logger,
	}
}

// Extensions are additive: the incremental amount is added to the persisted
// totals, never recomputed from scratch, so the already-paid portion is never
// silently repriced.
func (s *extensionCommandsImpl) ExtendStorageBooking(ctx context.Context, id uuid.UUID, newEndDate time.Time) (*ExtendStorageBookingResult, error) {
	snap, quote, err := s.quoteExtension(ctx, id, newEndDate)
	if err != nil {
		return nil, err
	}

	err = s.tx.Within(ctx, func(tx db.DBTX) error {
		if applyErr := s.storage.ApplyExtension(ctx, tx, id, newEndDate, quote.addedTotal, quote.addedFee); applyErr != nil {
			return errs.Mark(applyErr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Mirror into the denormalized storage_items cache. The normalized row is
	// the source of truth; a failed mirror write only leaves the cache stale.
	s.mirrorExtension(ctx, snap, newEndDate, snap.TotalPriceCents+quote.addedTotal)

	updated, err := s.storage.FindByID(ctx, s.dbx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &ExtendStorageBookingResult{
		Booking:        updated,
		ExtensionDays:  quote.days,
		AddedBaseCents: quote.addedBase,
		AddedFeeCents:  quote.addedFee,
		AddedTotal:     quote.addedTotal,
	}, nil
}

func (s *extensionCommandsImpl) RequestStorageExtension(ctx context.Context, id uuid.UUID, newEndDate time.Time, paymentSessionID string) (*PendingExtension, error) {
	_, quote, err := s.quoteExtension(ctx, id, newEndDate)
	if err != nil {
		return nil, err
	}

	ext := PendingExtension{
		StorageBookingID: id,
		PaymentSessionID: paymentSessionID,
		NewEndDate:       newEndDate,
		PriceCents:       quote.addedTotal,
		Status:           ExtensionStatusPending,
	}
	extID, err := s.extensions.InsertPending(ctx, s.dbx, ext)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	ext.ID = extID
	return &ext, nil
}

func (s *extensionCommandsImpl) CompleteStorageExtension(ctx context.Context, paymentSessionID string, succeeded bool) (*ExtendStorageBookingResult, error) {
	ext, err := s.extensions.FindBySessionID(ctx, s.dbx, paymentSessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrExtensionNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if ext.Status != ExtensionStatusPending {
		return nil, ErrExtensionAlreadyResolved
	}

	if !succeeded {
		err = s.tx.Within(ctx, func(tx db.DBTX) error {
			return s.extensions.UpdateStatus(ctx, tx, ext.ID, ExtensionStatusFailed)
		})
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil, nil
	}

	snap, quote, err := s.quoteExtension(ctx, ext.StorageBookingID, ext.NewEndDate)
	if err != nil {
		return nil, err
	}

	err = s.tx.Within(ctx, func(tx db.DBTX) error {
		if applyErr := s.storage.ApplyExtension(ctx, tx, ext.StorageBookingID, ext.NewEndDate, quote.addedTotal, quote.addedFee); applyErr != nil {
			return errs.Mark(applyErr, ErrDatabaseOperationFailed)
		}
		return s.extensions.UpdateStatus(ctx, tx, ext.ID, ExtensionStatusCompleted)
	})
	if err != nil {
		return nil, err
	}

	s.mirrorExtension(ctx, snap, ext.NewEndDate, snap.TotalPriceCents+quote.addedTotal)

	updated, err := s.storage.FindByID(ctx, s.dbx, ext.StorageBookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &ExtendStorageBookingResult{
		Booking:        updated,
		ExtensionDays:  quote.days,
		AddedBaseCents: quote.addedBase,
		AddedFeeCents:  quote.addedFee,
		AddedTotal:     quote.addedTotal,
	}, nil
}

type extensionQuote struct {
	days       int
	addedBase  int64
	addedFee   int64
	addedTotal int64
}

func (s *extensionCommandsImpl) quoteExtension(ctx context.Context, id uuid.UUID, newEndDate time.Time) (*StorageBookingSnapshot, extensionQuote, error) {
	snap, err := s.storage.FindByID(ctx, s.dbx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, extensionQuote{}, ErrStorageBookingNotFound
		}
		return nil, extensionQuote{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !newEndDate.After(snap.EndDate) {
		return nil, extensionQuote{}, ErrInvalidExtension
	}

	listing, err := s.listings.StorageListingByID(ctx, s.dbx, snap.ListingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, extensionQuote{}, ErrListingNotFound
		}
		return nil, extensionQuote{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	days := DaysBetween(snap.EndDate, newEndDate)
	if days < listing.MinimumBookingDuration {
		return nil, extensionQuote{}, ErrBelowMinimumDuration
	}

	perDay := pricing.PerDayRate(snap.PricingModel, listing.BasePriceCents)
	addedBase := perDay * int64(days)
	addedFee := pricing.ServiceFee(addedBase, s.cfg.ServiceFeeRate)

	return snap, extensionQuote{
		days:       days,
		addedBase:  addedBase,
		addedFee:   addedFee,
		addedTotal: addedBase + addedFee,
	}, nil
}

func (s *extensionCommandsImpl) mirrorExtension(ctx context.Context, snap *StorageBookingSnapshot, newEndDate time.Time, newTotal int64) {
	err := s.bookings.UpdateStorageItemEntry(
		ctx,
		s.dbx,
		snap.KitchenBookingID,
		snap.ID,
		booking.FormatDate(newEndDate),
		newTotal,
	)
	if err != nil {
		s.logger.Warn("failed to mirror storage extension into booking summary",
			"storage_booking_id", snap.ID,
			"kitchen_booking_id", snap.KitchenBookingID,
			"error", err)
	}
}
