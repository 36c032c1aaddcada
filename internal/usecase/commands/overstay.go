package commands

import (
	"context"
	"log/slog"
	"time"

	"kitchenhub/internal/domain/booking"
	"kitchenhub/internal/domain/pricing"
	"kitchenhub/internal/infra"
	"kitchenhub/internal/infra/db"
	"kitchenhub/internal/pkg/clock"
	"kitchenhub/internal/pkg/config"
	"kitchenhub/internal/pkg/errs"
	"kitchenhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOverstayRecordNotFound  = errs.New("overstay record not found")
	ErrOverstayAlreadyResolved = errs.New("overstay record already resolved")
)

// OverstayCommands implements the approval-gated overstay flow: a sweep only
// detects and records candidates; charging requires an explicit manager
// approval per record. No financial mutation happens on the sweep itself.
type OverstayCommands interface {
	DetectOverstays(ctx context.Context) ([]OverstayRecord, error)
	ListDetected(ctx context.Context) ([]OverstayRecord, error)
	ApproveOverstayCharge(ctx context.Context, recordID uuid.UUID) (*OverstayRecord, error)
	WaiveOverstay(ctx context.Context, recordID uuid.UUID) (*OverstayRecord, error)
}

type overstayCommandsImpl struct {
	storage   StorageBookingRepository
	bookings  BookingRepository
	listings  ListingReads
	overstays OverstayRepository
	tx        shared.TxRunner
	dbx       db.DBTX
	clock     clock.Clock
	cfg       config.BookingConfig
	logger    *slog.Logger
}

func NewOverstayCommands(
	storage StorageBookingRepository,
	bookings BookingRepository,
	listings ListingReads,
	overstays OverstayRepository,
	tx shared.TxRunner,
	dbx db.DBTX,
	clk clock.Clock,
	cfg config.BookingConfig,
	logger *slog.Logger,
) OverstayCommands {
	return &overstayCommandsImpl{
		storage:   storage,
		bookings:  bookings,
		listings:  listings,
		overstays: overstays,
		tx:        tx,
		dbx:       dbx,
		clock:     clk,
		cfg:       cfg,
		logger:    logger,
	}
}

// DetectOverstays sweeps storage bookings whose end date has elapsed and
// records a penalty candidate for each, priced at double the per-day rate and
// capped at the configured maximum. One bad row never halts the sweep.
func (s *overstayCommandsImpl) DetectOverstays(ctx context.Context) ([]OverstayRecord, error) {
	now := s.clock.Now().UTC()

	overdue, err := s.storage.FindOverdue(ctx, s.dbx, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	var detected []OverstayRecord
	for _, snap := range overdue {
		rec, err := s.detectOne(ctx, snap, now)
		if err != nil {
			s.logger.Error("overstay detection failed for booking",
				"storage_booking_id", snap.ID,
				"error", err)
			continue
		}
		if rec != nil {
			detected = append(detected, *rec)
		}
	}
	return detected, nil
}

func (s *overstayCommandsImpl) detectOne(ctx context.Context, snap StorageBookingSnapshot, now time.Time) (*OverstayRecord, error) {
	open, err := s.overstays.HasOpenRecord(ctx, s.dbx, snap.ID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, nil
	}

	daysOverdue := int(now.Sub(snap.EndDate).Hours() / 24)
	if daysOverdue < 1 {
		return nil, nil
	}

	daysCharged := daysOverdue
	if daysCharged > s.cfg.OverstayMaxDaysToCharge {
		daysCharged = s.cfg.OverstayMaxDaysToCharge
	}

	listing, err := s.listings.StorageListingByID(ctx, s.dbx, snap.ListingID)
	if err != nil {
		return nil, err
	}
	perDay := pricing.PerDayRate(snap.PricingModel, listing.BasePriceCents)

	rec := OverstayRecord{
		StorageBookingID: snap.ID,
		DaysOverdue:      daysOverdue,
		DaysCharged:      daysCharged,
		PenaltyCents:     pricing.OverstayPenalty(perDay, daysCharged),
		Status:           OverstayStatusDetected,
		DetectedAt:       now,
	}
	id, err := s.overstays.InsertDetected(ctx, s.dbx, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	return &rec, nil
}

func (s *overstayCommandsImpl) ListDetected(ctx context.Context) ([]OverstayRecord, error) {
	records, err := s.overstays.ListByStatus(ctx, s.dbx, OverstayStatusDetected)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return records, nil
}

// ApproveOverstayCharge applies a detected penalty: the booking's end date
// moves forward by the charged days and the penalty is added to its totals,
// mirroring the additive update pattern of extensions.
func (s *overstayCommandsImpl) ApproveOverstayCharge(ctx context.Context, recordID uuid.UUID) (*OverstayRecord, error) {
	rec, err := s.resolveOpenRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	snap, err := s.storage.FindByID(ctx, s.dbx, rec.StorageBookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrStorageBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	newEndDate := snap.EndDate.AddDate(0, 0, rec.DaysCharged)

	err = s.tx.Within(ctx, func(tx db.DBTX) error {
		if applyErr := s.storage.ApplyExtension(ctx, tx, snap.ID, newEndDate, rec.PenaltyCents, 0); applyErr != nil {
			return errs.Mark(applyErr, ErrDatabaseOperationFailed)
		}
		return s.overstays.UpdateStatus(ctx, tx, rec.ID, OverstayStatusCharged)
	})
	if err != nil {
		return nil, err
	}

	if mirrorErr := s.bookings.UpdateStorageItemEntry(
		ctx,
		s.dbx,
		snap.KitchenBookingID,
		snap.ID,
		booking.FormatDate(newEndDate),
		snap.TotalPriceCents+rec.PenaltyCents,
	); mirrorErr != nil {
		s.logger.Warn("failed to mirror overstay charge into booking summary",
			"storage_booking_id", snap.ID,
			"error", mirrorErr)
	}

	rec.Status = OverstayStatusCharged
	return rec, nil
}

func (s *overstayCommandsImpl) WaiveOverstay(ctx context.Context, recordID uuid.UUID) (*OverstayRecord, error) {
	rec, err := s.resolveOpenRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	err = s.tx.Within(ctx, func(tx db.DBTX) error {
		return s.overstays.UpdateStatus(ctx, tx, rec.ID, OverstayStatusWaived)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	rec.Status = OverstayStatusWaived
	return rec, nil
}

func (s *overstayCommandsImpl) resolveOpenRecord(ctx context.Context, recordID uuid.UUID) (*OverstayRecord, error) {
	rec, err := s.overstays.FindByID(ctx, s.dbx, recordID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOverstayRecordNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if rec.Status != OverstayStatusDetected {
		return nil, ErrOverstayAlreadyResolved
	}
	return rec, nil
}
