package commands

import (
	"context"
	"log/slog"
	"math"
	"time"

	"kitchenhub/internal/domain/booking"
	"kitchenhub/internal/domain/pricing"
	"kitchenhub/internal/domain/schedule"
	"kitchenhub/internal/infra"
	"kitchenhub/internal/infra/db"
	"kitchenhub/internal/pkg/config"
	"kitchenhub/internal/pkg/errs"
	"kitchenhub/internal/usecase/queries"
	"kitchenhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrKitchenNotFound         = errs.New("kitchen not found")
	ErrChefIDRequired          = errs.New("chef id required")
	ErrInvalidTimeRange        = errs.New("invalid time range")
	ErrKitchenClosed           = errs.New("kitchen closed on requested date")
	ErrOutsideWindow           = errs.New("requested range outside the open window")
	ErrMisalignedSlot          = errs.New("booking must start on an hourly slot boundary")
	ErrSlotUnavailable         = errs.New("slot no longer available")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const equipmentAvailabilityIncluded = "included"

// StorageSelection and EquipmentSelection form the closed request shape the
// orchestrator accepts: no optional-field grab-bags survive past the handler.
type StorageSelection struct {
	ListingID uuid.UUID
	// Zero dates inherit the kitchen booking date (a same-day storage stay).
	StartDate time.Time
	EndDate   time.Time
}

type EquipmentSelection struct {
	ListingID uuid.UUID
}

type CreateBookingRequest struct {
	KitchenID     uuid.UUID
	ChefID        *uuid.UUID
	BookingDate   time.Time
	StartTime     schedule.TimeOfDay
	EndTime       schedule.TimeOfDay
	SelectedSlots []schedule.TimeOfDay
	Storage       []StorageSelection
	Equipment     []EquipmentSelection
}

type CreatePortalBookingRequest struct {
	KitchenID    uuid.UUID
	BookingDate  time.Time
	StartTime    schedule.TimeOfDay
	EndTime      schedule.TimeOfDay
	ContactName  string
	ContactEmail string
	ContactPhone string
}

// AddonFailure records one storage or equipment item that could not be
// attached; the booking itself still succeeds.
type AddonFailure struct {
	Kind      string    `json:"kind"`
	ListingID uuid.UUID `json:"listingId"`
	Reason    string    `json:"reason"`
}

type CreateBookingResult struct {
	Booking  *queries.BookingView
	Warnings []AddonFailure
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error)
	CreatePortalBooking(ctx context.Context, req CreatePortalBookingRequest) (*CreateBookingResult, error)
}

type bookingCommandsImpl struct {
	kitchens       KitchenReads
	listings       ListingReads
	schedules      shared.ScheduleReads
	bookings       BookingRepository
	storage        StorageBookingRepository
	equipment      EquipmentBookingRepository
	gate           *AccessGate
	bookingQueries queries.BookingQueries
	tx             shared.TxRunner
	dbx            db.DBTX
	cfg            config.BookingConfig
	logger         *slog.Logger
}

func NewBookingCommands(
	kitchens KitchenReads,
	listings ListingReads,
	schedules shared.ScheduleReads,
	bookings BookingRepository,
	storage StorageBookingRepository,
	equipment EquipmentBookingRepository,
	gate *AccessGate,
	bookingQueries queries.BookingQueries,
	tx shared.TxRunner,
	dbx db.DBTX,
	cfg config.BookingConfig,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		kitchens:       kitchens,
		listings:       listings,
		schedules:      schedules,
		bookings:       bookings,
		storage:        storage,
		equipment:      equipment,
		gate:           gate,
		bookingQueries: bookingQueries,
		tx:             tx,
		dbx:            dbx,
		cfg:            cfg,
		logger:         logger,
	}
}

// CreateBooking creates a kitchen booking plus its storage and equipment
// addons as one unit. Access, kitchen existence and time validity are hard
// preconditions checked before any write; addon failures are collected as
// warnings and never abort the booking. The capacity recheck and every row
// write run inside a single transaction under the kitchen row lock, so
// concurrent requests for the last slot serialize and the loser gets
// ErrSlotUnavailable.
func (s *bookingCommandsImpl) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error) {
	kitchen, err := s.resolveKitchen(ctx, req.KitchenID)
	if err != nil {
		return nil, err
	}

	if req.ChefID == nil {
		return nil, ErrChefIDRequired
	}

	if err := s.gate.EnsureBookingAccess(ctx, s.dbx, *req.ChefID, kitchen.LocationID); err != nil {
		return nil, err
	}

	entity, err := booking.NewKitchenBooking(
		kitchen.ID,
		req.ChefID,
		req.BookingDate,
		req.StartTime,
		req.EndTime,
		req.SelectedSlots,
		kitchen.HourlyRateCents,
		s.currency(kitchen),
		booking.TypeChef,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	warnings, err := s.persistBooking(ctx, entity, kitchen, req.Storage, req.Equipment)
	if err != nil {
		return nil, err
	}

	return s.buildResult(ctx, entity.ID(), warnings)
}

// CreatePortalBooking is the manager-initiated path: no chef account, no
// access gate, the external contact flattened onto the booking row.
func (s *bookingCommandsImpl) CreatePortalBooking(ctx context.Context, req CreatePortalBookingRequest) (*CreateBookingResult, error) {
	kitchen, err := s.resolveKitchen(ctx, req.KitchenID)
	if err != nil {
		return nil, err
	}

	entity, err := booking.NewPortalBooking(
		kitchen.ID,
		req.BookingDate,
		req.StartTime,
		req.EndTime,
		kitchen.HourlyRateCents,
		s.currency(kitchen),
		booking.ExternalContact{
			Name:  req.ContactName,
			Email: req.ContactEmail,
			Phone: req.ContactPhone,
		},
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	warnings, err := s.persistBooking(ctx, entity, kitchen, nil, nil)
	if err != nil {
		return nil, err
	}

	return s.buildResult(ctx, entity.ID(), warnings)
}

func (s *bookingCommandsImpl) persistBooking(
	ctx context.Context,
	entity *booking.KitchenBooking,
	kitchen *KitchenSnapshot,
	storageSel []StorageSelection,
	equipmentSel []EquipmentSelection,
) ([]AddonFailure, error) {
	var warnings []AddonFailure

	err := s.tx.Within(ctx, func(tx db.DBTX) error {
		warnings = warnings[:0]

		if err := s.bookings.LockKitchen(ctx, tx, kitchen.ID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := s.validateCapacity(ctx, tx, entity); err != nil {
			return err
		}

		kitchenBase := pricing.HourlyPrice(entity.HourlyRateCents(), entity.DurationHours())

		// Provisional row first: addon pricing is not known yet.
		if err := s.bookings.Create(ctx, tx, entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		storageItems, storageTotal, storageWarnings := s.attachStorage(ctx, tx, entity, storageSel)
		equipmentItems, equipmentTotal, equipmentWarnings := s.attachEquipment(ctx, tx, entity, equipmentSel)
		warnings = append(warnings, storageWarnings...)
		warnings = append(warnings, equipmentWarnings...)

		// The fee is always re-derived from the grand total, never summed
		// per component, so rounding cannot drift.
		subtotal := kitchenBase + storageTotal + equipmentTotal
		fee := pricing.ServiceFee(subtotal, s.cfg.ServiceFeeRate)

		entity.Finalize(subtotal+fee, fee, storageItems, equipmentItems)
		if err := s.bookings.FinalizeTotals(ctx, tx, entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return warnings, nil
}

func (s *bookingCommandsImpl) validateCapacity(ctx context.Context, tx db.DBTX, entity *booking.KitchenBooking) error {
	window, open, err := queries.ResolveWindow(ctx, s.schedules, tx, entity.KitchenID(), entity.BookingDate())
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	switch schedule.ValidateRange(window, open, entity.StartTime(), entity.EndTime()) {
	case schedule.ReasonInvalidRange:
		return ErrInvalidTimeRange
	case schedule.ReasonKitchenClosed:
		return ErrKitchenClosed
	case schedule.ReasonOutsideWindow:
		return ErrOutsideWindow
	case schedule.ReasonMisalignedSlot:
		return ErrMisalignedSlot
	}

	slots, err := queries.ResolveSlots(ctx, s.schedules, tx, entity.KitchenID(), entity.BookingDate())
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	byTime := make(map[string]queries.SlotInfo, len(slots))
	for _, slot := range slots {
		byTime[slot.Time] = slot
	}
	for _, sel := range entity.SelectedSlots() {
		info, ok := byTime[sel.String()]
		if !ok {
			return ErrOutsideWindow
		}
		if info.Available <= 0 {
			return ErrSlotUnavailable
		}
	}
	return nil
}

func (s *bookingCommandsImpl) attachStorage(
	ctx context.Context,
	tx db.DBTX,
	entity *booking.KitchenBooking,
	selections []StorageSelection,
) ([]booking.StorageItem, int64, []AddonFailure) {
	var (
		items    []booking.StorageItem
		total    int64
		warnings []AddonFailure
	)

	for _, sel := range selections {
		listing, err := s.listings.StorageListingByID(ctx, tx, sel.ListingID)
		if err != nil {
			warnings = append(warnings, s.addonFailure("storage", sel.ListingID, err))
			continue
		}

		start, end := sel.StartDate, sel.EndDate
		if start.IsZero() {
			start = entity.BookingDate()
		}
		if end.IsZero() {
			end = start
		}

		price, err := s.storagePrice(listing, entity, start, end)
		if err != nil {
			warnings = append(warnings, s.addonFailure("storage", sel.ListingID, err))
			continue
		}

		id, err := s.storage.Create(ctx, tx, CreateStorageBookingParams{
			KitchenBookingID: entity.ID(),
			ListingID:        listing.ID,
			StartDate:        start,
			EndDate:          end,
			PricingModel:     listing.PricingModel,
			TotalPriceCents:  price,
			Status:           StorageBookingStatusActive,
		})
		if err != nil {
			warnings = append(warnings, s.addonFailure("storage", sel.ListingID, err))
			continue
		}

		total += price
		items = append(items, booking.StorageItem{
			ID:              id,
			ListingID:       listing.ID,
			Name:            listing.Name,
			TotalPriceCents: price,
			StartDate:       booking.FormatDate(start),
			EndDate:         booking.FormatDate(end),
		})
	}
	return items, total, warnings
}

func (s *bookingCommandsImpl) attachEquipment(
	ctx context.Context,
	tx db.DBTX,
	entity *booking.KitchenBooking,
	selections []EquipmentSelection,
) ([]booking.EquipmentItem, int64, []AddonFailure) {
	var (
		items    []booking.EquipmentItem
		total    int64
		warnings []AddonFailure
	)

	for _, sel := range selections {
		listing, err := s.listings.EquipmentListingByID(ctx, tx, sel.ListingID)
		if err != nil {
			warnings = append(warnings, s.addonFailure("equipment", sel.ListingID, err))
			continue
		}
		if listing.AvailabilityType == equipmentAvailabilityIncluded {
			continue
		}

		price := listing.BasePriceCents
		if listing.PricingModel == pricing.ModelHourly {
			price = pricing.HourlyPrice(listing.BasePriceCents, entity.DurationHours())
		}

		id, err := s.equipment.Create(ctx, tx, CreateEquipmentBookingParams{
			KitchenBookingID: entity.ID(),
			ListingID:        listing.ID,
			BookingDate:      entity.BookingDate(),
			TotalPriceCents:  price,
			Status:           booking.StatusConfirmed.String(),
		})
		if err != nil {
			warnings = append(warnings, s.addonFailure("equipment", sel.ListingID, err))
			continue
		}

		total += price
		items = append(items, booking.EquipmentItem{
			ID:              id,
			ListingID:       listing.ID,
			Name:            listing.Name,
			TotalPriceCents: price,
		})
	}
	return items, total, warnings
}

func (s *bookingCommandsImpl) storagePrice(
	listing *StorageListingSnapshot,
	entity *booking.KitchenBooking,
	start, end time.Time,
) (int64, error) {
	switch listing.PricingModel {
	case pricing.ModelHourly:
		// Hourly storage rides along with the kitchen booking's duration.
		return pricing.HourlyPrice(listing.BasePriceCents, entity.DurationHours()), nil
	case pricing.ModelDaily:
		return pricing.DailyPrice(listing.BasePriceCents, DaysBetween(start, end), listing.MinimumBookingDuration), nil
	case pricing.ModelMonthlyFlat:
		return pricing.MonthlyFlatPrice(listing.BasePriceCents), nil
	default:
		return 0, pricing.ErrUnknownModel
	}
}

func (s *bookingCommandsImpl) addonFailure(kind string, listingID uuid.UUID, err error) AddonFailure {
	s.logger.Warn("booking addon failed",
		"kind", kind,
		"listing_id", listingID,
		"error", err)
	return AddonFailure{Kind: kind, ListingID: listingID, Reason: err.Error()}
}

func (s *bookingCommandsImpl) resolveKitchen(ctx context.Context, id uuid.UUID) (*KitchenSnapshot, error) {
	kitchen, err := s.kitchens.KitchenByID(ctx, s.dbx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrKitchenNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return kitchen, nil
}

func (s *bookingCommandsImpl) currency(kitchen *KitchenSnapshot) string {
	if kitchen.Currency != "" {
		return kitchen.Currency
	}
	return s.cfg.Currency
}

// Read-after-write: the caller sees persisted state, not the in-memory draft.
func (s *bookingCommandsImpl) buildResult(ctx context.Context, id uuid.UUID, warnings []AddonFailure) (*CreateBookingResult, error) {
	view, err := s.bookingQueries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &CreateBookingResult{Booking: view, Warnings: warnings}, nil
}

// DaysBetween counts billable days in [start, end), rounding a partial
// trailing day up and billing a same-day range as one day.
func DaysBetween(start, end time.Time) int {
	hours := end.Sub(start).Hours()
	if hours <= 0 {
		return 1
	}
	return int(math.Ceil(hours / 24.0))
}
