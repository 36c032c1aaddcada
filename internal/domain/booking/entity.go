package booking

import (
	"errors"
	"time"

	"kitchenhub/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrMissingKitchen   = errors.New("kitchen id is required")
	ErrInvalidStatus    = errors.New("invalid booking status")
)

// ExternalContact carries the requester identity for portal bookings, which
// have no chef account behind them.
type ExternalContact struct {
	Name  string
	Email string
	Phone string
}

// KitchenBooking is the aggregate root of one booking: the kitchen slot
// reservation plus the denormalized summaries of its storage and equipment
// addons. It is created with zero totals and finalized once addon pricing is
// known; a persisted row with TotalPrice 0 is still materializing.
type KitchenBooking struct {
	id              uuid.UUID
	kitchenID       uuid.UUID
	chefID          *uuid.UUID
	bookingDate     time.Time
	startTime       schedule.TimeOfDay
	endTime         schedule.TimeOfDay
	status          Status
	bookingType     Type
	totalPriceCents int64
	serviceFeeCents int64
	hourlyRateCents int64
	durationHours   float64
	currency        string
	storageItems    []StorageItem
	equipmentItems  []EquipmentItem
	selectedSlots   []schedule.TimeOfDay
	externalContact *ExternalContact
	createdAt       time.Time
	updatedAt       time.Time
}

// NewKitchenBooking builds a draft chef booking. When the caller supplies no
// explicit slot list, the contiguous hourly buckets spanning [start, end)
// are derived; explicit lists allow non-contiguous multi-slot bookings.
func NewKitchenBooking(
	kitchenID uuid.UUID,
	chefID *uuid.UUID,
	bookingDate time.Time,
	start, end schedule.TimeOfDay,
	slots []schedule.TimeOfDay,
	hourlyRateCents int64,
	currency string,
	bookingType Type,
) (*KitchenBooking, error) {
	if kitchenID == uuid.Nil {
		return nil, ErrMissingKitchen
	}
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}
	if len(slots) == 0 {
		slots = schedule.SlotsSpanning(start, end)
	}

	return &KitchenBooking{
		id:              uuid.New(),
		kitchenID:       kitchenID,
		chefID:          chefID,
		bookingDate:     bookingDate,
		startTime:       start,
		endTime:         end,
		status:          StatusPending,
		bookingType:     bookingType,
		hourlyRateCents: hourlyRateCents,
		durationHours:   start.DurationHours(end),
		currency:        currency,
		selectedSlots:   slots,
	}, nil
}

// NewPortalBooking is the manager-initiated path: no chef, external contact
// flattened onto the row, access gating skipped by the caller.
func NewPortalBooking(
	kitchenID uuid.UUID,
	bookingDate time.Time,
	start, end schedule.TimeOfDay,
	hourlyRateCents int64,
	currency string,
	contact ExternalContact,
) (*KitchenBooking, error) {
	b, err := NewKitchenBooking(kitchenID, nil, bookingDate, start, end, nil, hourlyRateCents, currency, TypePortal)
	if err != nil {
		return nil, err
	}
	b.externalContact = &contact
	return b, nil
}

// Finalize records the fully priced totals and addon summaries on the draft.
func (b *KitchenBooking) Finalize(totalPriceCents, serviceFeeCents int64, storage []StorageItem, equipment []EquipmentItem) {
	b.totalPriceCents = totalPriceCents
	b.serviceFeeCents = serviceFeeCents
	b.storageItems = storage
	b.equipmentItems = equipment
}

func (b *KitchenBooking) Confirm() error {
	if b.status == StatusCancelled {
		return ErrInvalidStatus
	}
	b.status = StatusConfirmed
	return nil
}

func (b *KitchenBooking) Cancel() {
	b.status = StatusCancelled
}

func (b *KitchenBooking) ID() uuid.UUID                     { return b.id }
func (b *KitchenBooking) KitchenID() uuid.UUID              { return b.kitchenID }
func (b *KitchenBooking) ChefID() *uuid.UUID                { return b.chefID }
func (b *KitchenBooking) BookingDate() time.Time            { return b.bookingDate }
func (b *KitchenBooking) StartTime() schedule.TimeOfDay     { return b.startTime }
func (b *KitchenBooking) EndTime() schedule.TimeOfDay       { return b.endTime }
func (b *KitchenBooking) Status() Status                    { return b.status }
func (b *KitchenBooking) BookingType() Type                 { return b.bookingType }
func (b *KitchenBooking) TotalPriceCents() int64            { return b.totalPriceCents }
func (b *KitchenBooking) ServiceFeeCents() int64            { return b.serviceFeeCents }
func (b *KitchenBooking) HourlyRateCents() int64            { return b.hourlyRateCents }
func (b *KitchenBooking) DurationHours() float64            { return b.durationHours }
func (b *KitchenBooking) Currency() string                  { return b.currency }
func (b *KitchenBooking) StorageItems() []StorageItem       { return b.storageItems }
func (b *KitchenBooking) EquipmentItems() []EquipmentItem   { return b.equipmentItems }
func (b *KitchenBooking) SelectedSlots() []schedule.TimeOfDay { return b.selectedSlots }
func (b *KitchenBooking) ExternalContact() *ExternalContact { return b.externalContact }
func (b *KitchenBooking) CreatedAt() time.Time              { return b.createdAt }
func (b *KitchenBooking) UpdatedAt() time.Time              { return b.updatedAt }
