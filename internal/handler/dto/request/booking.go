package request

import (
	"time"

	"kitchenhub/internal/domain/booking"
	"kitchenhub/internal/domain/schedule"
	"kitchenhub/internal/usecase/commands"

	"github.com/google/uuid"
)

type StorageSelectionRequest struct {
	ListingID uuid.UUID `json:"listingId" binding:"required"`
	StartDate *string   `json:"startDate,omitempty"`
	EndDate   *string   `json:"endDate,omitempty"`
}

type EquipmentSelectionRequest struct {
	ListingID uuid.UUID `json:"listingId" binding:"required"`
}

type CreateBookingRequest struct {
	KitchenID     uuid.UUID                   `json:"kitchenId" binding:"required"`
	BookingDate   string                      `json:"bookingDate" binding:"required"`
	StartTime     string                      `json:"startTime" binding:"required"`
	EndTime       string                      `json:"endTime" binding:"required"`
	SelectedSlots []string                    `json:"selectedSlots,omitempty"`
	Storage       []StorageSelectionRequest   `json:"storage,omitempty"`
	Equipment     []EquipmentSelectionRequest `json:"equipment,omitempty"`
}

func (r CreateBookingRequest) ToCommand(chefID uuid.UUID) (commands.CreateBookingRequest, error) {
	date, err := time.Parse(booking.DateLayout, r.BookingDate)
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}
	start, err := schedule.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}
	end, err := schedule.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}

	var slots []schedule.TimeOfDay
	for _, raw := range r.SelectedSlots {
		slot, err := schedule.ParseTimeOfDay(raw)
		if err != nil {
			return commands.CreateBookingRequest{}, err
		}
		slots = append(slots, slot)
	}

	storage := make([]commands.StorageSelection, 0, len(r.Storage))
	for _, sel := range r.Storage {
		converted := commands.StorageSelection{ListingID: sel.ListingID}
		if sel.StartDate != nil {
			converted.StartDate, err = time.Parse(booking.DateLayout, *sel.StartDate)
			if err != nil {
				return commands.CreateBookingRequest{}, err
			}
		}
		if sel.EndDate != nil {
			converted.EndDate, err = time.Parse(booking.DateLayout, *sel.EndDate)
			if err != nil {
				return commands.CreateBookingRequest{}, err
			}
		}
		storage = append(storage, converted)
	}

	equipment := make([]commands.EquipmentSelection, 0, len(r.Equipment))
	for _, sel := range r.Equipment {
		equipment = append(equipment, commands.EquipmentSelection{ListingID: sel.ListingID})
	}

	return commands.CreateBookingRequest{
		KitchenID:     r.KitchenID,
		ChefID:        &chefID,
		BookingDate:   date,
		StartTime:     start,
		EndTime:       end,
		SelectedSlots: slots,
		Storage:       storage,
		Equipment:     equipment,
	}, nil
}

type CreatePortalBookingRequest struct {
	KitchenID    uuid.UUID `json:"kitchenId" binding:"required"`
	BookingDate  string    `json:"bookingDate" binding:"required"`
	StartTime    string    `json:"startTime" binding:"required"`
	EndTime      string    `json:"endTime" binding:"required"`
	ContactName  string    `json:"contactName" binding:"required"`
	ContactEmail string    `json:"contactEmail" binding:"required,email"`
	ContactPhone string    `json:"contactPhone,omitempty"`
}

func (r CreatePortalBookingRequest) ToCommand() (commands.CreatePortalBookingRequest, error) {
	date, err := time.Parse(booking.DateLayout, r.BookingDate)
	if err != nil {
		return commands.CreatePortalBookingRequest{}, err
	}
	start, err := schedule.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return commands.CreatePortalBookingRequest{}, err
	}
	end, err := schedule.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return commands.CreatePortalBookingRequest{}, err
	}

	return commands.CreatePortalBookingRequest{
		KitchenID:    r.KitchenID,
		BookingDate:  date,
		StartTime:    start,
		EndTime:      end,
		ContactName:  r.ContactName,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
	}, nil
}
