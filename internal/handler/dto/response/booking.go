package response

import (
	"time"

	"kitchenhub/internal/domain/booking"
	"kitchenhub/internal/usecase/commands"
	"kitchenhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID              uuid.UUID               `json:"id"`
	KitchenID       uuid.UUID               `json:"kitchenId"`
	KitchenName     string                  `json:"kitchenName"`
	ChefID          *uuid.UUID              `json:"chefId,omitempty"`
	BookingDate     string                  `json:"bookingDate"`
	StartTime       string                  `json:"startTime"`
	EndTime         string                  `json:"endTime"`
	Status          string                  `json:"status"`
	BookingType     string                  `json:"bookingType"`
	TotalPriceCents int64                   `json:"totalPriceCents"`
	ServiceFeeCents int64                   `json:"serviceFeeCents"`
	HourlyRateCents int64                   `json:"hourlyRateCents"`
	DurationHours   float64                 `json:"durationHours"`
	Currency        string                  `json:"currency"`
	StorageItems    []booking.StorageItem   `json:"storageItems"`
	EquipmentItems  []booking.EquipmentItem `json:"equipmentItems"`
	SelectedSlots   []string                `json:"selectedSlots"`
	ContactName     *string                 `json:"contactName,omitempty"`
	ContactEmail    *string                 `json:"contactEmail,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

type AddonWarningResponse struct {
	Kind      string    `json:"kind"`
	ListingID uuid.UUID `json:"listingId"`
	Reason    string    `json:"reason"`
}

// CreateBookingResponse carries the booking plus any addon items that could
// not be attached. A non-empty warnings list still means the booking exists.
type CreateBookingResponse struct {
	Booking  *BookingResponse       `json:"booking"`
	Warnings []AddonWarningResponse `json:"warnings,omitempty"`
}

type BookingListResponse struct {
	ID              uuid.UUID `json:"id"`
	KitchenID       uuid.UUID `json:"kitchenId"`
	KitchenName     string    `json:"kitchenName"`
	BookingDate     string    `json:"bookingDate"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              rm.ID,
		KitchenID:       rm.KitchenID,
		KitchenName:     rm.KitchenName,
		ChefID:          rm.ChefID,
		BookingDate:     booking.FormatDate(rm.BookingDate),
		StartTime:       rm.StartTime,
		EndTime:         rm.EndTime,
		Status:          rm.Status,
		BookingType:     rm.BookingType,
		TotalPriceCents: rm.TotalPriceCents,
		ServiceFeeCents: rm.ServiceFeeCents,
		HourlyRateCents: rm.HourlyRateCents,
		DurationHours:   rm.DurationHours,
		Currency:        rm.Currency,
		StorageItems:    rm.StorageItems,
		EquipmentItems:  rm.EquipmentItems,
		SelectedSlots:   rm.SelectedSlots,
		ContactName:     rm.ContactName,
		ContactEmail:    rm.ContactEmail,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func FromCreateBookingResult(result *commands.CreateBookingResult) *CreateBookingResponse {
	warnings := make([]AddonWarningResponse, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warnings = append(warnings, AddonWarningResponse{
			Kind:      w.Kind,
			ListingID: w.ListingID,
			Reason:    w.Reason,
		})
	}
	resp := &CreateBookingResponse{
		Booking: FromBookingView(result.Booking),
	}
	if len(warnings) > 0 {
		resp.Warnings = warnings
	}
	return resp
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:              rm.ID,
		KitchenID:       rm.KitchenID,
		KitchenName:     rm.KitchenName,
		BookingDate:     booking.FormatDate(rm.BookingDate),
		StartTime:       rm.StartTime,
		EndTime:         rm.EndTime,
		Status:          rm.Status,
		TotalPriceCents: rm.TotalPriceCents,
		CreatedAt:       rm.CreatedAt,
	}
}
