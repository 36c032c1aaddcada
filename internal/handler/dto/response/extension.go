package response

import (
	"kitchenhub/internal/domain/booking"
	"kitchenhub/internal/usecase/commands"

	"github.com/google/uuid"
)

type StorageBookingResponse struct {
	ID               uuid.UUID `json:"id"`
	KitchenBookingID uuid.UUID `json:"kitchenBookingId"`
	ListingID        uuid.UUID `json:"listingId"`
	ListingName      string    `json:"listingName"`
	StartDate        string    `json:"startDate"`
	EndDate          string    `json:"endDate"`
	PricingModel     string    `json:"pricingModel"`
	TotalPriceCents  int64     `json:"totalPriceCents"`
	ServiceFeeCents  int64     `json:"serviceFeeCents"`
	Status           string    `json:"status"`
}

type ExtendStorageBookingResponse struct {
	Booking        *StorageBookingResponse `json:"booking"`
	ExtensionDays  int                     `json:"extensionDays"`
	AddedBaseCents int64                   `json:"addedBaseCents"`
	AddedFeeCents  int64                   `json:"addedFeeCents"`
	AddedTotal     int64                   `json:"addedTotalCents"`
}

type PendingExtensionResponse struct {
	ID               uuid.UUID `json:"id"`
	StorageBookingID uuid.UUID `json:"storageBookingId"`
	PaymentSessionID string    `json:"paymentSessionId"`
	NewEndDate       string    `json:"newEndDate"`
	PriceCents       int64     `json:"priceCents"`
	Status           string    `json:"status"`
}

func FromStorageBookingSnapshot(snap *commands.StorageBookingSnapshot) *StorageBookingResponse {
	return &StorageBookingResponse{
		ID:               snap.ID,
		KitchenBookingID: snap.KitchenBookingID,
		ListingID:        snap.ListingID,
		ListingName:      snap.ListingName,
		StartDate:        booking.FormatDate(snap.StartDate),
		EndDate:          booking.FormatDate(snap.EndDate),
		PricingModel:     snap.PricingModel.String(),
		TotalPriceCents:  snap.TotalPriceCents,
		ServiceFeeCents:  snap.ServiceFeeCents,
		Status:           snap.Status,
	}
}

func FromExtendResult(result *commands.ExtendStorageBookingResult) *ExtendStorageBookingResponse {
	return &ExtendStorageBookingResponse{
		Booking:        FromStorageBookingSnapshot(result.Booking),
		ExtensionDays:  result.ExtensionDays,
		AddedBaseCents: result.AddedBaseCents,
		AddedFeeCents:  result.AddedFeeCents,
		AddedTotal:     result.AddedTotal,
	}
}

func FromPendingExtension(ext *commands.PendingExtension) *PendingExtensionResponse {
	return &PendingExtensionResponse{
		ID:               ext.ID,
		StorageBookingID: ext.StorageBookingID,
		PaymentSessionID: ext.PaymentSessionID,
		NewEndDate:       booking.FormatDate(ext.NewEndDate),
		PriceCents:       ext.PriceCents,
		Status:           ext.Status,
	}
}
