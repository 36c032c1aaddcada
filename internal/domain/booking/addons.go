package booking

import (
	"time"

	"github.com/google/uuid"
)

// StorageItem is the denormalized summary of one storage booking, cached as
// jsonb on the owning kitchen booking. The storage_bookings row stays the
// source of truth; this cache may transiently lag behind it.
type StorageItem struct {
	ID              uuid.UUID `json:"id"`
	ListingID       uuid.UUID `json:"listingId"`
	Name            string    `json:"name"`
	TotalPriceCents int64     `json:"totalPrice"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
}

// EquipmentItem mirrors one equipment booking the same way.
type EquipmentItem struct {
	ID              uuid.UUID `json:"id"`
	ListingID       uuid.UUID `json:"listingId"`
	Name            string    `json:"name"`
	TotalPriceCents int64     `json:"totalPrice"`
}

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
