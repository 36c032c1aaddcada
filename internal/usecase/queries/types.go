package queries

import (
	"context"
	"time"

	"kitchenhub/internal/domain/booking"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID              uuid.UUID               `json:"id"`
	KitchenID       uuid.UUID               `json:"kitchen_id"`
	KitchenName     string                  `json:"kitchen_name"`
	ChefID          *uuid.UUID              `json:"chef_id,omitempty"`
	BookingDate     time.Time               `json:"booking_date"`
	StartTime       string                  `json:"start_time"`
	EndTime         string                  `json:"end_time"`
	Status          string                  `json:"status"`
	BookingType     string                  `json:"booking_type"`
	TotalPriceCents int64                   `json:"total_price_cents"`
	ServiceFeeCents int64                   `json:"service_fee_cents"`
	HourlyRateCents int64                   `json:"hourly_rate_cents"`
	DurationHours   float64                 `json:"duration_hours"`
	Currency        string                  `json:"currency"`
	StorageItems    []booking.StorageItem   `json:"storage_items"`
	EquipmentItems  []booking.EquipmentItem `json:"equipment_items"`
	SelectedSlots   []string                `json:"selected_slots"`
	ContactName     *string                 `json:"contact_name,omitempty"`
	ContactEmail    *string                 `json:"contact_email,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

type BookingListItem struct {
	ID              uuid.UUID `json:"id"`
	KitchenID       uuid.UUID `json:"kitchen_id"`
	KitchenName     string    `json:"kitchen_name"`
	BookingDate     time.Time `json:"booking_date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByChefID(ctx context.Context, chefID uuid.UUID, limit, offset int32) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByChef(ctx context.Context, chefID uuid.UUID, limit, offset int32) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) ListByChef(ctx context.Context, chefID uuid.UUID, limit, offset int32) ([]*BookingListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.store.FindByChefID(ctx, chefID, limit, offset)
}
