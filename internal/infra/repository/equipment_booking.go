package repository

import (
	"context"

	"kitchenhub/internal/infra"
	"kitchenhub/internal/infra/db"
	"kitchenhub/internal/usecase/commands"

	"github.com/google/uuid"
)

type EquipmentBookingRepository struct{}

func NewEquipmentBookingRepository() *EquipmentBookingRepository {
	return &EquipmentBookingRepository{}
}

func (r *EquipmentBookingRepository) Create(ctx context.Context, tx db.DBTX, params commands.CreateEquipmentBookingParams) (uuid.UUID, error) {
	const query = `
		INSERT INTO equipment_bookings (
			kitchen_booking_id, listing_id, booking_date, total_price_cents, status
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		params.KitchenBookingID,
		params.ListingID,
		params.BookingDate,
		params.TotalPriceCents,
		params.Status,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create equipment booking", err)
	}
	return id, nil
}
