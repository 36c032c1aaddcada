package repository

import (
	"context"
	"encoding/json"

	"kitchenhub/internal/domain/booking"
	"kitchenhub/internal/infra"
	"kitchenhub/internal/infra/db"
	"kitchenhub/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

// LockKitchen takes a row lock on the kitchen so concurrent booking
// transactions for the same kitchen serialize before the capacity recheck.
func (r *BookingRepository) LockKitchen(ctx context.Context, tx db.DBTX, kitchenID uuid.UUID) error {
	const query = `SELECT id FROM kitchens WHERE id = $1 FOR UPDATE`

	var id uuid.UUID
	if err := tx.QueryRow(ctx, query, kitchenID).Scan(&id); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("kitchen not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock kitchen", err)
	}
	return nil
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.KitchenBooking) error {
	const query = `
		INSERT INTO kitchen_bookings (
			id, kitchen_id, chef_id, booking_date, start_time, end_time,
			status, booking_type, total_price_cents, service_fee_cents,
			hourly_rate_cents, duration_hours, currency,
			storage_items, equipment_items, selected_slots,
			contact_name, contact_email, contact_phone
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, $9, $10, $11, '[]', '[]', $12, $13, $14, $15)`

	slots := make([]string, 0, len(b.SelectedSlots()))
	for _, s := range b.SelectedSlots() {
		slots = append(slots, s.String())
	}
	slotsJSON, err := json.Marshal(slots)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal selected slots", err)
	}

	var contactName, contactEmail, contactPhone *string
	if c := b.ExternalContact(); c != nil {
		contactName, contactEmail, contactPhone = &c.Name, &c.Email, &c.Phone
	}

	_, err = tx.Exec(ctx, query,
		b.ID(),
		b.KitchenID(),
		b.ChefID(),
		b.BookingDate(),
		b.StartTime().String(),
		b.EndTime().String(),
		b.Status().String(),
		b.BookingType().String(),
		b.HourlyRateCents(),
		b.DurationHours(),
		b.Currency(),
		slotsJSON,
		contactName,
		contactEmail,
		contactPhone,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create kitchen booking", err)
	}
	return nil
}

// FinalizeTotals is the second phase of the two-phase price write: the row is
// inserted with zero totals and updated once addon pricing is known.
func (r *BookingRepository) FinalizeTotals(ctx context.Context, tx db.DBTX, b *booking.KitchenBooking) error {
	const query = `
		UPDATE kitchen_bookings
		SET total_price_cents = $2,
		    service_fee_cents = $3,
		    storage_items = $4,
		    equipment_items = $5,
		    updated_at = now()
		WHERE id = $1`

	storageJSON, err := marshalItems(b.StorageItems())
	if err != nil {
		return infra.WrapRepoErr("failed to marshal storage items", err)
	}
	equipmentJSON, err := marshalItems(b.EquipmentItems())
	if err != nil {
		return infra.WrapRepoErr("failed to marshal equipment items", err)
	}

	tag, err := tx.Exec(ctx, query, b.ID(), b.TotalPriceCents(), b.ServiceFeeCents(), storageJSON, equipmentJSON)
	if err != nil {
		return infra.WrapRepoErr("failed to finalize booking totals", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("kitchen booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// UpdateStorageItemEntry rewrites one entry of the denormalized storage_items
// cache after the authoritative storage_bookings row changed.
func (r *BookingRepository) UpdateStorageItemEntry(
	ctx context.Context,
	dbx db.DBTX,
	kitchenBookingID, storageBookingID uuid.UUID,
	endDate string,
	totalPriceCents int64,
) error {
	const selectQuery = `SELECT storage_items FROM kitchen_bookings WHERE id = $1`

	var raw []byte
	if err := dbx.QueryRow(ctx, selectQuery, kitchenBookingID).Scan(&raw); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("kitchen booking not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to load storage items", err)
	}

	var items []booking.StorageItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return infra.WrapRepoErr("failed to unmarshal storage items", err)
	}

	found := false
	for i := range items {
		if items[i].ID == storageBookingID {
			items[i].EndDate = endDate
			items[i].TotalPriceCents = totalPriceCents
			found = true
			break
		}
	}
	if !found {
		return infra.WrapRepoErr("storage item not present in booking summary", nil, infra.KindNotFound)
	}

	updated, err := json.Marshal(items)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal storage items", err)
	}

	const updateQuery = `UPDATE kitchen_bookings SET storage_items = $2, updated_at = now() WHERE id = $1`
	if _, err := dbx.Exec(ctx, updateQuery, kitchenBookingID, updated); err != nil {
		return infra.WrapRepoErr("failed to update storage items", err)
	}
	return nil
}

func marshalItems(v any) ([]byte, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}
