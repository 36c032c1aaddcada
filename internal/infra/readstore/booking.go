package readstore

import (
	"context"
	"encoding/json"

	"kitchenhub/internal/domain/booking"
	"kitchenhub/internal/infra"
	"kitchenhub/internal/pkg/pgconv"
	"kitchenhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingReadStore assembles the denormalized booking view. It reads from the
// pool directly: the view joins the kitchen name and unpacks the jsonb item
// caches, none of which the write side touches.
type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	const query = `
		SELECT b.id, b.kitchen_id, k.name, b.chef_id, b.booking_date,
		       b.start_time, b.end_time, b.status, b.booking_type,
		       b.total_price_cents, b.service_fee_cents, b.hourly_rate_cents,
		       b.duration_hours, b.currency,
		       b.storage_items, b.equipment_items, b.selected_slots,
		       b.contact_name, b.contact_email,
		       b.created_at, b.updated_at
		FROM kitchen_bookings b
		JOIN kitchens k ON k.id = b.kitchen_id
		WHERE b.id = $1`

	var (
		view         queries.BookingView
		chefID       pgtype.UUID
		contactName  pgtype.Text
		contactEmail pgtype.Text
		storageRaw   []byte
		equipmentRaw []byte
		selectedRaw  []byte
	)
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&view.ID,
		&view.KitchenID,
		&view.KitchenName,
		&chefID,
		&view.BookingDate,
		&view.StartTime,
		&view.EndTime,
		&view.Status,
		&view.BookingType,
		&view.TotalPriceCents,
		&view.ServiceFeeCents,
		&view.HourlyRateCents,
		&view.DurationHours,
		&view.Currency,
		&storageRaw,
		&equipmentRaw,
		&selectedRaw,
		&contactName,
		&contactEmail,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	view.ChefID = pgconv.UUIDPtrFromPgtype(chefID)
	view.ContactName = pgconv.StringPtrFromPgtype(contactName)
	view.ContactEmail = pgconv.StringPtrFromPgtype(contactEmail)

	if err := json.Unmarshal(storageRaw, &view.StorageItems); err != nil {
		return nil, infra.WrapRepoErr("failed to unmarshal storage items", err)
	}
	if err := json.Unmarshal(equipmentRaw, &view.EquipmentItems); err != nil {
		return nil, infra.WrapRepoErr("failed to unmarshal equipment items", err)
	}
	if err := json.Unmarshal(selectedRaw, &view.SelectedSlots); err != nil {
		return nil, infra.WrapRepoErr("failed to unmarshal selected slots", err)
	}
	if view.StorageItems == nil {
		view.StorageItems = []booking.StorageItem{}
	}
	if view.EquipmentItems == nil {
		view.EquipmentItems = []booking.EquipmentItem{}
	}
	if view.SelectedSlots == nil {
		view.SelectedSlots = []string{}
	}
	return &view, nil
}

func (s *BookingReadStore) FindByChefID(ctx context.Context, chefID uuid.UUID, limit, offset int32) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.kitchen_id, k.name, b.booking_date,
		       b.start_time, b.end_time, b.status, b.total_price_cents, b.created_at
		FROM kitchen_bookings b
		JOIN kitchens k ON k.id = b.kitchen_id
		WHERE b.chef_id = $1
		ORDER BY b.booking_date DESC, b.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.pool.Query(ctx, query, chefID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query bookings by chef", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var item queries.BookingListItem
		err := rows.Scan(
			&item.ID,
			&item.KitchenID,
			&item.KitchenName,
			&item.BookingDate,
			&item.StartTime,
			&item.EndTime,
			&item.Status,
			&item.TotalPriceCents,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return items, nil
}
