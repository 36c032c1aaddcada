package repository

import (
	"context"
	"time"

	"kitchenhub/internal/domain/pricing"
	"kitchenhub/internal/infra"
	"kitchenhub/internal/infra/db"
	"kitchenhub/internal/pkg/errs"
	"kitchenhub/internal/pkg/pgconv"
	"kitchenhub/internal/usecase/commands"

	"github.com/google/uuid"
)

type StorageBookingRepository struct{}

func NewStorageBookingRepository() *StorageBookingRepository {
	return &StorageBookingRepository{}
}

func (r *StorageBookingRepository) Create(ctx context.Context, tx db.DBTX, params commands.CreateStorageBookingParams) (uuid.UUID, error) {
	const query = `
		INSERT INTO storage_bookings (
			kitchen_booking_id, listing_id, start_date, end_date,
			pricing_model, total_price_cents, service_fee_cents, status
		) VALUES ($1, $2, $3, $4, $5, $6, 0, $7)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		params.KitchenBookingID,
		params.ListingID,
		params.StartDate,
		params.EndDate,
		params.PricingModel.String(),
		params.TotalPriceCents,
		params.Status,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create storage booking", err)
	}
	return id, nil
}

func (r *StorageBookingRepository) FindByID(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*commands.StorageBookingSnapshot, error) {
	const query = `
		SELECT sb.id, sb.kitchen_booking_id, sb.listing_id, sl.name,
		       sb.start_date, sb.end_date, sb.pricing_model,
		       sb.total_price_cents, sb.service_fee_cents, sb.status
		FROM storage_bookings sb
		JOIN storage_listings sl ON sl.id = sb.listing_id
		WHERE sb.id = $1`

	snap, err := scanStorageBooking(dbx.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("storage booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find storage booking", err)
	}
	return snap, nil
}

// ApplyExtension moves the end date forward and adds the incremental amounts
// to the persisted totals in a single statement.
func (r *StorageBookingRepository) ApplyExtension(ctx context.Context, tx db.DBTX, id uuid.UUID, newEndDate time.Time, addTotalCents, addFeeCents int64) error {
	const query = `
		UPDATE storage_bookings
		SET end_date = $2,
		    total_price_cents = total_price_cents + $3,
		    service_fee_cents = service_fee_cents + $4,
		    updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, newEndDate, addTotalCents, addFeeCents)
	if err != nil {
		return infra.WrapRepoErr("failed to apply storage extension", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("storage booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// FindOverdue returns active storage bookings whose end date has elapsed.
func (r *StorageBookingRepository) FindOverdue(ctx context.Context, dbx db.DBTX, asOf time.Time) ([]commands.StorageBookingSnapshot, error) {
	const query = `
		SELECT sb.id, sb.kitchen_booking_id, sb.listing_id, sl.name,
		       sb.start_date, sb.end_date, sb.pricing_model,
		       sb.total_price_cents, sb.service_fee_cents, sb.status
		FROM storage_bookings sb
		JOIN storage_listings sl ON sl.id = sb.listing_id
		WHERE sb.status = 'active' AND sb.end_date < $1
		ORDER BY sb.end_date`

	rows, err := dbx.Query(ctx, query, asOf)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overdue storage bookings", err)
	}
	defer rows.Close()

	var snaps []commands.StorageBookingSnapshot
	for rows.Next() {
		snap, err := scanStorageBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan storage booking", err)
		}
		snaps = append(snaps, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate storage bookings", err)
	}
	return snaps, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStorageBooking(row rowScanner) (*commands.StorageBookingSnapshot, error) {
	var (
		snap  commands.StorageBookingSnapshot
		model string
	)
	err := row.Scan(
		&snap.ID,
		&snap.KitchenBookingID,
		&snap.ListingID,
		&snap.ListingName,
		&snap.StartDate,
		&snap.EndDate,
		&model,
		&snap.TotalPriceCents,
		&snap.ServiceFeeCents,
		&snap.Status,
	)
	if err != nil {
		return nil, err
	}
	parsed, err := pricing.ParseModel(model)
	if err != nil {
		return nil, errs.Wrap(err, "stored pricing model is invalid")
	}
	snap.PricingModel = parsed
	return &snap, nil
}
