package repository

import (
	"context"

	"kitchenhub/internal/infra"
	"kitchenhub/internal/infra/db"
	"kitchenhub/internal/pkg/pgconv"
	"kitchenhub/internal/usecase/commands"

	"github.com/google/uuid"
)

type ExtensionRepository struct{}

func NewExtensionRepository() *ExtensionRepository {
	return &ExtensionRepository{}
}

func (r *ExtensionRepository) InsertPending(ctx context.Context, dbx db.DBTX, ext commands.PendingExtension) (uuid.UUID, error) {
	const query = `
		INSERT INTO pending_storage_extensions (
			storage_booking_id, payment_session_id, new_end_date, price_cents, status
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id uuid.UUID
	err := dbx.QueryRow(ctx, query,
		ext.StorageBookingID,
		ext.PaymentSessionID,
		ext.NewEndDate,
		ext.PriceCents,
		ext.Status,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert pending extension", err)
	}
	return id, nil
}

func (r *ExtensionRepository) FindBySessionID(ctx context.Context, dbx db.DBTX, sessionID string) (*commands.PendingExtension, error) {
	const query = `
		SELECT id, storage_booking_id, payment_session_id, new_end_date, price_cents, status
		FROM pending_storage_extensions
		WHERE payment_session_id = $1`

	var ext commands.PendingExtension
	err := dbx.QueryRow(ctx, query, sessionID).Scan(
		&ext.ID,
		&ext.StorageBookingID,
		&ext.PaymentSessionID,
		&ext.NewEndDate,
		&ext.PriceCents,
		&ext.Status,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("pending extension not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find pending extension", err)
	}
	return &ext, nil
}

func (r *ExtensionRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status string) error {
	const query = `UPDATE pending_storage_extensions SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, status)
	if err != nil {
		return infra.WrapRepoErr("failed to update pending extension status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("pending extension not found", nil, infra.KindNotFound)
	}
	return nil
}
