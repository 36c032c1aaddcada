package repository

import (
	"context"

	"kitchenhub/internal/infra"
	"kitchenhub/internal/infra/db"
	"kitchenhub/internal/pkg/pgconv"
	"kitchenhub/internal/usecase/commands"

	"github.com/google/uuid"
)

type OverstayRepository struct{}

func NewOverstayRepository() *OverstayRepository {
	return &OverstayRepository{}
}

// HasOpenRecord reports whether an unresolved record already exists for the
// storage booking, which keeps the sweep idempotent across runs.
func (r *OverstayRepository) HasOpenRecord(ctx context.Context, dbx db.DBTX, storageBookingID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM overstay_records
			WHERE storage_booking_id = $1 AND status = 'detected'
		)`

	var exists bool
	if err := dbx.QueryRow(ctx, query, storageBookingID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check for open overstay record", err)
	}
	return exists, nil
}

func (r *OverstayRepository) InsertDetected(ctx context.Context, dbx db.DBTX, rec commands.OverstayRecord) (uuid.UUID, error) {
	const query = `
		INSERT INTO overstay_records (
			storage_booking_id, days_overdue, days_charged, penalty_cents, status, detected_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id uuid.UUID
	err := dbx.QueryRow(ctx, query,
		rec.StorageBookingID,
		rec.DaysOverdue,
		rec.DaysCharged,
		rec.PenaltyCents,
		rec.Status,
		rec.DetectedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert overstay record", err)
	}
	return id, nil
}

func (r *OverstayRepository) FindByID(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*commands.OverstayRecord, error) {
	const query = `
		SELECT id, storage_booking_id, days_overdue, days_charged, penalty_cents, status, detected_at
		FROM overstay_records
		WHERE id = $1`

	var rec commands.OverstayRecord
	err := dbx.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.StorageBookingID,
		&rec.DaysOverdue,
		&rec.DaysCharged,
		&rec.PenaltyCents,
		&rec.Status,
		&rec.DetectedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("overstay record not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find overstay record", err)
	}
	return &rec, nil
}

func (r *OverstayRepository) ListByStatus(ctx context.Context, dbx db.DBTX, status string) ([]commands.OverstayRecord, error) {
	const query = `
		SELECT id, storage_booking_id, days_overdue, days_charged, penalty_cents, status, detected_at
		FROM overstay_records
		WHERE status = $1
		ORDER BY detected_at`

	rows, err := dbx.Query(ctx, query, status)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overstay records", err)
	}
	defer rows.Close()

	var records []commands.OverstayRecord
	for rows.Next() {
		var rec commands.OverstayRecord
		err := rows.Scan(
			&rec.ID,
			&rec.StorageBookingID,
			&rec.DaysOverdue,
			&rec.DaysCharged,
			&rec.PenaltyCents,
			&rec.Status,
			&rec.DetectedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan overstay record", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate overstay records", err)
	}
	return records, nil
}

func (r *OverstayRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status string) error {
	const query = `UPDATE overstay_records SET status = $2, resolved_at = now() WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, status)
	if err != nil {
		return infra.WrapRepoErr("failed to update overstay record status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("overstay record not found", nil, infra.KindNotFound)
	}
	return nil
}
