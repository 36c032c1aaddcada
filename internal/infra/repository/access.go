package repository

import (
	"context"

	"kitchenhub/internal/infra"
	"kitchenhub/internal/infra/db"
	"kitchenhub/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type AccessRepository struct{}

func NewAccessRepository() *AccessRepository {
	return &AccessRepository{}
}

func (r *AccessRepository) HasGrant(ctx context.Context, dbx db.DBTX, chefID, locationID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM chef_location_access
			WHERE chef_id = $1 AND location_id = $2
		)`

	var exists bool
	if err := dbx.QueryRow(ctx, query, chefID, locationID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check location access", err)
	}
	return exists, nil
}

func (r *AccessRepository) ApprovedApplicationTier(ctx context.Context, dbx db.DBTX, chefID, locationID uuid.UUID) (int, error) {
	const query = `
		SELECT tier FROM location_applications
		WHERE chef_id = $1 AND location_id = $2 AND status = 'approved'
		ORDER BY tier DESC
		LIMIT 1`

	var tier int
	if err := dbx.QueryRow(ctx, query, chefID, locationID).Scan(&tier); err != nil {
		if pgconv.IsNoRows(err) {
			return 0, nil
		}
		return 0, infra.WrapRepoErr("failed to look up approved application", err)
	}
	return tier, nil
}

// InsertGrant backfills a grant row for a chef whose approved application
// already implies access. Conflicts with an existing grant are ignored.
func (r *AccessRepository) InsertGrant(ctx context.Context, dbx db.DBTX, chefID, locationID uuid.UUID, grantedBy string) error {
	const query = `
		INSERT INTO chef_location_access (chef_id, location_id, granted_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (chef_id, location_id) DO NOTHING`

	if _, err := dbx.Exec(ctx, query, chefID, locationID, grantedBy); err != nil {
		return infra.WrapRepoErr("failed to insert location access grant", err)
	}
	return nil
}
