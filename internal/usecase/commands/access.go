package commands

import (
	"context"
	"log/slog"

	"kitchenhub/internal/infra/db"
	"kitchenhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAccessDenied = errs.New("access denied: approved tier-2 application required")

// Tier at or above which an approved location application implies booking access.
const bookingAccessTier = 2

const grantSourceApplication = "application_approval"

// AccessGate decides whether a chef may book kitchens at a location. A direct
// grant row is authoritative; an approved tier-2 application also grants
// access and materializes the missing grant row as a self-healing cache.
type AccessGate struct {
	access AccessRepository
	logger *slog.Logger
}

func NewAccessGate(access AccessRepository, logger *slog.Logger) *AccessGate {
	return &AccessGate{access: access, logger: logger}
}

func (g *AccessGate) EnsureBookingAccess(ctx context.Context, dbx db.DBTX, chefID, locationID uuid.UUID) error {
	granted, err := g.access.HasGrant(ctx, dbx, chefID, locationID)
	if err != nil {
		return err
	}
	if granted {
		return nil
	}

	tier, err := g.access.ApprovedApplicationTier(ctx, dbx, chefID, locationID)
	if err != nil {
		return err
	}
	if tier < bookingAccessTier {
		return ErrAccessDenied
	}

	// Materialize the grant so the next check short-circuits. Failure to
	// persist the cache must not block the booking.
	if err := g.access.InsertGrant(ctx, dbx, chefID, locationID, grantSourceApplication); err != nil {
		g.logger.Warn("failed to materialize location access grant",
			"chef_id", chefID,
			"location_id", locationID,
			"error", err)
	}
	return nil
}
