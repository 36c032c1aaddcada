package readstore

import (
	"context"

	"kitchenhub/internal/domain/pricing"
	"kitchenhub/internal/infra"
	"kitchenhub/internal/infra/db"
	"kitchenhub/internal/pkg/pgconv"
	"kitchenhub/internal/usecase/commands"

	"github.com/google/uuid"
)

type ListingReadStore struct{}

func NewListingReadStore() *ListingReadStore {
	return &ListingReadStore{}
}

func (s *ListingReadStore) StorageListingByID(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*commands.StorageListingSnapshot, error) {
	const query = `
		SELECT id, name, base_price_cents, pricing_model, minimum_booking_duration, damage_deposit_cents
		FROM storage_listings
		WHERE id = $1`

	var (
		snap  commands.StorageListingSnapshot
		model string
	)
	err := dbx.QueryRow(ctx, query, id).Scan(
		&snap.ID,
		&snap.Name,
		&snap.BasePriceCents,
		&model,
		&snap.MinimumBookingDuration,
		&snap.DamageDepositCents,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("storage listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find storage listing", err)
	}

	parsed, err := pricing.ParseModel(model)
	if err != nil {
		return nil, infra.WrapRepoErr("stored pricing model is invalid", err)
	}
	snap.PricingModel = parsed
	return &snap, nil
}

func (s *ListingReadStore) EquipmentListingByID(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*commands.EquipmentListingSnapshot, error) {
	const query = `
		SELECT id, name, base_price_cents, pricing_model, availability_type
		FROM equipment_listings
		WHERE id = $1`

	var (
		snap  commands.EquipmentListingSnapshot
		model string
	)
	err := dbx.QueryRow(ctx, query, id).Scan(
		&snap.ID,
		&snap.Name,
		&snap.BasePriceCents,
		&model,
		&snap.AvailabilityType,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("equipment listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find equipment listing", err)
	}

	parsed, err := pricing.ParseModel(model)
	if err != nil {
		return nil, infra.WrapRepoErr("stored pricing model is invalid", err)
	}
	snap.PricingModel = parsed
	return &snap, nil
}
