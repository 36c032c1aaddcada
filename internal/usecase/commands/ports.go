package commands

import (
	"context"
	"time"

	"kitchenhub/internal/domain/booking"
	"kitchenhub/internal/domain/pricing"
	"kitchenhub/internal/infra/db"

	"github.com/google/uuid"
)

// Write-side snapshots keep commands off the read-side view types.

type KitchenSnapshot struct {
	ID              uuid.UUID
	LocationID      uuid.UUID
	Name            string
	HourlyRateCents int64
	Currency        string
}

type StorageListingSnapshot struct {
	ID                     uuid.UUID
	Name                   string
	BasePriceCents         int64
	PricingModel           pricing.Model
	MinimumBookingDuration int
	DamageDepositCents     int64
}

type EquipmentListingSnapshot struct {
	ID               uuid.UUID
	Name             string
	BasePriceCents   int64
	PricingModel     pricing.Model
	AvailabilityType string
}

type StorageBookingSnapshot struct {
	ID               uuid.UUID
	KitchenBookingID uuid.UUID
	ListingID        uuid.UUID
	ListingName      string
	StartDate        time.Time
	EndDate          time.Time
	PricingModel     pricing.Model
	TotalPriceCents  int64
	ServiceFeeCents  int64
	Status           string
}

// StorageBookingStatusActive is the non-terminal storage booking state; the
// overdue sweep only considers active rows, so every system-created storage
// booking must carry it.
const StorageBookingStatusActive = "active"

type OverstayRecord struct {
	ID               uuid.UUID
	StorageBookingID uuid.UUID
	DaysOverdue      int
	DaysCharged      int
	PenaltyCents     int64
	Status           string
	DetectedAt       time.Time
}

// Overstay record lifecycle.
const (
	OverstayStatusDetected = "detected"
	OverstayStatusCharged  = "charged"
	OverstayStatusWaived   = "waived"
)

type PendingExtension struct {
	ID               uuid.UUID
	StorageBookingID uuid.UUID
	PaymentSessionID string
	NewEndDate       time.Time
	PriceCents       int64
	Status           string
}

const (
	ExtensionStatusPending   = "pending"
	ExtensionStatusCompleted = "completed"
	ExtensionStatusFailed    = "failed"
)

type CreateStorageBookingParams struct {
	KitchenBookingID uuid.UUID
	ListingID        uuid.UUID
	StartDate        time.Time
	EndDate          time.Time
	PricingModel     pricing.Model
	TotalPriceCents  int64
	Status           string
}

type CreateEquipmentBookingParams struct {
	KitchenBookingID uuid.UUID
	ListingID        uuid.UUID
	BookingDate      time.Time
	TotalPriceCents  int64
	Status           string
}

type KitchenReads interface {
	KitchenByID(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*KitchenSnapshot, error)
}

type ListingReads interface {
	StorageListingByID(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*StorageListingSnapshot, error)
	EquipmentListingByID(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*EquipmentListingSnapshot, error)
}

type BookingRepository interface {
	// LockKitchen serializes concurrent bookings of one kitchen so the
	// capacity recheck and insert form a critical section.
	LockKitchen(ctx context.Context, tx db.DBTX, kitchenID uuid.UUID) error
	Create(ctx context.Context, tx db.DBTX, b *booking.KitchenBooking) error
	FinalizeTotals(ctx context.Context, tx db.DBTX, b *booking.KitchenBooking) error
	// UpdateStorageItemEntry mirrors an extension into the denormalized
	// storage_items cache. Best-effort: the caller may ignore a failure.
	UpdateStorageItemEntry(ctx context.Context, dbx db.DBTX, kitchenBookingID, storageBookingID uuid.UUID, endDate string, totalPriceCents int64) error
}

type StorageBookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, params CreateStorageBookingParams) (uuid.UUID, error)
	FindByID(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*StorageBookingSnapshot, error)
	ApplyExtension(ctx context.Context, tx db.DBTX, id uuid.UUID, newEndDate time.Time, addTotalCents, addFeeCents int64) error
	FindOverdue(ctx context.Context, dbx db.DBTX, asOf time.Time) ([]StorageBookingSnapshot, error)
}

type EquipmentBookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, params CreateEquipmentBookingParams) (uuid.UUID, error)
}

type AccessRepository interface {
	HasGrant(ctx context.Context, dbx db.DBTX, chefID, locationID uuid.UUID) (bool, error)
	// ApprovedApplicationTier returns 0 when no approved application exists.
	ApprovedApplicationTier(ctx context.Context, dbx db.DBTX, chefID, locationID uuid.UUID) (int, error)
	// InsertGrant is an idempotent upsert with conflict-ignore semantics.
	InsertGrant(ctx context.Context, dbx db.DBTX, chefID, locationID uuid.UUID, grantedBy string) error
}

type OverstayRepository interface {
	HasOpenRecord(ctx context.Context, dbx db.DBTX, storageBookingID uuid.UUID) (bool, error)
	InsertDetected(ctx context.Context, dbx db.DBTX, rec OverstayRecord) (uuid.UUID, error)
	FindByID(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*OverstayRecord, error)
	ListByStatus(ctx context.Context, dbx db.DBTX, status string) ([]OverstayRecord, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status string) error
}

type ExtensionRepository interface {
	InsertPending(ctx context.Context, dbx db.DBTX, ext PendingExtension) (uuid.UUID, error)
	FindBySessionID(ctx context.Context, dbx db.DBTX, sessionID string) (*PendingExtension, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status string) error
}
