//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"kitchenhub/internal/domain/booking"
	"kitchenhub/internal/domain/schedule"
	"kitchenhub/internal/infra"
	"kitchenhub/internal/infra/db"
	"kitchenhub/internal/pkg/config"
	"kitchenhub/internal/usecase/commands"
	"kitchenhub/internal/usecase/queries"
	"kitchenhub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testBookingConfig() config.BookingConfig {
	return config.BookingConfig{
		ServiceFeeRate:          0.05,
		Currency:                "USD",
		OverstayMaxDaysToCharge: 7,
	}
}

func notFoundErr(msg string) error {
	return infra.WrapRepoErr(msg, errors.New("no rows"), infra.KindNotFound)
}

func mustTime(t *testing.T, s string) schedule.TimeOfDay {
	t.Helper()
	tod, err := schedule.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

// fakeTxRunner runs the callback inline without a database.
type fakeTxRunner struct{}

func (fakeTxRunner) Within(_ context.Context, fn func(tx db.DBTX) error) error {
	return fn(nil)
}

type fakeScheduleReads struct {
	weekly   []schedule.WeeklyWindow
	override *schedule.DateOverride
	booked   []shared.BookedInterval
}

func (f *fakeScheduleReads) WeeklyWindows(_ context.Context, _ db.DBTX, _ uuid.UUID) ([]schedule.WeeklyWindow, error) {
	return f.weekly, nil
}

func (f *fakeScheduleReads) OverrideForDate(_ context.Context, _ db.DBTX, _ uuid.UUID, _ time.Time) (*schedule.DateOverride, error) {
	return f.override, nil
}

func (f *fakeScheduleReads) BookedIntervals(_ context.Context, _ db.DBTX, _ uuid.UUID, _ time.Time) ([]shared.BookedInterval, error) {
	return f.booked, nil
}

type fakeKitchenReads struct {
	kitchens map[uuid.UUID]*commands.KitchenSnapshot
}

func (f *fakeKitchenReads) KitchenByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*commands.KitchenSnapshot, error) {
	k, ok := f.kitchens[id]
	if !ok {
		return nil, notFoundErr("kitchen not found")
	}
	return k, nil
}

type fakeListingReads struct {
	storage   map[uuid.UUID]*commands.StorageListingSnapshot
	equipment map[uuid.UUID]*commands.EquipmentListingSnapshot
}

func (f *fakeListingReads) StorageListingByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*commands.StorageListingSnapshot, error) {
	l, ok := f.storage[id]
	if !ok {
		return nil, notFoundErr("storage listing not found")
	}
	return l, nil
}

func (f *fakeListingReads) EquipmentListingByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*commands.EquipmentListingSnapshot, error) {
	l, ok := f.equipment[id]
	if !ok {
		return nil, notFoundErr("equipment listing not found")
	}
	return l, nil
}

type mirrorCall struct {
	kitchenBookingID uuid.UUID
	storageBookingID uuid.UUID
	endDate          string
	totalPriceCents  int64
}

type fakeBookingRepo struct {
	created        *bookingCapture
	finalizedTotal int64
	finalizedFee   int64
	mirrorCalls    []mirrorCall
	mirrorErr      error
	lockErr        error
}

type bookingCapture struct {
	id          uuid.UUID
	chefID      *uuid.UUID
	contactName string
}

func (f *fakeBookingRepo) LockKitchen(_ context.Context, _ db.DBTX, _ uuid.UUID) error {
	return f.lockErr
}

func (f *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.KitchenBooking) error {
	capture := &bookingCapture{id: b.ID(), chefID: b.ChefID()}
	if c := b.ExternalContact(); c != nil {
		capture.contactName = c.Name
	}
	f.created = capture
	return nil
}

func (f *fakeBookingRepo) FinalizeTotals(_ context.Context, _ db.DBTX, b *booking.KitchenBooking) error {
	f.finalizedTotal = b.TotalPriceCents()
	f.finalizedFee = b.ServiceFeeCents()
	return nil
}

func (f *fakeBookingRepo) UpdateStorageItemEntry(_ context.Context, _ db.DBTX, kitchenBookingID, storageBookingID uuid.UUID, endDate string, totalPriceCents int64) error {
	if f.mirrorErr != nil {
		return f.mirrorErr
	}
	f.mirrorCalls = append(f.mirrorCalls, mirrorCall{
		kitchenBookingID: kitchenBookingID,
		storageBookingID: storageBookingID,
		endDate:          endDate,
		totalPriceCents:  totalPriceCents,
	})
	return nil
}

type fakeStorageRepo struct {
	snapshots map[uuid.UUID]*commands.StorageBookingSnapshot
	overdue   []commands.StorageBookingSnapshot
	createErr error
	created   []commands.CreateStorageBookingParams

	appliedID    uuid.UUID
	appliedEnd   time.Time
	appliedTotal int64
	appliedFee   int64
}

func (f *fakeStorageRepo) Create(_ context.Context, _ db.DBTX, params commands.CreateStorageBookingParams) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = append(f.created, params)
	return uuid.New(), nil
}

func (f *fakeStorageRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*commands.StorageBookingSnapshot, error) {
	snap, ok := f.snapshots[id]
	if !ok {
		return nil, notFoundErr("storage booking not found")
	}
	copied := *snap
	return &copied, nil
}

func (f *fakeStorageRepo) ApplyExtension(_ context.Context, _ db.DBTX, id uuid.UUID, newEndDate time.Time, addTotalCents, addFeeCents int64) error {
	f.appliedID = id
	f.appliedEnd = newEndDate
	f.appliedTotal = addTotalCents
	f.appliedFee = addFeeCents

	if snap, ok := f.snapshots[id]; ok {
		snap.EndDate = newEndDate
		snap.TotalPriceCents += addTotalCents
		snap.ServiceFeeCents += addFeeCents
	}
	return nil
}

func (f *fakeStorageRepo) FindOverdue(_ context.Context, _ db.DBTX, asOf time.Time) ([]commands.StorageBookingSnapshot, error) {
	var out []commands.StorageBookingSnapshot
	for _, snap := range f.overdue {
		if snap.Status == commands.StorageBookingStatusActive && snap.EndDate.Before(asOf) {
			out = append(out, snap)
		}
	}
	return out, nil
}

type fakeEquipmentRepo struct {
	created   []commands.CreateEquipmentBookingParams
	createErr error
}

func (f *fakeEquipmentRepo) Create(_ context.Context, _ db.DBTX, params commands.CreateEquipmentBookingParams) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = append(f.created, params)
	return uuid.New(), nil
}

type fakeAccessRepo struct {
	hasGrant      bool
	approvedTier  int
	insertErr     error
	insertedGrant bool
}

func (f *fakeAccessRepo) HasGrant(_ context.Context, _ db.DBTX, _, _ uuid.UUID) (bool, error) {
	return f.hasGrant, nil
}

func (f *fakeAccessRepo) ApprovedApplicationTier(_ context.Context, _ db.DBTX, _, _ uuid.UUID) (int, error) {
	return f.approvedTier, nil
}

func (f *fakeAccessRepo) InsertGrant(_ context.Context, _ db.DBTX, _, _ uuid.UUID, _ string) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.insertedGrant = true
	return nil
}

type fakeOverstayRepo struct {
	records  map[uuid.UUID]*commands.OverstayRecord
	open     map[uuid.UUID]bool
	inserted []commands.OverstayRecord
	statuses map[uuid.UUID]string
}

func newFakeOverstayRepo() *fakeOverstayRepo {
	return &fakeOverstayRepo{
		records:  map[uuid.UUID]*commands.OverstayRecord{},
		open:     map[uuid.UUID]bool{},
		statuses: map[uuid.UUID]string{},
	}
}

func (f *fakeOverstayRepo) HasOpenRecord(_ context.Context, _ db.DBTX, storageBookingID uuid.UUID) (bool, error) {
	return f.open[storageBookingID], nil
}

func (f *fakeOverstayRepo) InsertDetected(_ context.Context, _ db.DBTX, rec commands.OverstayRecord) (uuid.UUID, error) {
	rec.ID = uuid.New()
	f.inserted = append(f.inserted, rec)
	f.records[rec.ID] = &rec
	f.open[rec.StorageBookingID] = true
	return rec.ID, nil
}

func (f *fakeOverstayRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*commands.OverstayRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, notFoundErr("overstay record not found")
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeOverstayRepo) ListByStatus(_ context.Context, _ db.DBTX, status string) ([]commands.OverstayRecord, error) {
	var out []commands.OverstayRecord
	for _, rec := range f.records {
		if rec.Status == status {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeOverstayRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status string) error {
	rec, ok := f.records[id]
	if !ok {
		return notFoundErr("overstay record not found")
	}
	rec.Status = status
	f.statuses[id] = status
	return nil
}

type fakeExtensionRepo struct {
	bySession map[string]*commands.PendingExtension
	statuses  map[uuid.UUID]string
}

func newFakeExtensionRepo() *fakeExtensionRepo {
	return &fakeExtensionRepo{
		bySession: map[string]*commands.PendingExtension{},
		statuses:  map[uuid.UUID]string{},
	}
}

func (f *fakeExtensionRepo) InsertPending(_ context.Context, _ db.DBTX, ext commands.PendingExtension) (uuid.UUID, error) {
	ext.ID = uuid.New()
	f.bySession[ext.PaymentSessionID] = &ext
	return ext.ID, nil
}

func (f *fakeExtensionRepo) FindBySessionID(_ context.Context, _ db.DBTX, sessionID string) (*commands.PendingExtension, error) {
	ext, ok := f.bySession[sessionID]
	if !ok {
		return nil, notFoundErr("pending extension not found")
	}
	copied := *ext
	return &copied, nil
}

func (f *fakeExtensionRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status string) error {
	f.statuses[id] = status
	for _, ext := range f.bySession {
		if ext.ID == id {
			ext.Status = status
		}
	}
	return nil
}

type fakeBookingQueries struct {
	views map[uuid.UUID]*queries.BookingView
}

func (f *fakeBookingQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	if view, ok := f.views[id]; ok {
		return view, nil
	}
	return &queries.BookingView{ID: id}, nil
}

func (f *fakeBookingQueries) ListByChef(_ context.Context, _ uuid.UUID, _, _ int32) ([]*queries.BookingListItem, error) {
	return nil, nil
}
