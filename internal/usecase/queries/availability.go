package queries

import (
	"context"
	"time"

	"kitchenhub/internal/domain/schedule"
	"kitchenhub/internal/infra/db"
	"kitchenhub/internal/usecase/shared"

	"github.com/google/uuid"
)

// SlotInfo annotates one hourly bucket of a kitchen's open window with its
// booking load for a date.
type SlotInfo struct {
	Time          string `json:"time"`
	Capacity      int    `json:"capacity"`
	BookedCount   int    `json:"bookedCount"`
	Available     int    `json:"available"`
	IsFullyBooked bool   `json:"isFullyBooked"`
}

// AvailabilityResult is the outcome of validating a requested booking range.
type AvailabilityResult struct {
	Valid  bool
	Reason schedule.InvalidityReason
}

type AvailabilityQueries interface {
	// GetAvailableSlots returns only the buckets with remaining capacity.
	GetAvailableSlots(ctx context.Context, kitchenID uuid.UUID, date time.Time) ([]SlotInfo, error)
	// GetAllTimeSlotsWithBookingInfo returns every bucket of the open window.
	GetAllTimeSlotsWithBookingInfo(ctx context.Context, kitchenID uuid.UUID, date time.Time) ([]SlotInfo, error)
	ValidateBookingAvailability(ctx context.Context, kitchenID uuid.UUID, date time.Time, start, end schedule.TimeOfDay) (AvailabilityResult, error)
}

type availabilityQueriesImpl struct {
	reads shared.ScheduleReads
	dbx   db.DBTX
}

func NewAvailabilityQueries(reads shared.ScheduleReads, dbx db.DBTX) AvailabilityQueries {
	return &availabilityQueriesImpl{reads: reads, dbx: dbx}
}

// ResolveSlots runs the availability math against any DBTX. The booking
// orchestrator reuses it inside its transaction for the capacity recheck.
func ResolveSlots(
	ctx context.Context,
	reads shared.ScheduleReads,
	dbx db.DBTX,
	kitchenID uuid.UUID,
	date time.Time,
) ([]SlotInfo, error) {
	window, open, err := ResolveWindow(ctx, reads, dbx, kitchenID, date)
	if err != nil {
		return nil, err
	}
	if !open {
		return []SlotInfo{}, nil
	}

	booked, err := reads.BookedIntervals(ctx, dbx, kitchenID, date)
	if err != nil {
		return nil, err
	}

	starts := schedule.SlotStarts(window)
	slots := make([]SlotInfo, 0, len(starts))
	for _, s := range starts {
		count := 0
		for _, b := range booked {
			if schedule.OverlapsSlot(s.Hour(), b.Start, b.End) {
				count++
			}
		}
		available := window.Capacity - count
		if available < 0 {
			available = 0
		}
		slots = append(slots, SlotInfo{
			Time:          s.String(),
			Capacity:      window.Capacity,
			BookedCount:   count,
			Available:     available,
			IsFullyBooked: available == 0,
		})
	}
	return slots, nil
}

func (q *availabilityQueriesImpl) GetAvailableSlots(ctx context.Context, kitchenID uuid.UUID, date time.Time) ([]SlotInfo, error) {
	all, err := ResolveSlots(ctx, q.reads, q.dbx, kitchenID, date)
	if err != nil {
		return nil, err
	}
	available := make([]SlotInfo, 0, len(all))
	for _, s := range all {
		if s.Available > 0 {
			available = append(available, s)
		}
	}
	return available, nil
}

func (q *availabilityQueriesImpl) GetAllTimeSlotsWithBookingInfo(ctx context.Context, kitchenID uuid.UUID, date time.Time) ([]SlotInfo, error) {
	return ResolveSlots(ctx, q.reads, q.dbx, kitchenID, date)
}

func (q *availabilityQueriesImpl) ValidateBookingAvailability(
	ctx context.Context,
	kitchenID uuid.UUID,
	date time.Time,
	start, end schedule.TimeOfDay,
) (AvailabilityResult, error) {
	window, open, err := ResolveWindow(ctx, q.reads, q.dbx, kitchenID, date)
	if err != nil {
		return AvailabilityResult{}, err
	}

	reason := schedule.ValidateRange(window, open, start, end)
	return AvailabilityResult{Valid: reason == schedule.ReasonNone, Reason: reason}, nil
}

// ResolveWindow applies the override-over-weekly precedence for one date.
func ResolveWindow(
	ctx context.Context,
	reads shared.ScheduleReads,
	dbx db.DBTX,
	kitchenID uuid.UUID,
	date time.Time,
) (schedule.Window, bool, error) {
	override, err := reads.OverrideForDate(ctx, dbx, kitchenID, date)
	if err != nil {
		return schedule.Window{}, false, err
	}

	var weekly []schedule.WeeklyWindow
	if override == nil {
		weekly, err = reads.WeeklyWindows(ctx, dbx, kitchenID)
		if err != nil {
			return schedule.Window{}, false, err
		}
	}

	window, open := schedule.EffectiveWindow(weekly, override, date)
	return window, open, nil
}
