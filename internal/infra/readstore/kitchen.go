package readstore

import (
	"context"
	"time"

	"kitchenhub/internal/domain/schedule"
	"kitchenhub/internal/infra"
	"kitchenhub/internal/infra/db"
	"kitchenhub/internal/pkg/pgconv"
	"kitchenhub/internal/usecase/commands"
	"kitchenhub/internal/usecase/shared"

	"github.com/google/uuid"
)

// KitchenReadStore serves both the kitchen snapshot for commands and the
// schedule reads that feed the availability resolver.
type KitchenReadStore struct{}

func NewKitchenReadStore() *KitchenReadStore {
	return &KitchenReadStore{}
}

func (s *KitchenReadStore) KitchenByID(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*commands.KitchenSnapshot, error) {
	const query = `
		SELECT id, location_id, name, hourly_rate_cents, currency
		FROM kitchens
		WHERE id = $1`

	var snap commands.KitchenSnapshot
	err := dbx.QueryRow(ctx, query, id).Scan(
		&snap.ID,
		&snap.LocationID,
		&snap.Name,
		&snap.HourlyRateCents,
		&snap.Currency,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("kitchen not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find kitchen", err)
	}
	return &snap, nil
}

func (s *KitchenReadStore) WeeklyWindows(ctx context.Context, dbx db.DBTX, kitchenID uuid.UUID) ([]schedule.WeeklyWindow, error) {
	const query = `
		SELECT day_of_week, start_hour, end_hour, is_available, max_concurrent_bookings
		FROM kitchen_availability
		WHERE kitchen_id = $1
		ORDER BY day_of_week`

	rows, err := dbx.Query(ctx, query, kitchenID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query weekly schedule", err)
	}
	defer rows.Close()

	var windows []schedule.WeeklyWindow
	for rows.Next() {
		var (
			day int
			w   schedule.WeeklyWindow
		)
		if err := rows.Scan(&day, &w.Window.StartHour, &w.Window.EndHour, &w.Available, &w.Window.Capacity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan weekly schedule entry", err)
		}
		w.DayOfWeek = time.Weekday(day)
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate weekly schedule", err)
	}
	return windows, nil
}

func (s *KitchenReadStore) OverrideForDate(ctx context.Context, dbx db.DBTX, kitchenID uuid.UUID, date time.Time) (*schedule.DateOverride, error) {
	const query = `
		SELECT override_date, is_available, start_hour, end_hour, max_concurrent_bookings, COALESCE(reason, '')
		FROM kitchen_date_overrides
		WHERE kitchen_id = $1 AND override_date = $2`

	var o schedule.DateOverride
	err := dbx.QueryRow(ctx, query, kitchenID, date).Scan(
		&o.Date,
		&o.Available,
		&o.Window.StartHour,
		&o.Window.EndHour,
		&o.Window.Capacity,
		&o.Reason,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to query date override", err)
	}
	return &o, nil
}

// BookedIntervals returns the time spans of every booking on the date that
// still counts toward capacity, i.e. anything not cancelled.
func (s *KitchenReadStore) BookedIntervals(ctx context.Context, dbx db.DBTX, kitchenID uuid.UUID, date time.Time) ([]shared.BookedInterval, error) {
	const query = `
		SELECT start_time, end_time
		FROM kitchen_bookings
		WHERE kitchen_id = $1 AND booking_date = $2 AND status <> 'cancelled'`

	rows, err := dbx.Query(ctx, query, kitchenID, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query booked intervals", err)
	}
	defer rows.Close()

	var intervals []shared.BookedInterval
	for rows.Next() {
		var startRaw, endRaw string
		if err := rows.Scan(&startRaw, &endRaw); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked interval", err)
		}
		start, err := schedule.ParseTimeOfDay(startRaw)
		if err != nil {
			return nil, infra.WrapRepoErr("stored start time is invalid", err)
		}
		end, err := schedule.ParseTimeOfDay(endRaw)
		if err != nil {
			return nil, infra.WrapRepoErr("stored end time is invalid", err)
		}
		intervals = append(intervals, shared.BookedInterval{Start: start, End: end})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booked intervals", err)
	}
	return intervals, nil
}
