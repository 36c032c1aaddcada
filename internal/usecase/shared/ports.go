package shared

import (
	"context"
	"time"

	"kitchenhub/internal/domain/schedule"
	"kitchenhub/internal/infra/db"

	"github.com/google/uuid"
)

// BookedInterval is the time span of one non-cancelled booking on a date,
// the unit the capacity math counts against hourly slots.
type BookedInterval struct {
	Start schedule.TimeOfDay
	End   schedule.TimeOfDay
}

// ScheduleReads serves the availability resolver. The DBTX parameter lets the
// booking orchestrator re-run the same reads inside its transaction, under
// the kitchen row lock, for the capacity recheck.
type ScheduleReads interface {
	WeeklyWindows(ctx context.Context, dbx db.DBTX, kitchenID uuid.UUID) ([]schedule.WeeklyWindow, error)
	OverrideForDate(ctx context.Context, dbx db.DBTX, kitchenID uuid.UUID, date time.Time) (*schedule.DateOverride, error)
	BookedIntervals(ctx context.Context, dbx db.DBTX, kitchenID uuid.UUID, date time.Time) ([]BookedInterval, error)
}
