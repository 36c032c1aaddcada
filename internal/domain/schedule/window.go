package schedule

import "time"

// Window is the effective open interval of a kitchen on a single date,
// expressed as whole hours [StartHour, EndHour), with the number of
// simultaneous bookings each hourly slot can hold.
type Window struct {
	StartHour int
	EndHour   int
	Capacity  int
}

// WeeklyWindow is one recurring day-of-week entry of a kitchen schedule.
type WeeklyWindow struct {
	DayOfWeek time.Weekday
	Window    Window
	Available bool
}

// DateOverride replaces the weekly entry for one exact date. A non-available
// override closes the kitchen for the whole date.
type DateOverride struct {
	Date      time.Time
	Window    Window
	Available bool
	Reason    string
}

// EffectiveWindow resolves the open window for a date. An override always
// supersedes the weekly schedule; without one, the weekly entry matching the
// UTC weekday applies. The second return is false when the kitchen is closed.
func EffectiveWindow(weekly []WeeklyWindow, override *DateOverride, date time.Time) (Window, bool) {
	if override != nil {
		if !override.Available {
			return Window{}, false
		}
		return override.Window, true
	}

	day := date.UTC().Weekday()
	for _, w := range weekly {
		if w.DayOfWeek != day {
			continue
		}
		if !w.Available {
			return Window{}, false
		}
		return w.Window, true
	}
	return Window{}, false
}

// SlotStarts expands a window into its hourly bucket starts, end exclusive.
func SlotStarts(w Window) []TimeOfDay {
	if w.EndHour <= w.StartHour {
		return nil
	}
	starts := make([]TimeOfDay, 0, w.EndHour-w.StartHour)
	for h := w.StartHour; h < w.EndHour; h++ {
		starts = append(starts, HourStart(h))
	}
	return starts
}

// SlotsSpanning derives the discrete hourly slots a [start, end) range
// occupies. A partial trailing hour still claims its bucket.
func SlotsSpanning(start, end TimeOfDay) []TimeOfDay {
	if !start.Before(end) {
		return nil
	}
	lastHour := end.Hour()
	if end.Minute() > 0 {
		lastHour++
	}
	slots := make([]TimeOfDay, 0, lastHour-start.Hour())
	for h := start.Hour(); h < lastHour; h++ {
		slots = append(slots, HourStart(h))
	}
	return slots
}

// OverlapsSlot reports whether a booking interval [bkStart, bkEnd) intersects
// the hourly bucket starting at slotHour.
func OverlapsSlot(slotHour int, bkStart, bkEnd TimeOfDay) bool {
	bucketStart := slotHour * 60
	bucketEnd := bucketStart + 60
	return bkStart.Minutes() < bucketEnd && bkEnd.Minutes() > bucketStart
}
