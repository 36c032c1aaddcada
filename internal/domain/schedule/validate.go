package schedule

// InvalidityReason classifies why a requested booking range cannot be served.
type InvalidityReason string

const (
	ReasonNone           InvalidityReason = ""
	ReasonInvalidRange   InvalidityReason = "InvalidTimeRange"
	ReasonKitchenClosed  InvalidityReason = "KitchenClosed"
	ReasonOutsideWindow  InvalidityReason = "OutsideWindow"
	ReasonMisalignedSlot InvalidityReason = "MisalignedSlot"
)

// ValidateRange checks a requested [start, end) against the effective window.
// Bookings must lie entirely inside the window and start on an hour boundary
// of the configured grid.
func ValidateRange(w Window, open bool, start, end TimeOfDay) InvalidityReason {
	if !start.Before(end) {
		return ReasonInvalidRange
	}
	if !open {
		return ReasonKitchenClosed
	}
	if start.Minutes() < w.StartHour*60 || end.Minutes() > w.EndHour*60 {
		return ReasonOutsideWindow
	}
	if !start.OnHour() {
		return ReasonMisalignedSlot
	}
	return ReasonNone
}
