package booking

// Status is the kitchen booking lifecycle state. Cancelled is terminal and
// releases the booking's slot capacity.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// CountsTowardCapacity reports whether a booking in this status still holds
// its slots against the kitchen's concurrent-booking limit.
func (s Status) CountsTowardCapacity() bool {
	return s != StatusCancelled
}

// Type distinguishes who created the booking and through which surface.
type Type string

const (
	TypeChef           Type = "chef"
	TypeExternal       Type = "external"
	TypeManagerBlocked Type = "manager_blocked"
	TypePortal         Type = "portal"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeChef, TypeExternal, TypeManagerBlocked, TypePortal:
		return true
	default:
		return false
	}
}
