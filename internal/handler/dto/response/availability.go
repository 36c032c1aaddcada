package response

import (
	"kitchenhub/internal/usecase/queries"
)

type SlotResponse struct {
	Time          string `json:"time"`
	Capacity      int    `json:"capacity"`
	BookedCount   int    `json:"bookedCount"`
	Available     int    `json:"available"`
	IsFullyBooked bool   `json:"isFullyBooked"`
}

type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

type ValidationResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func FromSlots(slots []queries.SlotInfo) *SlotListResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{
			Time:          s.Time,
			Capacity:      s.Capacity,
			BookedCount:   s.BookedCount,
			Available:     s.Available,
			IsFullyBooked: s.IsFullyBooked,
		})
	}
	return &SlotListResponse{Slots: out}
}

func FromAvailabilityResult(result queries.AvailabilityResult) *ValidationResponse {
	return &ValidationResponse{
		Valid:  result.Valid,
		Reason: string(result.Reason),
	}
}
