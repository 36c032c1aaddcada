package response

import (
	"time"

	"kitchenhub/internal/usecase/commands"

	"github.com/google/uuid"
)

type OverstayResponse struct {
	ID               uuid.UUID `json:"id"`
	StorageBookingID uuid.UUID `json:"storageBookingId"`
	DaysOverdue      int       `json:"daysOverdue"`
	DaysCharged      int       `json:"daysCharged"`
	PenaltyCents     int64     `json:"penaltyCents"`
	Status           string    `json:"status"`
	DetectedAt       time.Time `json:"detectedAt"`
}

func FromOverstayRecord(rec *commands.OverstayRecord) *OverstayResponse {
	return &OverstayResponse{
		ID:               rec.ID,
		StorageBookingID: rec.StorageBookingID,
		DaysOverdue:      rec.DaysOverdue,
		DaysCharged:      rec.DaysCharged,
		PenaltyCents:     rec.PenaltyCents,
		Status:           rec.Status,
		DetectedAt:       rec.DetectedAt,
	}
}

func FromOverstayRecords(records []commands.OverstayRecord) []*OverstayResponse {
	out := make([]*OverstayResponse, 0, len(records))
	for i := range records {
		out = append(out, FromOverstayRecord(&records[i]))
	}
	return out
}
