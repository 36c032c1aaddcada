package request

import (
	"time"

	"kitchenhub/internal/domain/booking"
)

type ExtendStorageBookingRequest struct {
	NewEndDate string `json:"newEndDate" binding:"required"`
}

func (r ExtendStorageBookingRequest) ParsedEndDate() (time.Time, error) {
	return time.Parse(booking.DateLayout, r.NewEndDate)
}

type RequestStorageExtensionRequest struct {
	NewEndDate       string `json:"newEndDate" binding:"required"`
	PaymentSessionID string `json:"paymentSessionId" binding:"required"`
}

func (r RequestStorageExtensionRequest) ParsedEndDate() (time.Time, error) {
	return time.Parse(booking.DateLayout, r.NewEndDate)
}

type CompleteStorageExtensionRequest struct {
	PaymentSessionID string `json:"paymentSessionId" binding:"required"`
	Succeeded        *bool  `json:"succeeded" binding:"required"`
}
