package api

import (
	"net/http"
	"time"

	"kitchenhub/internal/domain/booking"
	"kitchenhub/internal/domain/schedule"
	resdto "kitchenhub/internal/handler/dto/response"
	"kitchenhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// @Summary Get available slots
// @Description List hourly slots with remaining capacity for a kitchen on a date
// @Tags availability
// @Produce json
// @Param id path string true "Kitchen ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.SlotListResponse
// @Failure 400 {object} map[string]string
// @Router /kitchens/{id}/slots [get]
func (h *AvailabilityHandler) GetAvailableSlots(c *gin.Context) {
	kitchenID, date, ok := h.bindSlotParams(c)
	if !ok {
		return
	}

	slots, err := h.availability.GetAvailableSlots(c.Request.Context(), kitchenID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlots(slots))
}

// @Summary Get all slots with booking info
// @Description List every hourly slot of the open window including fully booked ones
// @Tags availability
// @Produce json
// @Param id path string true "Kitchen ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.SlotListResponse
// @Failure 400 {object} map[string]string
// @Router /kitchens/{id}/slots/all [get]
func (h *AvailabilityHandler) GetAllSlots(c *gin.Context) {
	kitchenID, date, ok := h.bindSlotParams(c)
	if !ok {
		return
	}

	slots, err := h.availability.GetAllTimeSlotsWithBookingInfo(c.Request.Context(), kitchenID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlots(slots))
}

// @Summary Validate booking availability
// @Description Check whether a time range is bookable on a date
// @Tags availability
// @Produce json
// @Param id path string true "Kitchen ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param startTime query string true "Start time (HH:MM)"
// @Param endTime query string true "End time (HH:MM)"
// @Success 200 {object} resdto.ValidationResponse
// @Failure 400 {object} map[string]string
// @Router /kitchens/{id}/availability/validate [get]
func (h *AvailabilityHandler) ValidateAvailability(c *gin.Context) {
	kitchenID, date, ok := h.bindSlotParams(c)
	if !ok {
		return
	}

	start, err := schedule.ParseTimeOfDay(c.Query("startTime"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid start time format",
		})
		return
	}
	end, err := schedule.ParseTimeOfDay(c.Query("endTime"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid end time format",
		})
		return
	}

	result, err := h.availability.ValidateBookingAvailability(c.Request.Context(), kitchenID, date, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityResult(result))
}

func (h *AvailabilityHandler) bindSlotParams(c *gin.Context) (uuid.UUID, time.Time, bool) {
	kitchenID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid kitchen ID format",
		})
		return uuid.Nil, time.Time{}, false
	}

	date, err := time.Parse(booking.DateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format",
		})
		return uuid.Nil, time.Time{}, false
	}
	return kitchenID, date, true
}
