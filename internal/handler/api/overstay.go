package api

import (
	"errors"
	"net/http"

	resdto "kitchenhub/internal/handler/dto/response"
	"kitchenhub/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OverstayHandler struct {
	overstays commands.OverstayCommands
}

func NewOverstayHandler(overstays commands.OverstayCommands) *OverstayHandler {
	return &OverstayHandler{overstays: overstays}
}

// @Summary List detected overstays
// @Description List overstay records awaiting a manager decision
// @Tags overstays
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.OverstayResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /overstays [get]
func (h *OverstayHandler) ListDetected(c *gin.Context) {
	records, err := h.overstays.ListDetected(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromOverstayRecords(records))
}

// @Summary Run overstay detection
// @Description Sweep storage bookings past their end date and record penalty candidates
// @Tags overstays
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.OverstayResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /overstays/detect [post]
func (h *OverstayHandler) Detect(c *gin.Context) {
	records, err := h.overstays.DetectOverstays(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromOverstayRecords(records))
}

// @Summary Approve overstay charge
// @Description Apply the detected penalty to the storage booking
// @Tags overstays
// @Produce json
// @Security BearerAuth
// @Param id path string true "Overstay record ID"
// @Success 200 {object} resdto.OverstayResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /overstays/{id}/approve [post]
func (h *OverstayHandler) Approve(c *gin.Context) {
	id, ok := h.recordID(c)
	if !ok {
		return
	}

	rec, err := h.overstays.ApproveOverstayCharge(c.Request.Context(), id)
	if err != nil {
		h.respondOverstayError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOverstayRecord(rec))
}

// @Summary Waive overstay
// @Description Dismiss a detected overstay without charging
// @Tags overstays
// @Produce json
// @Security BearerAuth
// @Param id path string true "Overstay record ID"
// @Success 200 {object} resdto.OverstayResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /overstays/{id}/waive [post]
func (h *OverstayHandler) Waive(c *gin.Context) {
	id, ok := h.recordID(c)
	if !ok {
		return
	}

	rec, err := h.overstays.WaiveOverstay(c.Request.Context(), id)
	if err != nil {
		h.respondOverstayError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOverstayRecord(rec))
}

func (h *OverstayHandler) recordID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid overstay record ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

func (h *OverstayHandler) respondOverstayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrOverstayRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Overstay record not found",
		})
	case errors.Is(err, commands.ErrStorageBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Storage booking not found",
		})
	case errors.Is(err, commands.ErrOverstayAlreadyResolved):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Overstay record has already been resolved",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
