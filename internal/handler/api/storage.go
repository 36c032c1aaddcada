package api

import (
	"errors"
	"net/http"

	reqdto "kitchenhub/internal/handler/dto/request"
	resdto "kitchenhub/internal/handler/dto/response"
	"kitchenhub/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StorageHandler struct {
	extensions commands.ExtensionCommands
}

func NewStorageHandler(extensions commands.ExtensionCommands) *StorageHandler {
	return &StorageHandler{extensions: extensions}
}

// @Summary Extend storage booking
// @Description Extend a storage booking's end date; the incremental price is added to its totals
// @Tags storage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Storage booking ID"
// @Param request body reqdto.ExtendStorageBookingRequest true "Extension request"
// @Success 200 {object} resdto.ExtendStorageBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /storage-bookings/{id}/extend [post]
func (h *StorageHandler) ExtendStorageBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid storage booking ID format",
		})
		return
	}

	var req reqdto.ExtendStorageBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	newEndDate, err := req.ParsedEndDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format",
		})
		return
	}

	result, err := h.extensions.ExtendStorageBooking(c.Request.Context(), id, newEndDate)
	if err != nil {
		h.respondExtensionError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromExtendResult(result))
}

// @Summary Request storage extension
// @Description Record a pending extension tied to an external payment session
// @Tags storage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Storage booking ID"
// @Param request body reqdto.RequestStorageExtensionRequest true "Extension request"
// @Success 202 {object} resdto.PendingExtensionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /storage-bookings/{id}/extensions [post]
func (h *StorageHandler) RequestStorageExtension(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid storage booking ID format",
		})
		return
	}

	var req reqdto.RequestStorageExtensionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	newEndDate, err := req.ParsedEndDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format",
		})
		return
	}

	ext, err := h.extensions.RequestStorageExtension(c.Request.Context(), id, newEndDate, req.PaymentSessionID)
	if err != nil {
		h.respondExtensionError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resdto.FromPendingExtension(ext))
}

// @Summary Complete storage extension
// @Description Resolve a pending extension after the payment outcome is known
// @Tags storage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CompleteStorageExtensionRequest true "Completion request"
// @Success 200 {object} resdto.ExtendStorageBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /storage-bookings/extensions/complete [post]
func (h *StorageHandler) CompleteStorageExtension(c *gin.Context) {
	var req reqdto.CompleteStorageExtensionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.extensions.CompleteStorageExtension(c.Request.Context(), req.PaymentSessionID, *req.Succeeded)
	if err != nil {
		h.respondExtensionError(c, err)
		return
	}
	if result == nil {
		c.JSON(http.StatusOK, gin.H{
			"status": "failed",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromExtendResult(result))
}

func (h *StorageHandler) respondExtensionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrStorageBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Storage booking not found",
		})
	case errors.Is(err, commands.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Listing not found",
		})
	case errors.Is(err, commands.ErrExtensionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Pending extension not found",
		})
	case errors.Is(err, commands.ErrInvalidExtension):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "New end date must be after the current end date",
		})
	case errors.Is(err, commands.ErrBelowMinimumDuration):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Extension is shorter than the listing minimum duration",
		})
	case errors.Is(err, commands.ErrExtensionAlreadyResolved):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Extension has already been resolved",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
