package handlers

import (
	"net/http"

	"skiply/models"
	"skiply/services/queue"
	"skiply/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QueueHandler serves booking and queue endpoints.
type QueueHandler struct {
	Svc queue.QueueService
}

func NewQueueHandler(svc queue.QueueService) *QueueHandler {
	return &QueueHandler{Svc: svc}
}

// BookQueue handles POST /api/queue/book.
func (h *QueueHandler) BookQueue(c *gin.Context) {
	logger := getLogger(c)
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	booking, err := h.Svc.BookQueue(c.Request.Context(), identity, req)
	if err != nil {
		logger.Warn("Booking failed", zap.String("userId", identity.UserID.Hex()), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetUserBookings handles GET /api/queue/my-bookings.
func (h *QueueHandler) GetUserBookings(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}
	bookings, err := h.Svc.GetUserBookings(c.Request.Context(), identity)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateBookingStatus handles PATCH /api/queue/:id/status.
func (h *QueueHandler) UpdateBookingStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	booking, err := h.Svc.UpdateBookingStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetBusinessBookings handles GET /api/queue/business/:businessId.
func (h *QueueHandler) GetBusinessBookings(c *gin.Context) {
	bookings, err := h.Svc.GetBusinessBookings(c.Request.Context(), c.Param("businessId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetNextToken handles GET /api/queue/next-token.
func (h *QueueHandler) GetNextToken(c *gin.Context) {
	var req models.TokenPreviewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}

	preview, err := h.Svc.PreviewNextToken(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// GetQueueStatus handles GET /api/queue/status/:id.
func (h *QueueHandler) GetQueueStatus(c *gin.Context) {
	status, err := h.Svc.GetQueueStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetBusinessQueueMetrics handles GET /api/queue/metrics/:businessId.
func (h *QueueHandler) GetBusinessQueueMetrics(c *gin.Context) {
	metrics, err := h.Svc.GetBusinessMetrics(c.Request.Context(), c.Param("businessId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}
