package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/winnstorm/reserva-teco/internal/models"
	"github.com/winnstorm/reserva-teco/internal/service"
	"github.com/winnstorm/reserva-teco/pkg/response"
)

// BookingHandler handles HTTP requests for reservations
type BookingHandler struct {
	queue *service.QueueService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(queue *service.QueueService) *BookingHandler {
	return &BookingHandler{queue: queue}
}

// Reserve submits a booking task. Reservations go through the same queue as
// searches, so their outcome is polled from the task endpoint.
// POST /api/v1/booking/reserve
func (h *BookingHandler) Reserve(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	taskID, err := h.queue.Submit(models.TaskKindBooking, req)
	if err != nil {
		response.Error(c, http.StatusServiceUnavailable, err.Error())
		return
	}

	response.Success(c, gin.H{
		"task_id": taskID,
		"message": "Task created successfully",
	})
}
