package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/winnstorm/reserva-teco/internal/models"
	"github.com/winnstorm/reserva-teco/internal/service"
	"github.com/winnstorm/reserva-teco/pkg/response"
)

// AvailabilityHandler handles HTTP requests for availability searches
type AvailabilityHandler struct {
	queue *service.QueueService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(queue *service.QueueService) *AvailabilityHandler {
	return &AvailabilityHandler{queue: queue}
}

// Search submits an availability search task
// POST /api/v1/availability/search
func (h *AvailabilityHandler) Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	taskID, err := h.queue.Submit(models.TaskKindSearch, req)
	if err != nil {
		response.Error(c, http.StatusServiceUnavailable, err.Error())
		return
	}

	response.Success(c, gin.H{
		"task_id": taskID,
		"message": "Task created successfully",
	})
}
