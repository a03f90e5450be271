package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/winnstorm/reserva-teco/internal/models"
	"github.com/winnstorm/reserva-teco/internal/repository"
	"github.com/winnstorm/reserva-teco/internal/service"
	"github.com/winnstorm/reserva-teco/pkg/response"
)

// TaskHandler handles HTTP requests for task status
type TaskHandler struct {
	queue *service.QueueService
	repo  *repository.TaskRepository
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(queue *service.QueueService, repo *repository.TaskRepository) *TaskHandler {
	return &TaskHandler{queue: queue, repo: repo}
}

// GetTask returns the current state of a task; result and error appear only
// once the task is terminal
// GET /api/v1/availability/task/:task_id
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID := c.Param("task_id")

	view, err := h.queue.Status(taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			response.NotFound(c, "Task not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, view)
}

// ListTasks returns recent tasks with an optional status filter
// GET /api/v1/admin/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	status := c.Query("status")
	limitStr := c.DefaultQuery("limit", "20")
	offsetStr := c.DefaultQuery("offset", "0")

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20
	}

	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		offset = 0
	}

	tasks, err := h.repo.List(status, limit, offset)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	views := make([]*models.TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, t.View())
	}

	response.Success(c, gin.H{
		"tasks":  views,
		"limit":  limit,
		"offset": offset,
	})
}
