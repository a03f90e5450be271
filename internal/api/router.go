package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/winnstorm/reserva-teco/internal/config"
	"github.com/winnstorm/reserva-teco/internal/handler"
	"github.com/winnstorm/reserva-teco/internal/middleware"
	"github.com/winnstorm/reserva-teco/internal/repository"
	"github.com/winnstorm/reserva-teco/internal/service"
)

// SetupRouter wires the HTTP surface
func SetupRouter(cfg *config.Config, queue *service.QueueService, repo *repository.TaskRepository) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(60, time.Minute))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	availabilityHandler := handler.NewAvailabilityHandler(queue)
	bookingHandler := handler.NewBookingHandler(queue)
	taskHandler := handler.NewTaskHandler(queue, repo)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Reserva Teco API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		availability := api.Group("/availability")
		{
			availability.POST("/search", availabilityHandler.Search)
			availability.GET("/task/:task_id", taskHandler.GetTask)
		}

		booking := api.Group("/booking")
		{
			booking.POST("/reserve", bookingHandler.Reserve)
			booking.GET("/task/:task_id", taskHandler.GetTask)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.Auth(cfg.JWTSecret))
		{
			admin.GET("/tasks", taskHandler.ListTasks)
		}
	}

	return r
}
