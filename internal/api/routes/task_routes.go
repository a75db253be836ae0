package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/handlers"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/middleware"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/security/auth"
)

// TaskRoutes handles the setup of planning board routes
type TaskRoutes struct {
	handler *handlers.TaskHandler
	jwt     *auth.JWTService
}

// NewTaskRoutes creates a new TaskRoutes instance
func NewTaskRoutes(handler *handlers.TaskHandler, jwt *auth.JWTService) *TaskRoutes {
	return &TaskRoutes{handler: handler, jwt: jwt}
}

// RegisterRoutes registers all planning board routes
func (r *TaskRoutes) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/planning/tasks")
	group.Use(middleware.RequireAuth(r.jwt))
	{
		group.GET("", r.handler.ListTasks)
		group.POST("", r.handler.CreateTask)
		group.PUT("/:id", r.handler.UpdateTask)
		group.DELETE("/:id", r.handler.DeleteTask)
	}
}
