package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/dto"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/middleware"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/task"
)

// TaskHandler handles HTTP requests for the planning board
type TaskHandler struct {
	service task.Service
}

// NewTaskHandler creates a new task handler instance
func NewTaskHandler(service task.Service) *TaskHandler {
	return &TaskHandler{service: service}
}

// ListTasks returns board tasks. ?event_id=<uuid> scopes to one event,
// ?event_id=global to board-wide tasks, absent means everything.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	role, exists := middleware.GetRole(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var f task.Filter
	if raw := c.Query("event_id"); raw != "" {
		if raw == "global" {
			f.GlobalOnly = true
		} else {
			id, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event_id filter"})
				return
			}
			f.EventID = &id
		}
	}

	tasks, err := h.service.List(c.Request.Context(), role, f)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "total": len(tasks)})
}

// CreateTask appends a card to its column.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	role, _ := middleware.GetRole(c)

	var req task.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderBindingError(c, err)
		return
	}

	t, err := h.service.Create(c.Request.Context(), userID, role, req)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// UpdateTask applies a partial update, including column and position moves.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	role, exists := middleware.GetRole(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var req task.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderBindingError(c, err)
		return
	}

	t, err := h.service.Update(c.Request.Context(), role, id, req)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTask removes a card.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	role, exists := middleware.GetRole(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), role, id); err != nil {
		dto.RenderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
