package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/dto"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/middleware"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/user"
)

// AuthHandler handles HTTP requests for accounts and sessions
type AuthHandler struct {
	service user.Service
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(service user.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register creates an account and returns a signed token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderBindingError(c, err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and returns a signed token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderBindingError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the caller's own profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial update to the caller's own profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderBindingError(c, err)
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteAccount removes the caller's account together with their events
// and participation records.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.service.DeleteAccount(c.Request.Context(), userID); err != nil {
		dto.RenderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetRole changes another account's role. Admin only.
func (h *AuthHandler) SetRole(c *gin.Context) {
	role, exists := middleware.GetRole(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req user.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderBindingError(c, err)
		return
	}

	if err := h.service.SetRole(c.Request.Context(), role, req); err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}
