package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/dto"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/event"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/user"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/security/auth"
)

const bearerSchema = "Bearer "

const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxRole   = "role"
)

// RequireAuth rejects requests without a valid bearer token and stores
// the resolved claims in the request context.
func RequireAuth(jwt *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := resolveClaims(c, jwt)
		if !ok {
			c.JSON(http.StatusUnauthorized, dto.NewError("unauthenticated", "valid bearer token required"))
			c.Abort()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth resolves claims when a valid token is present but lets
// anonymous requests through. Event reads use it so public listings work
// without an account while private events stay visible to their owners.
func OptionalAuth(jwt *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := resolveClaims(c, jwt); ok {
			setClaims(c, claims)
		}
		c.Next()
	}
}

func resolveClaims(c *gin.Context, jwt *auth.JWTService) (*auth.Claims, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerSchema) {
		return nil, false
	}
	claims, err := jwt.ValidateToken(header[len(bearerSchema):])
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxEmail, claims.Email)
	c.Set(ctxRole, user.Role(claims.Role))
}

// GetUserID returns the authenticated user's id from the context.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetRole returns the authenticated user's role from the context.
func GetRole(c *gin.Context) (user.Role, bool) {
	v, exists := c.Get(ctxRole)
	if !exists {
		return "", false
	}
	role, ok := v.(user.Role)
	return role, ok
}

// GetActor bundles the context claims into the actor the event services
// take. It only succeeds behind RequireAuth.
func GetActor(c *gin.Context) (event.Actor, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return event.Actor{}, false
	}
	role, ok := GetRole(c)
	if !ok {
		return event.Actor{}, false
	}
	return event.Actor{ID: id, Role: role}, true
}

// GetViewer returns a pointer to the caller's id, nil for anonymous
// requests. Visibility-filtered reads take this shape.
func GetViewer(c *gin.Context) *uuid.UUID {
	if id, ok := GetUserID(c); ok {
		return &id
	}
	return nil
}
