package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/dto"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/security/auth"
)

// RateLimit throttles a route group with the given limiter. Keys combine
// the scope with the authenticated user id when present, falling back to
// the client IP for anonymous endpoints such as login.
func RateLimit(limiter auth.RateLimiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":"
		if id, ok := GetUserID(c); ok {
			key += id.String()
		} else {
			key += c.ClientIP()
		}

		allowed, remaining, resetAt, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Redis being down should not take requests with it.
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
		if !allowed {
			c.JSON(http.StatusTooManyRequests, dto.NewError("rate_limited", "rate limit exceeded, retry later"))
			c.Abort()
			return
		}
		c.Next()
	}
}
