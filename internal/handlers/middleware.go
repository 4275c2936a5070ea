package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIdContextKey = "userId"

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userId, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(userIdContextKey, userId)
	c.Next()
}

// currentUserID reads the authenticated user id set by userIdMiddleware.
func currentUserID(c *gin.Context) (int, bool) {
	v, ok := c.Get(userIdContextKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
