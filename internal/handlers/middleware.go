package handlers

import (
	"net/http"
	"strings"

	"foodsafety/internal/models"
	"foodsafety/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "userId"
	ctxRole   = "userRole"
)

// identityMiddleware validates the bearer token and stores the caller's
// identity and role in the Gin context.
func (h *Handler) identityMiddleware(c *gin.Context) {
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

	userID, role, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(ctxUserID, userID)
	c.Set(ctxRole, role)
	c.Next()
}

// requireRole gates a route to the given roles using the explicit
// capability check from the service layer.
func (h *Handler) requireRole(required ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := callerRole(c)
		if !ok || !service.HasRole(required, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient role",
			})
			return
		}
		c.Next()
	}
}

// callerID returns the authenticated user id stored by identityMiddleware.
func callerID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// callerRole returns the authenticated role stored by identityMiddleware.
func callerRole(c *gin.Context) (models.Role, bool) {
	v, ok := c.Get(ctxRole)
	if !ok {
		return "", false
	}
	role, ok := v.(models.Role)
	return role, ok
}
