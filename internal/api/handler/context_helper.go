package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/api/middleware"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/response"
)

// MustGetUserID extracts the authenticated user id from the Gin context.
// When the JWT middleware did not run (or injected garbage) it writes a 401
// and returns false; callers should return immediately on ok=false.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.CtxUserID)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetRole extracts the caller's role from the Gin context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.CtxRole)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}
