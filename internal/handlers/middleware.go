package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// hostIDKey holds the authenticated host ID in the Gin context.
const hostIDKey = "hostId"

// requireHost lets a request through only with a valid host bearer token.
// The scheme is matched case-insensitively.
func (h *Handler) requireHost(c *gin.Context) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
		return
	}

	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header format"})
		return
	}

	hostID, err := h.services.ParseToken(token)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "err", err, "path", c.FullPath(), "board_id", c.Param("id"))
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	c.Set(hostIDKey, hostID)
	c.Next()
}
