package websocket

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Private-Fox7/Empathy-Pulse/store"
	"github.com/Private-Fox7/Empathy-Pulse/types"
	"github.com/Private-Fox7/Empathy-Pulse/utils"
)

// AdminHandler serves the alert feed WebSocket for admin dashboards
type AdminHandler struct {
	hub *Hub
}

// NewAdminHandler creates a handler bound to the hub
func NewAdminHandler(hub *Hub) *AdminHandler {
	return &AdminHandler{hub: hub}
}

// HandleAdmin upgrades an admin dashboard connection. Browsers cannot set
// headers on WebSocket requests, so the token travels as a query parameter.
func (h *AdminHandler) HandleAdmin(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Token required",
			"message": "Please provide a valid token in query parameters",
		})
		return
	}

	claims, err := utils.VerifyToken(tokenString)
	if err != nil {
		log.Printf("🔌 WebSocket token verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid token",
			"message": "Token is invalid or expired",
		})
		return
	}

	if claims.Role != types.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Admin access required",
			"message": "Only admin dashboards can subscribe to alerts",
		})
		return
	}

	if _, err := store.Data.GetAdmin(claims.UserID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Admin not found",
			"message": "Admin associated with token not found",
		})
		return
	}

	ServeWebSocket(h.hub, c.Writer, c.Request, claims.UserID)
}
