package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"laundry-service-server/database"
	"laundry-service-server/models"
	"laundry-service-server/utils"
	ws "laundry-service-server/websocket"
)

// ServeAdminWebSocket upgrades a dashboard connection. Browsers can't set an
// Authorization header on the websocket handshake, so the token rides in the
// query string.
func ServeAdminWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	userID, err := utils.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	log.Printf("🔌 Dashboard websocket connecting: user %d (%s)", user.ID, user.Role)
	ws.ServeWebSocket(hub, c.Writer, c.Request, user.ID, string(user.Role))
}
