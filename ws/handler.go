package ws

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // development setting, restrict in production
	},
}

// HandleStatusWebSocket upgrades /ws/status?firebaseId=... and streams
// generation progress for that user. The firebaseId is the same opaque
// identifier the REST routes consume; it is not verified here.
func HandleStatusWebSocket(c *gin.Context) {
	firebaseID := c.Query("firebaseId")
	if firebaseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "firebaseId query parameter is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade failed:", err)
		return
	}
	log.Printf("Status WS connected: firebaseId=%s", firebaseID)

	H.Register(firebaseID, conn)
}
