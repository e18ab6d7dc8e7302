package controllers

import (
	"net/http"

	"cgm-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	Hub *services.RealtimeHub
}

func NewRealtimeController(hub *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{Hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind a proxy if needed
}

// GET /ws/readings — streams reading.created and alert.created events for
// the authenticated owner (or the demo channel).
func (rc *RealtimeController) ReadingsWS(c *gin.Context) {
	owner := c.GetUint("ownerID") // 0 when unauthenticated (demo channel)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	// The hub's writer goroutine owns all writes on this conn, pings
	// included.
	cl := services.NewWSClient(owner, conn)
	rc.Hub.Register(cl)

	// read loop ends on client close/error → unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.Hub.Unregister(cl)
			return
		}
	}
}
