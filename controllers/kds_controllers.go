package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/delight-cuisine/kds"
	"github.com/yeremiapane/delight-cuisine/middlewares"
	"github.com/yeremiapane/delight-cuisine/services"
)

type EventsController struct {
	Hub      *kds.Hub
	upgrader websocket.Upgrader
}

func NewEventsController(hub *kds.Hub, allowedOrigin string) *EventsController {
	return &EventsController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "*" || origin == "" || origin == allowedOrigin
			},
		},
	}
}

// Stream -> websocket feed of order and menu events for admin dashboards
func (ec *EventsController) Stream(c *gin.Context) {
	actor := middlewares.ActorFromContext(c)
	if err := services.RequireAdmin(actor); err != nil {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := ec.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	ec.Hub.Register(ws, actor.UserID)

	// drain client frames until the connection drops
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	ec.Hub.Unregister(ws)
}
