package handler

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"todoapp/internal/ws"
)

// EventsHandler streams todo change events over a websocket.
type EventsHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewEventsHandler creates an events handler. Browser connections are only
// accepted from allowedOrigins; clients that send no Origin header are let through.
func NewEventsHandler(hub *ws.Hub, allowedOrigins []string) *EventsHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}
	return &EventsHandler{
		hub: hub,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			_, ok := allowed[origin]
			return ok
		}},
	}
}

// Subscribe godoc
// @Summary Subscribe to todo events
// @Description Upgrades to a websocket that receives todo.created, todo.updated and todo.deleted events for the caller.
// @Tags todos
// @Param token query string true "Bearer token"
// @Success 101
// @Failure 401 {object} errors.ErrorResponse
// @Router /todos/events [get]
func (h *EventsHandler) Subscribe(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	userID := principal.User.ID

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return nil
	}
	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID, conn)

	// Inbound frames are ignored; reading only detects the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read error for user %s: %v", userID, err)
			}
			return nil
		}
	}
}
