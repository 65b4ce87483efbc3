package realtime

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/itgram/backend/internal/models"
	"github.com/itgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers cannot set custom headers on websocket handshakes; origins
	// are already constrained by the CORS middleware on the rest of the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler terminates live connections and drives the connect/disconnect
// lifecycle of the hub.
type WSHandler struct {
	hub   *Hub
	users repositories.UserRepository
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *Hub, users repositories.UserRepository) *WSHandler {
	return &WSHandler{hub: hub, users: users}
}

// RegisterRoutes registers the websocket endpoint
func (h *WSHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/ws", h.Serve)
}

// Serve upgrades the request to a websocket connection. The user identity is
// taken from the JWT claims verified by the auth middleware, never from the
// client's own say-so, so a connection can only occupy its own registry slot.
// The connection id is a fresh UUID so a stale disconnect can never evict a
// newer mapping.
func (h *WSHandler) Serve(c echo.Context) error {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	user, err := h.users.GetUserByID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user not found")
	}
	userID := user.PublicID

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to upgrade connection")
	}

	connID := uuid.NewString()
	session := newWSSession(connID, conn)

	h.hub.Attach(userID, session)
	go session.writePump()

	log.Printf("User %s connected (connection %s)", userID, connID)

	// The read loop only exists to detect disconnects; clients do not send
	// application messages upstream over this channel.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.hub.Detach(userID, connID)
	session.Close()
	log.Printf("User %s disconnected (connection %s)", userID, connID)

	return nil
}
