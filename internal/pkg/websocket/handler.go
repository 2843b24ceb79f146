package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/hassy/readcycle/internal/middleware"
	"github.com/hassy/readcycle/internal/pkg/logger"
)

// Handler upgrades authenticated HTTP requests into hub clients.
type Handler struct {
	gateway  *Gateway
	upgrader websocket.Upgrader
}

// NewHandler creates the websocket endpoint handler. clientOrigin is
// the only origin allowed to open sockets; empty allows all, which is
// meant for development.
func NewHandler(gateway *Gateway, clientOrigin string) *Handler {
	return &Handler{
		gateway: gateway,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if clientOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == clientOrigin
			},
		},
	}
}

// Serve is the gin handler for the websocket endpoint. It expects the
// session middleware to have run first.
func (h *Handler) Serve(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}

	client := NewClient(h.gateway.Hub(), conn, userID)
	h.gateway.Hub().Register(client)

	go client.WritePump()
	go client.ReadPump(h.gateway)
}
