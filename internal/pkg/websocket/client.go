package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hassy/readcycle/internal/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
	sendBuffer     = 32
)

// Client is one websocket connection bound to an authenticated user.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	sendCh chan []byte
	userID string

	mu     sync.Mutex
	closed bool

	// rooms is owned by the hub run loop.
	rooms map[string]bool
}

// NewClient wraps an upgraded connection.
func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		sendCh: make(chan []byte, sendBuffer),
		userID: userID,
		rooms:  make(map[string]bool),
	}
}

// UserID returns the authenticated user behind this socket.
func (c *Client) UserID() string {
	return c.userID
}

// Send queues a frame for this client only. Frames to a full queue are
// dropped; the hub will disconnect the client on the next broadcast.
func (c *Client) Send(event string, data any) {
	payload, err := EncodeFrame(event, data)
	if err != nil {
		logger.Error().Err(err).Str("event", event).Msg("Failed to encode frame")
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.sendCh <- payload:
	default:
		logger.Warn().Str("user_id", c.userID).Msg("Dropping frame for slow client")
	}
}

// closeSend is called by the hub when the client is dropped. After it
// returns no more frames can be queued.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.sendCh)
}

// ReadPump reads frames and hands them to the gateway until the
// connection dies. It runs on the connection's goroutine.
func (c *Client) ReadPump(gateway *Gateway) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Str("user_id", c.userID).Msg("Unexpected socket close")
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			logger.Debug().Err(err).Str("user_id", c.userID).Msg("Dropping malformed frame")
			continue
		}
		gateway.HandleFrame(c, frame)
	}
}

// WritePump flushes queued frames and keeps the connection alive with
// pings. It runs on its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
