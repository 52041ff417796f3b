/*
Package feed contains the logic for pushing newly posted board messages to
connected WebSocket subscribers in real time.

This file defines the Client struct, representing one active WebSocket
subscriber. It manages the connection lifecycle and the read/write pumps.
*/
package feed

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"msgboard/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of an inbound frame. The feed is
	// one-directional; subscribers only send control frames.
	maxMessageSize = 512
)

// Client struct represents one active feed subscriber connection.
type Client struct {
	// the hub this subscriber is registered with.
	hub *Hub

	// underlying WebSocket connection object.
	conn *websocket.Conn

	// the verified user id the subscriber authenticated with.
	userID string

	// a buffered channel used to queue messages waiting to be sent to the subscriber.
	send chan []byte

	// structured logger with client context.
	logger zerolog.Logger
}

// NewClient constructs and returns a new Client instance.
func NewClient(hub *Hub, wsConn *websocket.Conn, userID string) *Client {
	clientLogger := logx.Logger().With().
		Str("component", "FeedClient").
		Str("client_id", userID).
		Logger()

	return &Client{
		hub:    hub,
		conn:   wsConn,
		userID: userID,
		send:   make(chan []byte, 64),
		logger: clientLogger,
	}
}

// Register adds the client to its hub. It returns without registering when
// the hub has already shut down, so late handlers never block.
func (c *Client) Register() {
	select {
	case c.hub.register <- c:
	case <-c.hub.stopChan:
	}
}

// ReadPump drains the connection so control frames (Pong, Close) are
// processed, and performs cleanup when the subscriber disconnects. Any data
// frame from the subscriber is discarded; the feed is server-to-client only.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (Client close/going away)")
			}
			break
		}
	}
}

// cleanupOnDisconnect handles the necessary cleanup steps when the client's ReadPump terminates.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Feed client cleanup starting.")

	select {
	case c.hub.unregister <- c:
	case <-c.hub.stopChan:
	}

	if err := c.conn.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Feed client connection close error")
	}
}

// WritePump forwards queued feed events to the WebSocket connection and keeps
// the connection alive with periodic Ping messages.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case raw, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				// The hub closed the send channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				c.logger.Info().Err(err).Msg("Feed write failed. Closing connection.")
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
