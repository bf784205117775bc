package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 54 * time.Second
	pongWait       = 60 * time.Second
	sendBufferSize = 32
)

// Client is one WebSocket subscriber of the event stream.
type Client struct {
	conn    *websocket.Conn
	send    chan []byte
	logger  *zap.Logger
	cleanup func(*Client)

	closeMu sync.Mutex
	closed  bool
}

// NewClient wraps an upgraded connection. cleanup is invoked exactly once
// when the client goes away.
func NewClient(conn *websocket.Conn, cleanup func(*Client), logger *zap.Logger) *Client {
	return &Client{
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		logger:  logger,
		cleanup: cleanup,
	}
}

// Send queues a message for the client. A client whose buffer is full is
// dropped rather than allowed to block the publisher.
func (c *Client) Send(message []byte) bool {
	select {
	case c.send <- message:
		return true
	default:
		c.logger.Warn("Dropping slow websocket client, send buffer full")
		c.close()
		return false
	}
}

// WritePump pumps queued messages to the connection and keeps it alive with
// pings. Runs until the send channel closes or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debug("Websocket write failed", zap.Error(err))
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

// ReadPump drains (and discards) inbound frames so pongs and close frames
// are processed. The stream is push-only.
func (c *Client) ReadPump() {
	defer c.close()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) close() {
	c.closeMu.Lock()
	if c.closed {
		c.closeMu.Unlock()
		return
	}
	c.closed = true
	c.closeMu.Unlock()

	c.conn.Close()
	if c.cleanup != nil {
		c.cleanup(c)
	}
}
