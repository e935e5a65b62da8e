package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Outbound queue per connection; overflowing it closes the connection.
	sendBufferSize = 256
)

// Client is one upgraded connection. Its id is a generated handle, not the
// socket itself, so everything above the transport tracks strings.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

// ID returns the connection handle.
func (c *Client) ID() string { return c.id }

// IsOpen reports whether the connection is still usable.
func (c *Client) IsOpen() bool {
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// Send queues a payload without blocking. A full queue means the peer
// cannot keep up; the connection is closed and false returned. Callers
// treat delivery as fire-and-forget either way.
func (c *Client) Send(payload []byte) bool {
	if !c.IsOpen() {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		log.Warn().Str("conn", c.id).Msg("send queue full, closing slow connection")
		c.close()
		return false
	}
}

// sendJSON marshals and queues a single event for this connection only.
func (c *Client) sendJSON(ev any) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("conn", c.id).Msg("failed to marshal event")
		return
	}
	c.Send(data)
}

// close shuts the connection down at most once. The read pump notices the
// closed socket and drives the teardown path.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// readPump pumps frames from the connection into the hub's dispatcher.
// It owns teardown: whatever kills the connection, the deferred unregister
// runs exactly once.
func (c *Client) readPump() {
	defer func() {
		c.close()
		c.hub.unregister(c)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("conn", c.id).Msg("read failed")
			}
			break
		}
		c.hub.handleFrame(c, data)
	}
}

// writePump pumps queued payloads to the connection and keeps it alive
// with pings. One frame per payload; events are never batched.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
