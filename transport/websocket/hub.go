package websocket

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/playrelay/chessroom/game/registry"
	"github.com/playrelay/chessroom/game/room"
	"github.com/playrelay/chessroom/game/service"
	"github.com/playrelay/chessroom/metrics"
)

// Directory is the live connection index: connection id to client. It backs
// the relay service's fan-out (service.ConnDirectory).
type Directory struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewDirectory creates an empty connection directory.
func NewDirectory() *Directory {
	return &Directory{clients: make(map[string]*Client)}
}

// Resolve returns the client with the given connection id.
func (d *Directory) Resolve(connID string) (service.Conn, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.clients[connID]
	if !ok {
		return nil, false
	}
	return c, true
}

// Count returns the number of registered connections.
func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.clients)
}

func (d *Directory) add(c *Client) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clients[c.id] = c
}

// remove reports whether the id was present, which makes teardown
// idempotent: only the caller that actually removed the entry reaps.
func (d *Directory) remove(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.clients[id]; !ok {
		return false
	}
	delete(d.clients, id)
	return true
}

// Hub upgrades HTTP requests into relay connections and dispatches their
// inbound frames. All game semantics live behind the relay service; the hub
// only decodes, dispatches, and answers protocol-level rejections.
type Hub struct {
	relay    service.RelayService
	dir      *Directory
	upgrader websocket.Upgrader
}

// NewHub creates the gateway. With permissiveOrigin the upgrader accepts
// any Origin header (development); otherwise gorilla's same-origin default
// applies.
func NewHub(relay service.RelayService, dir *Directory, permissiveOrigin bool) *Hub {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if permissiveOrigin {
		upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}
	return &Hub{relay: relay, dir: dir, upgrader: upgrader}
}

// ServeHTTP lets the hub be mounted directly on a router.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.ServeWS(w, r)
}

// ServeWS handles one websocket upgrade request. Every accepted connection
// gets a generated id, its pumps, and a greeting frame.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}

	client := newClient(h, conn)
	h.dir.add(client)
	metrics.ConnectionsActive.Inc()
	log.Info().Str("conn", client.id).Str("remote", r.RemoteAddr).Msg("connection opened")

	go client.writePump()
	go client.readPump()

	client.sendJSON(service.NewConnectedEvent())
}

// unregister runs the teardown path once per connection: drop it from the
// directory, then let the relay reap its membership.
func (h *Hub) unregister(c *Client) {
	if !h.dir.remove(c.id) {
		return
	}
	metrics.ConnectionsActive.Dec()
	h.relay.HandleDisconnect(c.id)
	log.Info().Str("conn", c.id).Msg("connection closed")
}

// handleFrame decodes and dispatches one inbound frame. Decode failures are
// answered on the offending connection; handler rejections are answered (or
// deliberately not) by the service itself. A panic anywhere in handling is
// contained to this frame and downgraded to a malformed-frame reply.
func (h *Hub) handleFrame(c *Client, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("conn", c.id).Msg("frame handler panicked")
			c.sendJSON(service.NewErrorEvent(ErrMalformedFrame.Error()))
		}
	}()

	started := time.Now()

	ev, err := DecodeEvent(data)
	if err != nil {
		metrics.EventsReceived.WithLabelValues("invalid").Inc()
		metrics.EventsRejected.WithLabelValues(rejectReason(err)).Inc()
		log.Debug().Err(err).Str("conn", c.id).Msg("rejected inbound frame")
		c.sendJSON(service.NewErrorEvent(err.Error()))
		return
	}

	var eventType string
	switch ev := ev.(type) {
	case JoinGameEvent:
		eventType = EventJoinGame
		err = h.relay.HandleJoin(c.id, ev.GameID, ev.PlayerName)
	case ChessMoveEvent:
		eventType = EventChessMove
		err = h.relay.HandleMove(c.id, ev.From, ev.To, ev.Piece)
	case SpectateEvent:
		eventType = EventSpectate
		err = h.relay.HandleSpectate(c.id, ev.GameID)
	case ChatEvent:
		eventType = EventChatMessage
		err = h.relay.HandleChat(c.id, ev.Message, ev.Sender)
	}

	metrics.EventsReceived.WithLabelValues(eventType).Inc()
	metrics.EventHandleSeconds.WithLabelValues(eventType).Observe(time.Since(started).Seconds())

	if err != nil {
		metrics.EventsRejected.WithLabelValues(rejectReason(err)).Inc()
		log.Debug().Err(err).Str("conn", c.id).Str("event", eventType).Msg("event rejected")
	}
}

// rejectReason maps rejections onto a small fixed label set; free-form
// validator errors all land in one bucket to keep cardinality bounded.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrMalformedFrame):
		return "malformed_frame"
	case errors.Is(err, ErrUnknownEventType):
		return "unknown_event_type"
	case errors.Is(err, room.ErrRoomFull):
		return "room_full"
	case errors.Is(err, room.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, room.ErrNotAPlayer):
		return "not_a_player"
	case errors.Is(err, registry.ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, service.ErrNoMembership):
		return "no_membership"
	default:
		return "move_rejected"
	}
}
