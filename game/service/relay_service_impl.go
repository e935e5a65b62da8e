package service

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/playrelay/chessroom/game/registry"
	"github.com/playrelay/chessroom/game/room"
	"github.com/playrelay/chessroom/metrics"
)

// relayServiceImpl implements RelayService on top of the room registry and
// the hub's connection directory.
type relayServiceImpl struct {
	mu        sync.RWMutex
	registry  *registry.Registry
	conns     ConnDirectory
	archiver  registry.Archiver
	startedAt time.Time
}

// NewRelayService creates the relay service. A nil archiver discards
// eviction snapshots.
func NewRelayService(reg *registry.Registry, conns ConnDirectory, archiver registry.Archiver) RelayService {
	if archiver == nil {
		archiver = registry.NopArchiver{}
	}
	return &relayServiceImpl{
		registry:  reg,
		conns:     conns,
		archiver:  archiver,
		startedAt: time.Now(),
	}
}

func (s *relayServiceImpl) HandleJoin(connID, roomID, playerName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm, created := s.registry.GetOrCreate(roomID)
	if created {
		metrics.RoomsActive.Set(float64(s.registry.Count()))
		log.Info().Str("room", roomID).Msg("room created")
	}

	p, started, err := rm.Join(connID, playerName)
	if err != nil {
		s.replyError(connID, err)
		return err
	}

	s.registry.Bind(connID, registry.Membership{
		RoomID: roomID,
		Role:   room.RolePlayer,
		Color:  p.Color,
	})

	log.Info().
		Str("room", roomID).
		Str("conn", connID).
		Str("player", playerName).
		Str("color", string(p.Color)).
		Msg("player joined")

	s.broadcast(rm, NewPlayerJoinedEvent(p, rm.Board(), rm.Turn()))
	if started {
		s.broadcast(rm, NewGameStartEvent(rm.Players()))
	}
	return nil
}

func (s *relayServiceImpl) HandleMove(connID, from, to, piece string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.registry.Lookup(connID)
	if !ok {
		return ErrNoMembership
	}
	if m.Role != room.RolePlayer {
		return room.ErrNotAPlayer
	}

	rm, err := s.registry.Get(m.RoomID)
	if err != nil {
		// Membership outlived its room (eviction race); drop silently.
		return err
	}

	mv, err := rm.ApplyMove(connID, from, to, piece)
	if err != nil {
		if errors.Is(err, room.ErrNotAPlayer) {
			return err
		}
		s.replyError(connID, err)
		return err
	}

	log.Debug().
		Str("room", rm.ID).
		Str("player", mv.Player).
		Str("from", mv.From).
		Str("to", mv.To).
		Msg("move relayed")

	s.broadcast(rm, NewMoveMadeEvent(mv, rm.Board(), rm.Turn()))
	return nil
}

func (s *relayServiceImpl) HandleSpectate(connID, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm, err := s.registry.Get(roomID)
	if err != nil {
		s.replyError(connID, err)
		return err
	}

	rm.AddSpectator(connID)
	s.registry.Bind(connID, registry.Membership{
		RoomID: roomID,
		Role:   room.RoleSpectator,
	})

	log.Info().Str("room", roomID).Str("conn", connID).Msg("spectator joined")

	s.replyTo(connID, NewSpectateStartedEvent(rm.Board(), rm.Turn(), rm.Moves()))
	return nil
}

func (s *relayServiceImpl) HandleChat(connID, message, sender string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.registry.Lookup(connID)
	if !ok {
		return ErrNoMembership
	}

	rm, err := s.registry.Get(m.RoomID)
	if err != nil {
		return err
	}

	if sender == "" {
		sender = AnonymousSender
	}

	s.broadcast(rm, NewChatMessageEvent(message, sender))
	return nil
}

func (s *relayServiceImpl) HandleDisconnect(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.registry.Lookup(connID)
	if !ok {
		return
	}
	s.registry.Unbind(connID)

	rm, err := s.registry.Get(m.RoomID)
	if err != nil {
		return
	}

	if m.Role == room.RolePlayer {
		if p, removed := rm.RemovePlayer(connID); removed {
			log.Info().
				Str("room", rm.ID).
				Str("player", p.Name).
				Str("color", string(p.Color)).
				Msg("player disconnected")
			s.broadcast(rm, NewPlayerDisconnectedEvent(p))
		}
		return
	}

	rm.RemoveSpectator(connID)
	log.Debug().Str("room", rm.ID).Str("conn", connID).Msg("spectator left")
}

func (s *relayServiceImpl) EvictIdleRooms(maxAge time.Duration) int {
	s.mu.Lock()
	snaps := s.registry.EvictIdle(maxAge, func(connID string) bool {
		c, ok := s.conns.Resolve(connID)
		return ok && c.IsOpen()
	})
	if len(snaps) > 0 {
		metrics.RoomsActive.Set(float64(s.registry.Count()))
	}
	s.mu.Unlock()

	// Archive outside the lock; snapshots are already copies.
	for _, snap := range snaps {
		if err := s.archiver.Archive(snap); err != nil {
			log.Error().Err(err).Str("room", snap.RoomID).Msg("failed to archive evicted room")
			continue
		}
		log.Info().Str("room", snap.RoomID).Int("moves", len(snap.Moves)).Msg("room evicted")
	}
	return len(snaps)
}

func (s *relayServiceImpl) Rooms() []RoomInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := s.registry.List()
	infos := make([]RoomInfo, 0, len(rooms))
	for _, rm := range rooms {
		infos = append(infos, roomInfo(rm))
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

func (s *relayServiceImpl) RoomState(roomID string) (RoomState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rm, err := s.registry.Get(roomID)
	if err != nil {
		return RoomState{}, err
	}
	return RoomState{
		RoomInfo:    roomInfo(rm),
		Board:       rm.Board().Clone(),
		CurrentTurn: rm.Turn(),
	}, nil
}

func (s *relayServiceImpl) MoveLog(roomID string) ([]room.Move, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rm, err := s.registry.Get(roomID)
	if err != nil {
		return nil, err
	}
	return rm.Moves(), nil
}

func (s *relayServiceImpl) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		Rooms:       s.registry.Count(),
		Connections: s.conns.Count(),
		Memberships: s.registry.MembershipCount(),
		StartedAt:   s.startedAt,
		Uptime:      time.Since(s.startedAt).Round(time.Second).String(),
	}
}

func roomInfo(rm *room.Room) RoomInfo {
	return RoomInfo{
		ID:             rm.ID,
		Status:         rm.Status(),
		Players:        rm.Players(),
		SpectatorCount: rm.SpectatorCount(),
		MoveCount:      len(rm.Moves()),
		CreatedAt:      rm.CreatedAt,
		LastActive:     rm.LastActive,
	}
}

// broadcast marshals the event once and hands it to every open member
// connection. Delivery is fire-and-forget: closed connections are skipped,
// slow ones dropped.
func (s *relayServiceImpl) broadcast(rm *room.Room, ev any) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("room", rm.ID).Msg("failed to marshal broadcast event")
		return
	}

	metrics.BroadcastsTotal.Inc()
	for _, connID := range rm.MemberIDs() {
		conn, ok := s.conns.Resolve(connID)
		if !ok || !conn.IsOpen() {
			continue
		}
		if !conn.Send(data) {
			metrics.MessagesDropped.Inc()
			log.Warn().Str("conn", connID).Str("room", rm.ID).Msg("dropped broadcast to slow connection")
		}
	}
}

// replyTo sends one event to one connection, if it is still around.
func (s *relayServiceImpl) replyTo(connID string, ev any) {
	conn, ok := s.conns.Resolve(connID)
	if !ok || !conn.IsOpen() {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("conn", connID).Msg("failed to marshal reply event")
		return
	}
	if !conn.Send(data) {
		metrics.MessagesDropped.Inc()
	}
}

func (s *relayServiceImpl) replyError(connID string, reason error) {
	s.replyTo(connID, NewErrorEvent(reason.Error()))
}
