package registry

import (
	"errors"
	"sync"
	"time"

	"github.com/playrelay/chessroom/game/room"
)

var (
	// ErrRoomNotFound is returned when an operation names a room the
	// registry does not hold.
	ErrRoomNotFound = errors.New("room not found")
)

// Membership records which room a connection currently belongs to and in
// what capacity. A connection holds at most one membership; binding again
// overwrites the previous one without touching the previous room.
type Membership struct {
	RoomID string
	Role   room.Role
	Color  room.Color
}

// Registry owns the room map and the connection membership index. It is the
// only holder of rooms; everything else reaches them through it.
type Registry struct {
	mu          sync.RWMutex
	rooms       map[string]*room.Room
	memberships map[string]Membership
	validator   room.Validator
}

// New creates an empty registry. Rooms it creates use the given move
// validator; nil means every move is allowed.
func New(validator room.Validator) *Registry {
	return &Registry{
		rooms:       make(map[string]*room.Room),
		memberships: make(map[string]Membership),
		validator:   validator,
	}
}

// GetOrCreate returns the room with the given id, creating it in the
// starting position if absent. The second return value reports creation.
func (r *Registry) GetOrCreate(id string) (*room.Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rm, ok := r.rooms[id]; ok {
		return rm, false
	}
	rm := room.New(id, r.validator)
	r.rooms[id] = rm
	return rm, true
}

// Get returns the room with the given id, or ErrRoomNotFound. Lookups never
// create rooms.
func (r *Registry) Get(id string) (*room.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rm, ok := r.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return rm, nil
}

// List returns all rooms currently held.
func (r *Registry) List() []*room.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*room.Room, 0, len(r.rooms))
	for _, rm := range r.rooms {
		result = append(result, rm)
	}
	return result
}

// Count returns the number of rooms currently held.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// Bind records the membership for a connection, replacing any previous one.
func (r *Registry) Bind(connID string, m Membership) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.memberships[connID] = m
}

// Lookup returns the membership for a connection, if any.
func (r *Registry) Lookup(connID string) (Membership, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.memberships[connID]
	return m, ok
}

// Unbind removes the membership for a connection. Removing an unknown
// connection is a no-op.
func (r *Registry) Unbind(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.memberships, connID)
}

// MembershipCount returns how many connections hold a membership.
func (r *Registry) MembershipCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.memberships)
}

// EvictIdle removes rooms whose last activity predates maxAge and whose
// members have all gone away, judged by the connOpen predicate. Occupied
// rooms are never evicted no matter how idle. Snapshots of the evicted
// rooms are returned for archival; the registry does no I/O itself.
func (r *Registry) EvictIdle(maxAge time.Duration, connOpen func(connID string) bool) []RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	var evicted []RoomSnapshot

	for id, rm := range r.rooms {
		if !rm.LastActive.Before(cutoff) {
			continue
		}
		occupied := false
		for _, connID := range rm.MemberIDs() {
			if connOpen != nil && connOpen(connID) {
				occupied = true
				break
			}
		}
		if occupied {
			continue
		}

		evicted = append(evicted, snapshotRoom(rm))
		delete(r.rooms, id)
		for connID, m := range r.memberships {
			if m.RoomID == id {
				delete(r.memberships, connID)
			}
		}
	}

	return evicted
}
