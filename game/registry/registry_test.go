package registry

import (
	"errors"
	"testing"
	"time"

	"github.com/playrelay/chessroom/game/room"
)

func TestGetOrCreate(t *testing.T) {
	reg := New(nil)

	rm, created := reg.GetOrCreate("room-1")
	if !created {
		t.Error("Expected first GetOrCreate to create the room")
	}
	if rm.ID != "room-1" {
		t.Errorf("Expected room id room-1, got %s", rm.ID)
	}

	again, created := reg.GetOrCreate("room-1")
	if created {
		t.Error("Expected second GetOrCreate not to create")
	}
	if again != rm {
		t.Error("Expected the same room instance on repeat GetOrCreate")
	}
	if reg.Count() != 1 {
		t.Errorf("Expected 1 room, got %d", reg.Count())
	}
}

func TestGetNeverCreates(t *testing.T) {
	reg := New(nil)

	_, err := reg.Get("missing")
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("Expected ErrRoomNotFound, got %v", err)
	}
	if reg.Count() != 0 {
		t.Errorf("Expected lookup not to create a room, got %d rooms", reg.Count())
	}
}

func TestGetExisting(t *testing.T) {
	reg := New(nil)
	created, _ := reg.GetOrCreate("room-1")

	got, err := reg.Get("room-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != created {
		t.Error("Expected Get to return the created room instance")
	}
}

func TestMembershipBindLookupUnbind(t *testing.T) {
	reg := New(nil)

	if _, ok := reg.Lookup("conn-1"); ok {
		t.Error("Expected no membership before Bind")
	}

	reg.Bind("conn-1", Membership{RoomID: "room-1", Role: room.RolePlayer, Color: room.White})

	m, ok := reg.Lookup("conn-1")
	if !ok {
		t.Fatal("Expected membership after Bind")
	}
	if m.RoomID != "room-1" || m.Role != room.RolePlayer || m.Color != room.White {
		t.Errorf("Unexpected membership: %+v", m)
	}

	reg.Unbind("conn-1")
	if _, ok := reg.Lookup("conn-1"); ok {
		t.Error("Expected no membership after Unbind")
	}

	// Unbinding again is a no-op.
	reg.Unbind("conn-1")
}

func TestMembershipOverwrite(t *testing.T) {
	reg := New(nil)
	reg.Bind("conn-1", Membership{RoomID: "room-1", Role: room.RolePlayer, Color: room.White})
	reg.Bind("conn-1", Membership{RoomID: "room-2", Role: room.RoleSpectator})

	m, ok := reg.Lookup("conn-1")
	if !ok {
		t.Fatal("Expected membership after rebind")
	}
	if m.RoomID != "room-2" {
		t.Errorf("Expected membership to follow the latest bind, got room %s", m.RoomID)
	}
	if m.Role != room.RoleSpectator {
		t.Errorf("Expected spectator role, got %s", m.Role)
	}
	if reg.MembershipCount() != 1 {
		t.Errorf("Expected a single membership per connection, got %d", reg.MembershipCount())
	}
}

func TestList(t *testing.T) {
	reg := New(nil)
	reg.GetOrCreate("room-1")
	reg.GetOrCreate("room-2")

	rooms := reg.List()
	if len(rooms) != 2 {
		t.Errorf("Expected 2 rooms, got %d", len(rooms))
	}
}

func TestEvictIdleRemovesOnlyIdleEmptyRooms(t *testing.T) {
	reg := New(nil)

	idleRoom, _ := reg.GetOrCreate("idle-room")
	idleRoom.LastActive = time.Now().Add(-2 * time.Hour)
	reg.GetOrCreate("fresh-room")

	evicted := reg.EvictIdle(time.Hour, func(string) bool { return false })
	if len(evicted) != 1 {
		t.Fatalf("Expected 1 evicted room, got %d", len(evicted))
	}
	if evicted[0].RoomID != "idle-room" {
		t.Errorf("Expected idle-room evicted, got %s", evicted[0].RoomID)
	}
	if reg.Count() != 1 {
		t.Errorf("Expected 1 room remaining, got %d", reg.Count())
	}
	if _, err := reg.Get("fresh-room"); err != nil {
		t.Errorf("Expected fresh-room to survive, got %v", err)
	}
}

func TestEvictIdleKeepsOccupiedRooms(t *testing.T) {
	reg := New(nil)
	rm, _ := reg.GetOrCreate("occupied")
	rm.Join("conn-1", "Alice")
	rm.LastActive = time.Now().Add(-2 * time.Hour)

	evicted := reg.EvictIdle(time.Hour, func(connID string) bool { return connID == "conn-1" })
	if len(evicted) != 0 {
		t.Errorf("Expected no evictions while a member connection is open, got %d", len(evicted))
	}
	if _, err := reg.Get("occupied"); err != nil {
		t.Errorf("Expected occupied room to survive, got %v", err)
	}
}

func TestEvictIdleCleansMemberships(t *testing.T) {
	reg := New(nil)
	rm, _ := reg.GetOrCreate("stale")
	rm.Join("conn-1", "Alice")
	rm.LastActive = time.Now().Add(-2 * time.Hour)
	reg.Bind("conn-1", Membership{RoomID: "stale", Role: room.RolePlayer, Color: room.White})

	evicted := reg.EvictIdle(time.Hour, func(string) bool { return false })
	if len(evicted) != 1 {
		t.Fatalf("Expected 1 evicted room, got %d", len(evicted))
	}
	if _, ok := reg.Lookup("conn-1"); ok {
		t.Error("Expected memberships of the evicted room to be removed")
	}
}

func TestEvictIdleSnapshotContents(t *testing.T) {
	reg := New(nil)
	rm, _ := reg.GetOrCreate("played")
	rm.Join("conn-a", "Alice")
	rm.Join("conn-b", "Bob")
	rm.ApplyMove("conn-a", "e2", "e4", "♙")
	rm.LastActive = time.Now().Add(-2 * time.Hour)

	evicted := reg.EvictIdle(time.Hour, func(string) bool { return false })
	if len(evicted) != 1 {
		t.Fatalf("Expected 1 evicted room, got %d", len(evicted))
	}

	snap := evicted[0]
	if len(snap.Players) != 2 {
		t.Errorf("Expected 2 players in snapshot, got %d", len(snap.Players))
	}
	if len(snap.Moves) != 1 {
		t.Errorf("Expected 1 move in snapshot, got %d", len(snap.Moves))
	}
	if snap.FinalBoard["e4"] != "♙" {
		t.Errorf("Expected snapshot board to hold the moved pawn on e4, got %q", snap.FinalBoard["e4"])
	}
	if snap.CreatedAt.IsZero() || snap.LastActive.IsZero() {
		t.Error("Expected snapshot timestamps to be set")
	}
}
