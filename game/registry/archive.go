package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/playrelay/chessroom/game/board"
	"github.com/playrelay/chessroom/game/room"
)

// RoomSnapshot is the exported record of an evicted room: who played, what
// was played, and how the board ended up. Snapshots are export-only; rooms
// are never restored from them.
type RoomSnapshot struct {
	RoomID     string        `json:"room_id"`
	CreatedAt  time.Time     `json:"created_at"`
	LastActive time.Time     `json:"last_active"`
	Players    []room.Player `json:"players"`
	Moves      []room.Move   `json:"moves"`
	FinalBoard board.Board   `json:"final_board"`
}

// Archiver receives snapshots of evicted rooms.
type Archiver interface {
	Archive(snap RoomSnapshot) error
}

// NopArchiver discards snapshots. Used in dev mode and tests.
type NopArchiver struct{}

// Archive does nothing.
func (NopArchiver) Archive(RoomSnapshot) error { return nil }

// FileArchiver writes one JSON file per evicted room.
type FileArchiver struct {
	dir string
}

// NewFileArchiver creates the archive directory if needed.
func NewFileArchiver(dir string) (*FileArchiver, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &FileArchiver{dir: dir}, nil
}

// Archive writes the snapshot as indented JSON. The file name combines the
// sanitized room id with the eviction-relevant timestamp so repeated ids
// (a room id reused after eviction) do not clobber earlier archives.
func (a *FileArchiver) Archive(snap RoomSnapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal room snapshot: %w", err)
	}

	name := fmt.Sprintf("%s-%d.json", sanitizeRoomID(snap.RoomID), snap.LastActive.Unix())
	path := filepath.Join(a.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write room snapshot: %w", err)
	}
	return nil
}

// sanitizeRoomID maps client-chosen room ids onto safe file name characters.
func sanitizeRoomID(id string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
	if safe == "" {
		safe = "room"
	}
	return safe
}

func snapshotRoom(rm *room.Room) RoomSnapshot {
	return RoomSnapshot{
		RoomID:     rm.ID,
		CreatedAt:  rm.CreatedAt,
		LastActive: rm.LastActive,
		Players:    rm.Players(),
		Moves:      rm.Moves(),
		FinalBoard: rm.Board().Clone(),
	}
}
