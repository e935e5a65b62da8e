package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/playrelay/chessroom/game/board"
	"github.com/playrelay/chessroom/game/registry"
	"github.com/playrelay/chessroom/game/service"
)

// emptyDirectory satisfies the relay's connection lookup without any live
// connections; broadcasts during setup simply go nowhere.
type emptyDirectory struct{}

func (emptyDirectory) Resolve(string) (service.Conn, bool) { return nil, false }
func (emptyDirectory) Count() int                          { return 0 }

func newTestRelay() service.RelayService {
	return service.NewRelayService(registry.New(nil), emptyDirectory{}, nil)
}

func callTool(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected content in result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func TestNewServer(t *testing.T) {
	server := NewServer(newTestRelay())

	if server == nil {
		t.Fatal("Expected server to be created")
	}
	if server.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
	if server.Handler() == nil {
		t.Error("Expected an HTTP handler")
	}
}

func TestListRoomsTool(t *testing.T) {
	relay := newTestRelay()
	server := NewServer(relay)
	ctx := context.Background()

	result, err := server.handleListRooms(ctx, callTool("list_rooms", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("list_rooms failed: %v", err)
	}
	if text := toolText(t, result); !strings.Contains(text, "No rooms") {
		t.Errorf("Expected empty listing, got: %s", text)
	}

	relay.HandleJoin("c1", "lobby", "Alice")
	relay.HandleJoin("c2", "lobby", "Bob")
	relay.HandleJoin("c3", "corner", "Carol")

	result, err = server.handleListRooms(ctx, callTool("list_rooms", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("list_rooms failed: %v", err)
	}

	text := toolText(t, result)
	if !strings.Contains(text, "Rooms (2)") {
		t.Errorf("Expected 2 rooms in listing, got: %s", text)
	}
	if !strings.Contains(text, "Alice(white) vs Bob(black)") {
		t.Errorf("Expected seated players in listing, got: %s", text)
	}
	if !strings.Contains(text, "corner") || !strings.Contains(text, "Carol(white)") {
		t.Errorf("Expected the second room in listing, got: %s", text)
	}
}

func TestRoomStateTool(t *testing.T) {
	relay := newTestRelay()
	server := NewServer(relay)
	ctx := context.Background()

	relay.HandleJoin("c1", "lobby", "Alice")
	relay.HandleJoin("c2", "lobby", "Bob")

	t.Run("Existing room", func(t *testing.T) {
		result, err := server.handleRoomState(ctx, callTool("room_state", map[string]interface{}{
			"room_id": "lobby",
		}))
		if err != nil {
			t.Fatalf("room_state failed: %v", err)
		}

		text := toolText(t, result)
		for _, want := range []string{
			"Room: lobby [active]",
			"Alice(white) vs Bob(black)",
			"Turn: white",
			board.WhiteRook,
			"\"current_turn\": \"white\"",
		} {
			if !strings.Contains(text, want) {
				t.Errorf("Expected %q in room state, got: %s", want, text)
			}
		}
	})

	t.Run("Unknown room", func(t *testing.T) {
		result, err := server.handleRoomState(ctx, callTool("room_state", map[string]interface{}{
			"room_id": "ghost",
		}))
		if err != nil {
			t.Fatalf("room_state failed: %v", err)
		}
		if !result.IsError {
			t.Error("Expected a tool error for an unknown room")
		}
		if text := toolText(t, result); !strings.Contains(text, "room not found") {
			t.Errorf("Expected room-not-found message, got: %s", text)
		}
	})

	t.Run("Missing room_id", func(t *testing.T) {
		result, err := server.handleRoomState(ctx, callTool("room_state", map[string]interface{}{}))
		if err != nil {
			t.Fatalf("room_state failed: %v", err)
		}
		if !result.IsError {
			t.Error("Expected a tool error for a missing room_id")
		}
	})
}

func TestMoveLogTool(t *testing.T) {
	relay := newTestRelay()
	server := NewServer(relay)
	ctx := context.Background()

	relay.HandleJoin("c1", "lobby", "Alice")
	relay.HandleJoin("c2", "lobby", "Bob")

	result, err := server.handleMoveLog(ctx, callTool("move_log", map[string]interface{}{
		"room_id": "lobby",
	}))
	if err != nil {
		t.Fatalf("move_log failed: %v", err)
	}
	if text := toolText(t, result); !strings.Contains(text, "no moves yet") {
		t.Errorf("Expected empty move log, got: %s", text)
	}

	relay.HandleMove("c1", "e2", "e4", board.WhitePawn)
	relay.HandleMove("c2", "e7", "e5", board.BlackPawn)

	result, err = server.handleMoveLog(ctx, callTool("move_log", map[string]interface{}{
		"room_id": "lobby",
	}))
	if err != nil {
		t.Fatalf("move_log failed: %v", err)
	}

	text := toolText(t, result)
	if !strings.Contains(text, "Moves in lobby (2)") {
		t.Errorf("Expected 2 moves in log, got: %s", text)
	}
	if !strings.Contains(text, "1. Alice ♙ e2→e4") {
		t.Errorf("Expected the opening move in log, got: %s", text)
	}
	if !strings.Contains(text, "2. Bob ♟ e7→e5") {
		t.Errorf("Expected the reply move in log, got: %s", text)
	}

	unknown, err := server.handleMoveLog(ctx, callTool("move_log", map[string]interface{}{
		"room_id": "ghost",
	}))
	if err != nil {
		t.Fatalf("move_log failed: %v", err)
	}
	if !unknown.IsError {
		t.Error("Expected a tool error for an unknown room")
	}
}

func TestServerStatsTool(t *testing.T) {
	relay := newTestRelay()
	server := NewServer(relay)
	ctx := context.Background()

	relay.HandleJoin("c1", "lobby", "Alice")

	result, err := server.handleServerStats(ctx, callTool("server_stats", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("server_stats failed: %v", err)
	}

	text := toolText(t, result)
	if !strings.Contains(text, "Rooms: 1") {
		t.Errorf("Expected one room in stats, got: %s", text)
	}
	if !strings.Contains(text, "Connections: 0") {
		t.Errorf("Expected zero connections in stats, got: %s", text)
	}
	if !strings.Contains(text, "Uptime:") {
		t.Errorf("Expected uptime in stats, got: %s", text)
	}
}

func TestFormatPlayers(t *testing.T) {
	if got := formatPlayers(nil); got != "no players" {
		t.Errorf("Expected 'no players', got %q", got)
	}
}
