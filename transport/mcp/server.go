package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/playrelay/chessroom/game/room"
	"github.com/playrelay/chessroom/game/service"
)

// Server exposes read-only inspection tools over MCP. The tools call the
// relay service in-process, so they always observe the live registry; none
// of them can mutate a room. Gameplay stays on the websocket.
type Server struct {
	relay     service.RelayService
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers all tools.
func NewServer(relay service.RelayService) *Server {
	s := &Server{relay: relay}
	s.initMCPServer()
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Chess Room Relay",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Chess Room Relay - MCP Interface

Read-only inspection of a live chess relay. Games are played over the
websocket endpoint; these tools observe rooms without touching them.

AVAILABLE TOOLS:
- list_rooms: All rooms with status, players and activity
- room_state: One room's board diagram plus its JSON state
- move_log: One room's moves in acceptance order
- server_stats: Connection and room counts, uptime

The 'room_id' parameter matches the gameId players use when joining.`),
	)

	// Register all tools
	s.registerTools()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rooms",
		Description: "List all rooms with their status, players, spectator count and last activity",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListRooms)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "room_state",
		Description: "Get one room's state: a fixed-width board diagram, the players, whose turn it is, and the raw JSON state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": map[string]interface{}{
					"type":        "string",
					"description": "Room ID to inspect",
				},
			},
			Required: []string{"room_id"},
		},
	}, s.handleRoomState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move_log",
		Description: "Get one room's moves in the order they were accepted",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": map[string]interface{}{
					"type":        "string",
					"description": "Room ID to inspect",
				},
			},
			Required: []string{"room_id"},
		},
	}, s.handleMoveLog)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "server_stats",
		Description: "Get process-level counts: rooms, connections, memberships, uptime",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleServerStats)
}

// Handler returns the streamable HTTP endpoint for mounting on a router.
func (s *Server) Handler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcpServer)
}

// Tool handlers

func (s *Server) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rooms := s.relay.Rooms()
	if len(rooms) == 0 {
		return mcp.NewToolResultText("No rooms."), nil
	}

	result := fmt.Sprintf("Rooms (%d):\n\n", len(rooms))
	for _, info := range rooms {
		result += fmt.Sprintf("- %s [%s] %s | spectators=%d moves=%d last_active=%s\n",
			info.ID, info.Status, formatPlayers(info.Players),
			info.SpectatorCount, info.MoveCount,
			info.LastActive.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleRoomState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)
	if roomID == "" {
		return mcp.NewToolResultError("room_id is required"), nil
	}

	state, err := s.relay.RoomState(roomID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRoomState(state)), nil
}

func (s *Server) handleMoveLog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)
	if roomID == "" {
		return mcp.NewToolResultError("room_id is required"), nil
	}

	moves, err := s.relay.MoveLog(roomID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(moves) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("Room %s has no moves yet.", roomID)), nil
	}

	result := fmt.Sprintf("Moves in %s (%d):\n\n", roomID, len(moves))
	for i, m := range moves {
		result += fmt.Sprintf("%d. %s %s %s→%s\n", i+1, m.Player, m.Piece, m.From, m.To)
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleServerStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := s.relay.Stats()

	result := fmt.Sprintf(`Server Stats:
Rooms: %d
Connections: %d
Memberships: %d
Started: %s
Uptime: %s`,
		stats.Rooms, stats.Connections, stats.Memberships,
		stats.StartedAt.Format("2006-01-02 15:04:05"), stats.Uptime)

	return mcp.NewToolResultText(result), nil
}

// Formatting helpers

func formatPlayers(players []room.Player) string {
	if len(players) == 0 {
		return "no players"
	}
	parts := make([]string, 0, len(players))
	for _, p := range players {
		parts = append(parts, fmt.Sprintf("%s(%s)", p.Name, p.Color))
	}
	return strings.Join(parts, " vs ")
}

func formatRoomState(state service.RoomState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Room: %s [%s]\n", state.ID, state.Status)
	fmt.Fprintf(&b, "Players: %s\n", formatPlayers(state.Players))
	fmt.Fprintf(&b, "Turn: %s | Moves: %d | Spectators: %d\n\n",
		state.CurrentTurn, state.MoveCount, state.SpectatorCount)

	b.WriteString(state.Board.Render())

	// Raw state for clients that want to parse rather than read.
	if data, err := json.MarshalIndent(state, "", "  "); err == nil {
		b.WriteString("\n")
		b.Write(data)
	}

	return b.String()
}
