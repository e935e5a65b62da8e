// Package mcp provides the Model Context Protocol surface of the chess relay.
//
// The mcp package implements:
//   - An in-process MCP server over the relay service
//   - Read-only inspection tools for AI agents
//   - A streamable HTTP handler for mounting on the main router
//
// MCP Tools:
//
// The package exposes the following tools:
//   - list_rooms: All rooms with status, players and last activity
//   - room_state: One room's board diagram plus its raw JSON state
//   - move_log: One room's moves in acceptance order
//   - server_stats: Connection and room counts, uptime
//
// Every tool is read-only. Gameplay happens exclusively over the websocket
// endpoint; an agent inspecting a room never disturbs the game inside it.
// Tool failures (unknown room, missing arguments) are reported as MCP tool
// errors, not protocol errors, so agents can recover in-band.
//
// Usage:
//
//	inspector := mcp.NewServer(relay)
//	router.Handle("/mcp", inspector.Handler())
package mcp
