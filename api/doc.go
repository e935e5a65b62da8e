// Package api provides the HTTP surface of the chess relay server.
//
// The api package implements:
//   - The websocket upgrade route used for all gameplay
//   - A read-only inspection API over rooms and move logs
//   - Health and Prometheus metrics endpoints
//   - MCP streamable-HTTP mounting
//   - Static file serving for the bundled board page
//
// Endpoints:
//
// Gameplay:
//   - GET /ws - Upgrade to WebSocket; every game event travels over it
//
// Inspection (read-only):
//   - GET /api/rooms - List all rooms
//   - GET /api/rooms/{id} - One room's state including a board snapshot
//   - GET /api/rooms/{id}/moves - One room's ordered move log
//
// Observability:
//   - GET /healthz - Liveness JSON (status, room and connection counts, uptime)
//   - GET /metrics - Prometheus text exposition
//   - POST /mcp - MCP endpoint exposing the read-only inspection tools
//
// Everything else falls through to the static file server, which serves the
// browser client from the configured static directory.
//
// Request/Response Format:
//
// All inspection endpoints return JSON. Errors are returned as JSON with
// appropriate HTTP status codes:
//
//	{
//	  "error": "room not found"
//	}
//
// Usage:
//
//	server := api.NewServer(relay, hub, mcpHandler, cfg.StaticDir)
//	http.ListenAndServe(addr, server)
package api
