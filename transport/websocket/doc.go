// Package websocket is the relay's client transport.
//
// The package implements:
//   - HTTP upgrade handling and connection lifecycle
//   - Per-connection read/write pumps with ping/pong keepalive
//   - One-pass decoding of inbound frames into typed events
//   - Dispatch into the relay service
//   - The connection directory the service fans out through
//
// Architecture:
//
// The Hub owns the upgrade path and frame dispatch; each accepted
// connection becomes a Client with a generated id, a buffered send queue,
// and two goroutines (readPump, writePump). The Directory indexes live
// clients by id and implements the service.ConnDirectory the relay uses to
// deliver events, so transport and game state never share maps.
//
// Message Protocol:
//
// Frames are JSON objects tagged by a "type" field. Inbound types are
// join_game, chess_move, spectate and chat_message; DecodeEvent rejects
// everything else ("unknown event type") and every payload that does not
// fit its tag ("malformed frame"). Outbound events are built by the service
// package and delivered one frame per event.
//
// Connection Lifecycle:
//
// 1. GET /ws upgrades, the client registers and receives "connected"
// 2. Inbound frames decode and dispatch to the relay service
// 3. Missed pongs, read errors or a full send queue close the connection
// 4. Teardown unregisters the client and reaps its room membership once
//
// Concurrency:
//
// Pumps are per-connection; the directory is mutex-guarded. Send never
// blocks: a connection that cannot drain its queue is closed rather than
// allowed to stall a broadcast.
package websocket
