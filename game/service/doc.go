// Package service implements the relay core: it applies client events to
// rooms and fans the resulting events out to room audiences.
//
// Core Types:
//
// RelayService is the contract the transports program against, implemented
// by relayServiceImpl. Conn is the service's view of one client connection
// and ConnDirectory resolves connection ids to live connections; the
// websocket hub provides both. Outbound wire events live in events.go, one
// struct per "type" tag, built through New*Event constructors so the tag is
// never hand-typed at call sites.
//
// Usage:
//
//	reg := registry.New(nil)
//	svc := service.NewRelayService(reg, hub, archiver)
//
//	// transport, per decoded frame:
//	if err := svc.HandleJoin(connID, ev.GameID, ev.PlayerName); err != nil {
//		// already answered on the wire where the protocol calls for it
//	}
//
// Rejections the protocol answers (full room, unknown room, out-of-turn
// move, validator refusal) are sent by the service as error events to the
// offending connection; membershipless traffic is dropped without a reply.
// Handlers still return the rejection so transports can log and count it.
//
// Concurrency:
//
// One RWMutex serializes every mutating handler, and broadcasts run inside
// that critical section, so each room's event order equals its mutation
// order. Sends never block: Conn.Send queues or reports failure, and the
// service skips closed connections. Read methods (Rooms, RoomState,
// MoveLog, Stats) take the read lock only.
package service
