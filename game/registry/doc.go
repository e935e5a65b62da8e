// Package registry owns the room map and the connection membership index.
//
// Rooms are created on first join (GetOrCreate) and found by id (Get);
// lookups never create. Each connection holds at most one Membership, an
// index entry naming its room, role and color; binding a new membership
// overwrites the old one without cleaning the previous room, matching the
// relay's last-write-wins join semantics.
//
// Rooms leave the registry only through EvictIdle: a room is evicted once it
// has been idle past the configured age and none of its member connections
// are still open. Evicted rooms are snapshotted and handed to an Archiver —
// FileArchiver writes one JSON file per room, NopArchiver discards. Archival
// is export-only; nothing is ever restored.
//
// Concurrency:
//
// Registry guards its maps with an RWMutex and is safe for concurrent use on
// its own, though in the relay the service layer already serializes all
// mutating traffic above it.
package registry
