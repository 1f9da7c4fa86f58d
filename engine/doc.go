// Package engine defines the boundary contract between the awaitdb
// bridging layer and a callback-style storage engine.
//
// An engine exposes a hierarchy of native handles (database →
// transaction → object store → index → cursor). Every asynchronous
// operation returns a Request: an in-flight handle that later fires
// exactly one terminal notification, "success" or "error", on its
// Emitter. The bridging layer in the root package turns those
// notifications into blocking, context-aware calls; this package only
// names the shapes both sides agree on.
//
// # Notifications
//
// Native handles are notification sources. Each handle owns an Emitter,
// a per-name registry of subscribers plus a per-name mailbox of
// unclaimed occurrences. Go has no single-threaded event loop, so a
// notification emitted before anyone subscribes cannot be handed to a
// not-yet-existing listener; the mailbox keeps the occurrence until the
// next subscriber claims it. An occurrence is delivered to at most one
// waiter, exactly once.
//
// # Keys
//
// Keys are int64, float64, string, or []byte. CompareKeys defines the
// one canonical ordering all engines must agree on: numbers sort before
// strings, strings before binary; strings are ordered by canonical
// collation. Ordered results (GetAll, cursors, name listings) follow
// this ordering.
//
// # Implementations
//
// The memdb package provides an in-memory reference engine used by the
// conformance tests. Real engines wrap whatever host API they sit on;
// the contract deliberately says nothing about persistence, indexing
// internals, or transaction isolation — those belong to the engine.
package engine
