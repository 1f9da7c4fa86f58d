// Package memdb is an in-memory reference engine for the awaitdb
// bridging layer.
//
// It implements the engine package's contract faithfully enough to run
// the conformance tests: every operation returns a pending request, and
// every settlement arrives as a notification emitted from the engine's
// own goroutine, never inline from the caller.
//
// # Execution model
//
// All state mutation and all notification emission happen on a single
// writer goroutine fed by a FIFO job queue. Each emission is stamped
// with a monotonic logical sequence number, so a given call pattern
// always produces the same notification order — the property the
// golden-trace tests build on. Request tokens come from a pluggable
// TokenGenerator (UUIDv7 by default, a counting generator in tests).
//
// # What it deliberately is not
//
// memdb is a reference collaborator, not a database. There is no
// durability, no transaction atomicity or rollback (transactions
// enforce their mode and scope, nothing more), and schema calls are
// not restricted to upgrade windows — capability validation belongs to
// real engines. Records live in key-sorted in-memory tables ordered by
// engine.CompareKeys; indexes are derived lazily from their key paths.
package memdb
