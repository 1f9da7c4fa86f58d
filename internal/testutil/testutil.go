// Package testutil provides deterministic engine construction for
// tests.
//
// A deterministic engine uses sequential request tokens instead of
// UUIDv7 and records every notification into a trace, so the same call
// pattern produces byte-identical traces across runs. Golden-file
// comparison depends on this.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/roach88/awaitdb/memdb"
)

// NewEngine creates a deterministic in-memory engine, closed via
// t.Cleanup. The returned trace holds every notification the engine
// emits.
func NewEngine(t *testing.T) (*memdb.Engine, *memdb.Trace) {
	t.Helper()

	trace := &memdb.Trace{}
	e := memdb.New(
		memdb.WithTokenGenerator(memdb.NewSequenceGenerator("req")),
		memdb.WithTrace(trace),
		memdb.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	t.Cleanup(e.Close)
	return e, trace
}
