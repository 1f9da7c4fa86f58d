package memdb

import (
	"testing"
	"time"

	"github.com/roach88/awaitdb/engine"
	"github.com/stretchr/testify/require"
)

const settleTimeout = 2 * time.Second

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithTokenGenerator(NewSequenceGenerator("req"))}, opts...)
	e := New(opts...)
	t.Cleanup(e.Close)
	return e
}

// recv waits for one notification on the subscription.
func recv(t *testing.T, sub *engine.Subscription) engine.Notification {
	t.Helper()
	select {
	case n := <-sub.C():
		return n
	case <-time.After(settleTimeout):
		t.Fatal("timed out waiting for notification")
		return engine.Notification{}
	}
}

// settle waits for the request's terminal notification and returns its
// outcome.
func settle(t *testing.T, req engine.Request) (any, error) {
	t.Helper()
	sub := req.Events().Subscribe(engine.EventSuccess, engine.EventError)
	defer sub.Release()

	n := recv(t, sub)
	if n.Name == engine.EventError {
		return nil, req.Err()
	}
	return req.Result(), nil
}

// mustSettle is settle for requests the test expects to succeed.
func mustSettle(t *testing.T, req engine.Request) any {
	t.Helper()
	v, err := settle(t, req)
	require.NoError(t, err)
	return v
}

// openAt opens the named database at version, running setup against the
// half-open connection if an upgrade fires, and returns the connection.
func openAt(t *testing.T, e *Engine, name string, version uint64, setup func(db engine.Database)) engine.Database {
	t.Helper()
	req := e.Open(name, version)

	up := req.Events().Subscribe(engine.EventUpgradeNeeded)
	defer up.Release()

	v := mustSettle(t, req)
	select {
	case n := <-up.C():
		if setup != nil {
			setup(n.Value.(engine.UpgradeInfo).Database)
		}
	default:
	}
	db, ok := v.(engine.Database)
	require.True(t, ok, "open resolved with %T", v)
	return db
}

// newStore opens a fresh database with a single store and returns a
// readwrite handle on that store.
func newStore(t *testing.T, e *Engine, opts engine.StoreOptions) engine.ObjectStore {
	t.Helper()
	db := openAt(t, e, "testdb", 1, func(d engine.Database) {
		_, err := d.CreateObjectStore("items", opts)
		require.NoError(t, err)
	})
	tx, err := db.Transaction([]string{"items"}, engine.ReadWrite)
	require.NoError(t, err)
	st, err := tx.ObjectStore("items")
	require.NoError(t, err)
	return st
}
