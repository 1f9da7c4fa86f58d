package memdb

import (
	"slices"

	"github.com/roach88/awaitdb/engine"
)

// dbState is the engine-side state of one named database, shared by
// every connection to it.
type dbState struct {
	name       string
	version    uint64
	stores     map[string]*storeState
	storeOrder []string
}

// connection implements engine.Database.
type connection struct {
	eng     *Engine
	db      *dbState
	emitter *engine.Emitter
	closed  bool
}

func (c *connection) Events() *engine.Emitter {
	return c.emitter
}

func (c *connection) Name() string {
	return c.db.name
}

func (c *connection) Version() uint64 {
	c.eng.mu.Lock()
	defer c.eng.mu.Unlock()
	return c.db.version
}

// ObjectStoreNames returns store names in creation order; callers
// wanting canonical order sort on their side.
func (c *connection) ObjectStoreNames() []string {
	c.eng.mu.Lock()
	defer c.eng.mu.Unlock()
	return slices.Clone(c.db.storeOrder)
}

func (c *connection) Transaction(storeNames []string, mode engine.TransactionMode) (engine.Transaction, error) {
	c.eng.mu.Lock()
	defer c.eng.mu.Unlock()

	for _, name := range storeNames {
		if _, ok := c.db.stores[name]; !ok {
			return nil, ErrNoSuchStore
		}
	}
	return &transaction{
		conn:    c,
		mode:    mode,
		names:   slices.Clone(storeNames),
		emitter: engine.NewEmitter(),
	}, nil
}

func (c *connection) CreateObjectStore(name string, opts engine.StoreOptions) (engine.ObjectStore, error) {
	c.eng.mu.Lock()
	defer c.eng.mu.Unlock()

	if _, ok := c.db.stores[name]; ok {
		return nil, ErrStoreExists
	}
	st := &storeState{
		name:          name,
		keyPath:       opts.KeyPath,
		autoIncrement: opts.AutoIncrement,
		indexes:       make(map[string]*indexState),
	}
	c.db.stores[name] = st
	c.db.storeOrder = append(c.db.storeOrder, name)
	return &objectStore{eng: c.eng, st: st, emitter: engine.NewEmitter()}, nil
}

func (c *connection) DeleteObjectStore(name string) error {
	c.eng.mu.Lock()
	defer c.eng.mu.Unlock()

	if _, ok := c.db.stores[name]; !ok {
		return ErrNoSuchStore
	}
	delete(c.db.stores, name)
	if i := slices.Index(c.db.storeOrder, name); i >= 0 {
		c.db.storeOrder = slices.Delete(c.db.storeOrder, i, i+1)
	}
	return nil
}

// Close releases the connection's slot in the live-connection count,
// unblocking future version changes. Idempotent.
func (c *connection) Close() {
	c.eng.mu.Lock()
	defer c.eng.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.eng.conns[c.db.name] > 0 {
		c.eng.conns[c.db.name]--
	}
}

// transaction implements engine.Transaction. It enforces mode and
// scope; atomicity is out of scope for the reference engine.
type transaction struct {
	conn    *connection
	mode    engine.TransactionMode
	names   []string
	emitter *engine.Emitter
	aborted bool
}

func (t *transaction) Events() *engine.Emitter {
	return t.emitter
}

func (t *transaction) Mode() engine.TransactionMode {
	return t.mode
}

func (t *transaction) ObjectStoreNames() []string {
	return slices.Clone(t.names)
}

func (t *transaction) ObjectStore(name string) (engine.ObjectStore, error) {
	t.conn.eng.mu.Lock()
	defer t.conn.eng.mu.Unlock()

	if !slices.Contains(t.names, name) {
		return nil, ErrNoSuchStore
	}
	st, ok := t.conn.db.stores[name]
	if !ok {
		return nil, ErrNoSuchStore
	}
	return &objectStore{eng: t.conn.eng, st: st, tx: t, emitter: engine.NewEmitter()}, nil
}

func (t *transaction) Abort() error {
	t.conn.eng.mu.Lock()
	defer t.conn.eng.mu.Unlock()
	t.aborted = true
	return nil
}
