package awaitdb

// Scripted in-memory fakes for the bridging tests. They fire whatever
// the test tells them to, in the order the test says — nothing here
// resembles a working engine on purpose.

import (
	"sync"

	"github.com/roach88/awaitdb/engine"
)

type fakeRequest struct {
	emitter *engine.Emitter
	token   string

	mu     sync.Mutex
	state  engine.RequestState
	result any
	err    error
}

func newFakeRequest() *fakeRequest {
	return &fakeRequest{emitter: engine.NewEmitter(), token: "req-test"}
}

func (r *fakeRequest) Events() *engine.Emitter { return r.emitter }

func (r *fakeRequest) Token() string { return r.token }

func (r *fakeRequest) State() engine.RequestState { r.mu.Lock(); defer r.mu.Unlock(); return r.state }

func (r *fakeRequest) Result() any { r.mu.Lock(); defer r.mu.Unlock(); return r.result }

func (r *fakeRequest) Err() error { r.mu.Lock(); defer r.mu.Unlock(); return r.err }

func (r *fakeRequest) succeed(v any) {
	r.mu.Lock()
	r.state = engine.Succeeded
	r.result = v
	r.mu.Unlock()
	r.emitter.Emit(engine.Notification{Name: engine.EventSuccess, Value: v})
}

func (r *fakeRequest) fail(err error) {
	r.mu.Lock()
	r.state = engine.Failed
	r.err = err
	r.mu.Unlock()
	r.emitter.Emit(engine.Notification{Name: engine.EventError, Value: err})
}

func (r *fakeRequest) emit(name string, value any) {
	r.emitter.Emit(engine.Notification{Name: name, Value: value})
}

// fakeCursor scripts a fixed run of (key, value) positions. Continue
// re-fires success on the owning request with the cursor itself, or
// with nil once the run is exhausted.
type fakeCursor struct {
	req  *fakeRequest
	keys []engine.Key
	vals []any
	pos  int

	deleteReq *fakeRequest
	updateReq *fakeRequest
	updated   []any
}

func (c *fakeCursor) Key() engine.Key { return c.keys[c.pos] }

func (c *fakeCursor) PrimaryKey() engine.Key { return c.keys[c.pos] }

func (c *fakeCursor) Value() any { return c.vals[c.pos] }

func (c *fakeCursor) Continue() {
	c.pos++
	if c.pos < len(c.keys) {
		c.req.succeed(c)
		return
	}
	c.req.succeed(nil)
}

func (c *fakeCursor) Delete() engine.Request {
	return c.deleteReq
}

func (c *fakeCursor) Update(value any) engine.Request {
	c.updated = append(c.updated, value)
	return c.updateReq
}

// start fires the initial settlement: the cursor itself when the run is
// non-empty, nil otherwise.
func (c *fakeCursor) start() {
	if len(c.keys) == 0 {
		c.req.succeed(nil)
		return
	}
	c.req.succeed(c)
}

// fakeObjectStore returns one scripted request per operation name.
// Operations the test did not script panic, which is the point.
type fakeObjectStore struct {
	emitter  *engine.Emitter
	name     string
	keyPath  string
	auto     bool
	indexes  []string
	requests map[string]*fakeRequest
}

func newFakeObjectStore(name string) *fakeObjectStore {
	return &fakeObjectStore{
		emitter:  engine.NewEmitter(),
		name:     name,
		requests: make(map[string]*fakeRequest),
	}
}

func (s *fakeObjectStore) script(op string) *fakeRequest {
	req := newFakeRequest()
	s.requests[op] = req
	return req
}

func (s *fakeObjectStore) scripted(op string) engine.Request {
	req, ok := s.requests[op]
	if !ok {
		panic("fakeObjectStore: operation not scripted: " + op)
	}
	return req
}

func (s *fakeObjectStore) Events() *engine.Emitter { return s.emitter }

func (s *fakeObjectStore) Name() string { return s.name }

func (s *fakeObjectStore) KeyPath() string { return s.keyPath }

func (s *fakeObjectStore) AutoIncrement() bool { return s.auto }

func (s *fakeObjectStore) IndexNames() []string { return s.indexes }

func (s *fakeObjectStore) Get(query any) engine.Request { return s.scripted("get") }

func (s *fakeObjectStore) GetKey(query any) engine.Request { return s.scripted("getKey") }

func (s *fakeObjectStore) GetAll(query any) engine.Request { return s.scripted("getAll") }

func (s *fakeObjectStore) GetAllKeys(query any) engine.Request { return s.scripted("getAllKeys") }

func (s *fakeObjectStore) Count(query any) engine.Request { return s.scripted("count") }

func (s *fakeObjectStore) Put(value any, key engine.Key) engine.Request {
	return s.scripted("put")
}

func (s *fakeObjectStore) Add(value any, key engine.Key) engine.Request {
	return s.scripted("add")
}

func (s *fakeObjectStore) Delete(query any) engine.Request { return s.scripted("delete") }

func (s *fakeObjectStore) Clear() engine.Request { return s.scripted("clear") }

func (s *fakeObjectStore) OpenCursor(query any) engine.Request { return s.scripted("openCursor") }

func (s *fakeObjectStore) OpenKeyCursor(query any) engine.Request { return s.scripted("openKeyCursor") }

func (s *fakeObjectStore) Index(name string) (engine.Index, error) {
	panic("fakeObjectStore: Index not scripted")
}

func (s *fakeObjectStore) CreateIndex(name, keyPath string, opts engine.IndexOptions) (engine.Index, error) {
	panic("fakeObjectStore: CreateIndex not scripted")
}

// fakeDatabase records schema calls made during upgrades.
type fakeDatabase struct {
	emitter    *engine.Emitter
	name       string
	version    uint64
	storeNames []string
	created    []string
	closed     bool
}

func newFakeDatabase(name string, version uint64) *fakeDatabase {
	return &fakeDatabase{emitter: engine.NewEmitter(), name: name, version: version}
}

func (d *fakeDatabase) Events() *engine.Emitter { return d.emitter }

func (d *fakeDatabase) Name() string { return d.name }

func (d *fakeDatabase) Version() uint64 { return d.version }

func (d *fakeDatabase) ObjectStoreNames() []string { return d.storeNames }

func (d *fakeDatabase) Transaction(storeNames []string, mode engine.TransactionMode) (engine.Transaction, error) {
	return &fakeTransaction{emitter: engine.NewEmitter(), mode: mode, names: storeNames}, nil
}

func (d *fakeDatabase) CreateObjectStore(name string, opts engine.StoreOptions) (engine.ObjectStore, error) {
	d.created = append(d.created, name)
	d.storeNames = append(d.storeNames, name)
	return newFakeObjectStore(name), nil
}

func (d *fakeDatabase) DeleteObjectStore(name string) error { return nil }

func (d *fakeDatabase) Close() { d.closed = true }

type fakeTransaction struct {
	emitter *engine.Emitter
	mode    engine.TransactionMode
	names   []string
	aborted bool
}

func (t *fakeTransaction) Events() *engine.Emitter { return t.emitter }

func (t *fakeTransaction) Mode() engine.TransactionMode { return t.mode }

func (t *fakeTransaction) ObjectStoreNames() []string { return t.names }

func (t *fakeTransaction) Abort() error { t.aborted = true; return nil }

func (t *fakeTransaction) ObjectStore(name string) (engine.ObjectStore, error) {
	return newFakeObjectStore(name), nil
}

// fakeEngine hands out one scripted open request per Open call.
type fakeEngine struct {
	openReq   *fakeRequest
	deleteReq *fakeRequest
	openName  string
	openVer   uint64
}

func (e *fakeEngine) Open(name string, version uint64) engine.Request {
	e.openName, e.openVer = name, version
	return e.openReq
}

func (e *fakeEngine) DeleteDatabase(name string) engine.Request {
	return e.deleteReq
}
