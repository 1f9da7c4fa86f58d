package memdb

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/roach88/awaitdb/engine"
)

// Engine is the in-memory reference engine.
//
// All mutations and notification emissions happen on the writer
// goroutine started by New. External callers submit work by invoking
// contract methods, which enqueue jobs and return pending requests.
// Synchronous contract methods (schema calls, attribute reads) take
// the state lock directly.
type Engine struct {
	logger *slog.Logger
	tokens TokenGenerator
	clock  *Clock
	queue  *jobQueue
	trace  *Trace

	mu    sync.Mutex
	dbs   map[string]*dbState
	conns map[string]int

	wg sync.WaitGroup
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes the engine's debug logging. Notifications are
// logged at debug level with their op, token and sequence number.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTokenGenerator replaces the UUIDv7 request-token generator.
// Tests pass a SequenceGenerator for deterministic traces.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(e *Engine) {
		e.tokens = g
	}
}

// WithTrace records every emitted notification into t.
func WithTrace(t *Trace) Option {
	return func(e *Engine) {
		e.trace = t
	}
}

// New creates an engine and starts its writer goroutine. Call Close
// when done.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		tokens: UUIDv7Generator{},
		clock:  NewClock(),
		queue:  newJobQueue(),
		dbs:    make(map[string]*dbState),
		conns:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.wg.Add(1)
	go e.run()
	return e
}

// Close stops the writer goroutine after draining already queued work.
// Requests submitted afterwards fail with ErrClosed.
func (e *Engine) Close() {
	e.queue.Close()
	e.wg.Wait()
}

func (e *Engine) run() {
	defer e.wg.Done()
	for {
		j, ok := e.queue.Dequeue()
		if !ok {
			return
		}
		j.run()
	}
}

// Open implements engine.Engine. Requesting version 0 opens at the
// stored version (or 1 for a new database). A version above the stored
// one fires upgradeneeded before success, or blocked when another
// connection is live. A version below the stored one fails.
func (e *Engine) Open(name string, version uint64) engine.Request {
	return e.submit(fmt.Sprintf("open %s@v%d", name, version), func(req *request) {
		e.mu.Lock()
		defer e.mu.Unlock()

		db, ok := e.dbs[name]
		if !ok {
			db = &dbState{name: name, stores: make(map[string]*storeState)}
			e.dbs[name] = db
		}

		target := version
		if target == 0 {
			target = db.version
			if target == 0 {
				target = 1
			}
		}
		if target < db.version {
			e.fail(req, ErrVersionTooLow)
			return
		}

		if target > db.version {
			if e.conns[name] > 0 {
				req.setFailed(ErrBlocked)
				e.notify(req, engine.EventBlocked, nil)
				return
			}
			old := db.version
			db.version = target
			conn := &connection{eng: e, db: db, emitter: engine.NewEmitter()}
			e.conns[name]++
			e.notify(req, engine.EventUpgradeNeeded, engine.UpgradeInfo{
				Database:   conn,
				OldVersion: old,
				NewVersion: target,
			})
			e.complete(req, conn)
			return
		}

		conn := &connection{eng: e, db: db, emitter: engine.NewEmitter()}
		e.conns[name]++
		e.complete(req, conn)
	})
}

// DeleteDatabase implements engine.Engine. Existing connections keep
// their now-orphaned state; new opens see a fresh database.
func (e *Engine) DeleteDatabase(name string) engine.Request {
	return e.submit(fmt.Sprintf("deleteDatabase %s", name), func(req *request) {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.dbs, name)
		e.complete(req, nil)
	})
}

// submit creates a pending request and queues its job. A closed engine
// fails the request immediately.
func (e *Engine) submit(op string, run func(req *request)) *request {
	req := &request{
		emitter: engine.NewEmitter(),
		token:   e.tokens.Generate(),
		op:      op,
	}
	ok := e.queue.Enqueue(job{run: func() { run(req) }})
	if !ok {
		req.setFailed(ErrClosed)
		e.notify(req, engine.EventError, ErrClosed)
	}
	return req
}

// notify emits one notification, stamped, traced and logged. Called
// from the writer goroutine (or from submit after shutdown, when the
// writer is gone).
func (e *Engine) notify(req *request, name string, value any) {
	seq := e.clock.Next()
	if e.trace != nil {
		e.trace.record(seq, req.op, name)
	}
	e.logger.Debug("notify",
		"op", req.op,
		"token", req.token,
		"event", name,
		"seq", seq,
	)
	req.emitter.Emit(engine.Notification{Name: name, Value: value, Seq: seq})
}

func (e *Engine) complete(req *request, v any) {
	req.setSucceeded(v)
	e.notify(req, engine.EventSuccess, v)
}

func (e *Engine) fail(req *request, err error) {
	req.setFailed(err)
	e.notify(req, engine.EventError, err)
}
