package memdb

import (
	"sync"

	"github.com/roach88/awaitdb/engine"
)

// request implements engine.Request. The op label names the operation
// for traces and logs ("users.add", "open app@v1").
type request struct {
	emitter *engine.Emitter
	token   string
	op      string

	mu     sync.Mutex
	state  engine.RequestState
	result any
	err    error
}

func (r *request) Events() *engine.Emitter {
	return r.emitter
}

func (r *request) Token() string {
	return r.token
}

func (r *request) State() engine.RequestState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *request) Result() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

func (r *request) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// setSucceeded records a success settlement. Cursor requests settle
// repeatedly, once per continuation, overwriting the previous result.
func (r *request) setSucceeded(v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = engine.Succeeded
	r.result = v
	r.err = nil
}

func (r *request) setFailed(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = engine.Failed
	r.err = err
}
