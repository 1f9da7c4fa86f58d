package engine

import "sync"

// Names of the notifications fired by native handles.
//
// Requests fire exactly one of success/error per operation (a cursor
// request re-fires success after each Continue). Open requests may
// additionally fire upgradeneeded and blocked before their terminal
// notification.
const (
	EventSuccess       = "success"
	EventError         = "error"
	EventUpgradeNeeded = "upgradeneeded"
	EventBlocked       = "blocked"
)

// Notification is one occurrence of a named event on a handle.
//
// Seq is the engine's logical timestamp for the occurrence. It exists
// for trace ordering and diagnostics; delivery order is already
// guaranteed by the emitter.
type Notification struct {
	Name  string
	Value any
	Seq   int64
}

// Source is anything that fires notifications. All native handles and
// requests are sources.
type Source interface {
	Events() *Emitter
}

// subscriptionBuffer is the minimum delivery channel capacity per
// subscription. Subscribe grows the channel past it when the mailbox
// holds more matching occurrences, so claiming never strands part of
// the mailbox.
const subscriptionBuffer = 4

// Subscription is one registered interest in a set of event names.
//
// Occurrences are received from C in emission order. Release is
// idempotent and must be called on every exit path of the owning wait;
// a released subscription receives nothing further.
type Subscription struct {
	emitter *Emitter
	names   []string
	id      int
	ch      chan Notification
	once    sync.Once
}

// C returns the delivery channel.
func (s *Subscription) C() <-chan Notification {
	return s.ch
}

// Release deregisters the subscription. Idempotent.
func (s *Subscription) Release() {
	s.once.Do(func() {
		s.emitter.release(s)
	})
}

// matches reports whether the subscription listens for name.
func (s *Subscription) matches(name string) bool {
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

// Emitter is the notification channel owned by one native handle.
//
// It keeps a registry of live subscriptions plus a mailbox of
// occurrences that arrived while no subscription was listening. Go has
// no single-threaded event loop, so an engine goroutine may emit before
// the bridging layer gets to subscribe; the mailbox holds such an
// occurrence until the next matching subscriber claims it. Each
// occurrence is delivered to at most one subscription, exactly once,
// in emission order.
//
// Thread-safety: all methods are safe for concurrent use.
type Emitter struct {
	mu     sync.Mutex
	nextID int
	subs   []*Subscription
	parked []Notification
}

// NewEmitter creates an emitter with no subscribers and an empty
// mailbox.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Subscribe registers interest in the given event names and returns the
// subscription handle. Parked occurrences matching any of the names are
// claimed immediately, in emission order.
func (e *Emitter) Subscribe(names ...string) *Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &Subscription{
		emitter: e,
		names:   names,
		id:      e.nextID,
	}
	e.nextID++

	// The channel must fit every matching parked occurrence; one left
	// behind would stay parked for the subscription's whole lifetime.
	buf := subscriptionBuffer
	matching := 0
	for _, n := range e.parked {
		if s.matches(n.Name) {
			matching++
		}
	}
	if matching > buf {
		buf = matching
	}
	s.ch = make(chan Notification, buf)
	e.subs = append(e.subs, s)

	// Claim parked occurrences in emission order.
	remaining := e.parked[:0]
	for _, n := range e.parked {
		if s.matches(n.Name) {
			s.ch <- n
			continue
		}
		remaining = append(remaining, n)
	}
	e.parked = remaining

	return s
}

// Emit fires one occurrence. It is delivered to the oldest live
// subscription listening for the name, or parked if there is none.
// Emit never blocks.
func (e *Emitter) Emit(n Notification) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, s := range e.subs {
		if s.matches(n.Name) && len(s.ch) < cap(s.ch) {
			s.ch <- n
			return
		}
	}
	e.parked = append(e.parked, n)
}

// SubscriberCount returns the number of live subscriptions listening
// for name. Used by tests to assert that waits clean up after
// themselves.
func (e *Emitter) SubscriberCount(name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := 0
	for _, s := range e.subs {
		if s.matches(name) {
			count++
		}
	}
	return count
}

func (e *Emitter) release(sub *Subscription) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, s := range e.subs {
		if s.id == sub.id {
			e.subs = append(e.subs[:i], e.subs[i+1:]...)
			return
		}
	}
}
