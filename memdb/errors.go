package memdb

import "errors"

// Failures memdb reports through error notifications. The bridging
// layer passes them to callers verbatim, so they are plain sentinels
// matchable with errors.Is.
var (
	// ErrClosed means the engine's writer goroutine has been shut down.
	ErrClosed = errors.New("memdb: engine closed")

	// ErrVersionTooLow means an open requested a version below the one
	// already stored.
	ErrVersionTooLow = errors.New("memdb: requested version is below the stored version")

	// ErrBlocked is the state an open request is left in after firing
	// its blocked notification.
	ErrBlocked = errors.New("memdb: version change blocked by a live connection")

	// ErrNoSuchStore means the named object store does not exist or is
	// outside the transaction's scope.
	ErrNoSuchStore = errors.New("memdb: no such object store")

	// ErrStoreExists rejects creating a store that already exists.
	ErrStoreExists = errors.New("memdb: object store already exists")

	// ErrNoSuchIndex means the named index does not exist.
	ErrNoSuchIndex = errors.New("memdb: no such index")

	// ErrIndexExists rejects creating an index that already exists.
	ErrIndexExists = errors.New("memdb: index already exists")

	// ErrKeyExists rejects an add whose key is already present.
	ErrKeyExists = errors.New("memdb: key already exists")

	// ErrNoKey means a write supplied no key and none could be derived
	// from the key path or generated.
	ErrNoKey = errors.New("memdb: no key supplied and none derivable")

	// ErrUniqueConstraint rejects a write that would duplicate a key in
	// a unique index.
	ErrUniqueConstraint = errors.New("memdb: unique index constraint violated")

	// ErrReadOnly rejects writes issued through a readonly transaction.
	ErrReadOnly = errors.New("memdb: write in a readonly transaction")

	// ErrTransactionAborted rejects operations issued after Abort.
	ErrTransactionAborted = errors.New("memdb: transaction aborted")
)
