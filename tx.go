package awaitdb

import (
	"slices"

	"github.com/roach88/awaitdb/engine"
)

// Tx is the adapted transaction.
type Tx struct {
	native engine.Transaction
}

// Mode returns the transaction mode, unmodified from the native handle.
func (t *Tx) Mode() engine.TransactionMode {
	return t.native.Mode()
}

// ObjectStoreNames returns the transaction's store scope as an ordered
// listing in canonical collation order.
func (t *Tx) ObjectStoreNames() []string {
	names := slices.Clone(t.native.ObjectStoreNames())
	engine.SortNames(names)
	return names
}

// Store returns the adapted object store for name. The name must be in
// the transaction's scope.
func (t *Tx) Store(name string) (*Store, error) {
	st, err := t.native.ObjectStore(name)
	if err != nil {
		return nil, err
	}
	return &Store{native: st}, nil
}

// Abort cancels the transaction; operations issued afterwards fail with
// the engine's abort error.
func (t *Tx) Abort() error {
	return t.native.Abort()
}
