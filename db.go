package awaitdb

import (
	"slices"

	"github.com/roach88/awaitdb/engine"
)

// DB is the adapted database connection. It holds a non-owning
// reference to the native handle; derived wrappers are built fresh on
// every call.
type DB struct {
	native engine.Database
}

func newDB(native engine.Database) *DB {
	return &DB{native: native}
}

// Name returns the database name, unmodified from the native handle.
func (d *DB) Name() string {
	return d.native.Name()
}

// Version returns the open connection's schema version.
func (d *DB) Version() uint64 {
	return d.native.Version()
}

// ObjectStoreNames returns the store names as an ordered listing in
// canonical collation order.
func (d *DB) ObjectStoreNames() []string {
	names := slices.Clone(d.native.ObjectStoreNames())
	engine.SortNames(names)
	return names
}

// Transaction opens a transaction over the named stores and wraps it.
func (d *DB) Transaction(storeNames []string, mode engine.TransactionMode) (*Tx, error) {
	tx, err := d.native.Transaction(storeNames, mode)
	if err != nil {
		return nil, err
	}
	return &Tx{native: tx}, nil
}

// CreateObjectStore creates a store and wraps it. Engines accept this
// only while an upgrade is in progress.
func (d *DB) CreateObjectStore(name string, opts engine.StoreOptions) (*Store, error) {
	st, err := d.native.CreateObjectStore(name, opts)
	if err != nil {
		return nil, err
	}
	return &Store{native: st}, nil
}

// DeleteObjectStore removes a store. Engines accept this only while an
// upgrade is in progress.
func (d *DB) DeleteObjectStore(name string) error {
	return d.native.DeleteObjectStore(name)
}

// Close releases the connection. Idempotent.
func (d *DB) Close() {
	d.native.Close()
}
