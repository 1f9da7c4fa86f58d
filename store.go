package awaitdb

import (
	"context"
	"slices"

	"github.com/roach88/awaitdb/engine"
)

// Store is the adapted object store. Asynchronous native operations
// become blocking calls; cursor operations become lazy sequences;
// plain attributes pass through unchanged.
//
// Query arguments accept a single engine.Key, an *engine.KeyRange, or
// nil for the whole store.
type Store struct {
	native engine.ObjectStore
}

// Name returns the store name, unmodified from the native handle.
func (s *Store) Name() string {
	return s.native.Name()
}

// KeyPath returns the store's key path ("" for out-of-line keys).
func (s *Store) KeyPath() string {
	return s.native.KeyPath()
}

// AutoIncrement reports whether the store generates keys.
func (s *Store) AutoIncrement() bool {
	return s.native.AutoIncrement()
}

// IndexNames returns the index names as an ordered listing in canonical
// collation order.
func (s *Store) IndexNames() []string {
	names := slices.Clone(s.native.IndexNames())
	engine.SortNames(names)
	return names
}

// Get resolves to the first record matching query, or nil when there is
// none.
func (s *Store) Get(ctx context.Context, query any) (any, error) {
	return Await(ctx, s.native.Get(query))
}

// GetKey resolves to the first matching key, or nil.
func (s *Store) GetKey(ctx context.Context, query any) (engine.Key, error) {
	return Await(ctx, s.native.GetKey(query))
}

// GetAll resolves to every matching record in key order.
func (s *Store) GetAll(ctx context.Context, query any) ([]any, error) {
	return awaitAs[[]any](ctx, "getAll", func() engine.Request { return s.native.GetAll(query) })
}

// GetAllKeys resolves to every matching key in key order.
func (s *Store) GetAllKeys(ctx context.Context, query any) ([]engine.Key, error) {
	return awaitAs[[]engine.Key](ctx, "getAllKeys", func() engine.Request { return s.native.GetAllKeys(query) })
}

// Count resolves to the number of matching records.
func (s *Store) Count(ctx context.Context, query any) (uint64, error) {
	return awaitAs[uint64](ctx, "count", func() engine.Request { return s.native.Count(query) })
}

// Put writes a record, overwriting any existing one, and resolves to
// the record's key. Pass a nil key for in-line or generated keys.
func (s *Store) Put(ctx context.Context, value any, key engine.Key) (engine.Key, error) {
	return Await(ctx, s.native.Put(value, key))
}

// Add writes a record and resolves to its key; it fails if the key
// already exists.
func (s *Store) Add(ctx context.Context, value any, key engine.Key) (engine.Key, error) {
	return Await(ctx, s.native.Add(value, key))
}

// Delete removes every record matching query.
func (s *Store) Delete(ctx context.Context, query any) error {
	return awaitErr(ctx, func() engine.Request { return s.native.Delete(query) })
}

// Clear removes every record in the store.
func (s *Store) Clear(ctx context.Context) error {
	return awaitErr(ctx, s.native.Clear)
}

// OpenCursor returns the lazy sequence of records matching query in key
// order. Nothing is pulled from the engine until the first Next.
func (s *Store) OpenCursor(query any) *Cursor {
	return newCursor(s.native.OpenCursor(query))
}

// OpenKeyCursor is OpenCursor without record values.
func (s *Store) OpenKeyCursor(query any) *Cursor {
	return newCursor(s.native.OpenKeyCursor(query))
}

// Index returns the adapted index for name.
func (s *Store) Index(name string) (*Index, error) {
	idx, err := s.native.Index(name)
	if err != nil {
		return nil, err
	}
	return &Index{native: idx}, nil
}

// CreateIndex creates an index and wraps it. Engines accept this only
// while an upgrade is in progress.
func (s *Store) CreateIndex(name, keyPath string, opts engine.IndexOptions) (*Index, error) {
	idx, err := s.native.CreateIndex(name, keyPath, opts)
	if err != nil {
		return nil, err
	}
	return &Index{native: idx}, nil
}
