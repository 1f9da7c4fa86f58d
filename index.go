package awaitdb

import (
	"context"

	"github.com/roach88/awaitdb/engine"
)

// Index is the adapted secondary index. Query arguments address index
// keys, not primary keys.
type Index struct {
	native engine.Index
}

// Name returns the index name, unmodified from the native handle.
func (i *Index) Name() string {
	return i.native.Name()
}

// KeyPath returns the record field the index is built over.
func (i *Index) KeyPath() string {
	return i.native.KeyPath()
}

// Unique reports whether the index rejects duplicate keys.
func (i *Index) Unique() bool {
	return i.native.Unique()
}

// Get resolves to the first record whose index key matches query, or
// nil.
func (i *Index) Get(ctx context.Context, query any) (any, error) {
	return Await(ctx, i.native.Get(query))
}

// GetKey resolves to the primary key of the first match, or nil.
func (i *Index) GetKey(ctx context.Context, query any) (engine.Key, error) {
	return Await(ctx, i.native.GetKey(query))
}

// GetAll resolves to every matching record in index-key order.
func (i *Index) GetAll(ctx context.Context, query any) ([]any, error) {
	return awaitAs[[]any](ctx, "index getAll", func() engine.Request { return i.native.GetAll(query) })
}

// GetAllKeys resolves to the primary keys of every match in index-key
// order.
func (i *Index) GetAllKeys(ctx context.Context, query any) ([]engine.Key, error) {
	return awaitAs[[]engine.Key](ctx, "index getAllKeys", func() engine.Request { return i.native.GetAllKeys(query) })
}

// Count resolves to the number of matching index entries.
func (i *Index) Count(ctx context.Context, query any) (uint64, error) {
	return awaitAs[uint64](ctx, "index count", func() engine.Request { return i.native.Count(query) })
}

// OpenCursor returns the lazy sequence of records in index-key order.
func (i *Index) OpenCursor(query any) *Cursor {
	return newCursor(i.native.OpenCursor(query))
}

// OpenKeyCursor is OpenCursor without record values.
func (i *Index) OpenKeyCursor(query any) *Cursor {
	return newCursor(i.native.OpenKeyCursor(query))
}
