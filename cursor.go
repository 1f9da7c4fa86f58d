package awaitdb

import (
	"context"
	"fmt"
	"iter"

	"github.com/roach88/awaitdb/engine"
)

// Cursor is the lazy pull-based sequence over a cursor-driven
// enumeration. It is finite and not restartable: once exhausted it
// stays exhausted.
//
// Advancement is consumer-driven. Each Next call (after the first)
// issues the native cursor's continuation and then waits for the
// re-fired settlement, so the engine only ever runs one position ahead
// of the consumer — back-pressure stays with the caller. A nil resolved
// value is the termination sentinel and is not yielded.
type Cursor struct {
	req engine.Request
	cur engine.Cursor
	// needContinue is set only after a settlement has actually been
	// consumed, so an aborted pull never issues a second continuation
	// and never advances past an unconsumed settlement.
	needContinue bool
	done         bool
}

func newCursor(req engine.Request) *Cursor {
	return &Cursor{req: req}
}

// Next pulls the next item. It returns (nil, nil) once the enumeration
// is exhausted. The returned item is positioned; it stays valid until
// the following Next call advances the native cursor.
//
// A pull that fails with a cancellation-origin error does not corrupt
// the sequence: the settlement stays parked in the emitter and the
// next Next call (with a live context) consumes it from the same
// position.
func (c *Cursor) Next(ctx context.Context) (*Item, error) {
	if c.done {
		return nil, nil
	}
	if c.needContinue {
		// The continuation re-fires success on the same request; the
		// emitter parks it if it lands before the wait below begins.
		c.cur.Continue()
		c.needContinue = false
	}

	v, err := Await(ctx, c.req)
	if err != nil {
		return nil, err
	}
	if v == nil {
		c.done = true
		return nil, nil
	}
	cur, ok := v.(engine.Cursor)
	if !ok {
		return nil, fmt.Errorf("cursor: request resolved with %T, want engine.Cursor", v)
	}
	c.cur = cur
	c.needContinue = true
	return &Item{cur: cur}, nil
}

// All adapts the cursor to a range-over-func sequence:
//
//	for item, err := range cur.All(ctx) {
//		if err != nil { ... }
//	}
//
// The sequence ends after an error; breaking out stops pulling, and the
// engine is never advanced past the last consumed position.
func (c *Cursor) All(ctx context.Context) iter.Seq2[*Item, error] {
	return func(yield func(*Item, error) bool) {
		for {
			item, err := c.Next(ctx)
			if err != nil {
				yield(nil, err)
				return
			}
			if item == nil {
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

// Item is one yielded cursor position.
type Item struct {
	cur engine.Cursor
}

// Key returns the position's key (the index key when enumerating an
// index).
func (i *Item) Key() engine.Key {
	return i.cur.Key()
}

// PrimaryKey returns the underlying record's primary key.
func (i *Item) PrimaryKey() engine.Key {
	return i.cur.PrimaryKey()
}

// Value returns the record at the position; nil for key-only cursors.
func (i *Item) Value() any {
	return i.cur.Value()
}

// Delete removes the record at the position.
func (i *Item) Delete(ctx context.Context) error {
	return awaitErr(ctx, i.cur.Delete)
}

// Update replaces the record at the position, keeping its key, and
// returns the key the engine reports back.
func (i *Item) Update(ctx context.Context, value any) (engine.Key, error) {
	return awaitAs[engine.Key](ctx, "cursor update", func() engine.Request {
		return i.cur.Update(value)
	})
}
