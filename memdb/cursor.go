package memdb

import "github.com/roach88/awaitdb/engine"

// cursorEntry is one position in a cursor's snapshot of the matching
// records, taken when the cursor request was executed.
type cursorEntry struct {
	key     engine.Key
	primary engine.Key
	value   any
}

// cursor implements engine.Cursor over a snapshot of entries. Its
// request settles once per position: the opening job fires the first
// success, each Continue fires the next, and the success after the last
// entry carries a nil result.
type cursor struct {
	eng      *Engine
	store    *objectStore
	req      *request
	entries  []cursorEntry
	pos      int
	keysOnly bool
}

// startCursor fires the opening settlement: the cursor itself when the
// snapshot has entries, nil when it is empty. Runs on the writer
// goroutine.
func startCursor(e *Engine, req *request, store *objectStore, entries []cursorEntry, keysOnly bool) {
	if len(entries) == 0 {
		e.complete(req, nil)
		return
	}
	c := &cursor{eng: e, store: store, req: req, entries: entries, keysOnly: keysOnly}
	e.complete(req, c)
}

func (c *cursor) Key() engine.Key {
	return c.entries[c.pos].key
}

func (c *cursor) PrimaryKey() engine.Key {
	return c.entries[c.pos].primary
}

func (c *cursor) Value() any {
	if c.keysOnly {
		return nil
	}
	return c.entries[c.pos].value
}

// Continue re-arms the cursor's request. The advance runs as a fresh
// job so the settlement is stamped and emitted on the writer goroutine
// like any other.
func (c *cursor) Continue() {
	ok := c.eng.queue.Enqueue(job{run: func() {
		if c.pos+1 >= len(c.entries) {
			c.eng.complete(c.req, nil)
			return
		}
		c.pos++
		c.eng.complete(c.req, c)
	}})
	if !ok {
		c.eng.fail(c.req, ErrClosed)
	}
}

// Delete removes the record under the cursor from the store. The
// snapshot keeps its entry; only the store changes.
func (c *cursor) Delete() engine.Request {
	primary := c.entries[c.pos].primary
	return c.store.submit("cursor.delete", func() (any, error) {
		if err := c.store.writable(); err != nil {
			return nil, err
		}
		c.store.st.deleteKey(primary)
		return nil, nil
	})
}

// Update replaces the record under the cursor, keeping its primary key.
func (c *cursor) Update(value any) engine.Request {
	primary := c.entries[c.pos].primary
	return c.store.submit("cursor.update", func() (any, error) {
		if err := c.store.writable(); err != nil {
			return nil, err
		}
		c.store.st.insert(primary, value)
		return primary, nil
	})
}
