package memdb

import (
	"sort"

	"github.com/roach88/awaitdb/engine"
)

// indexState is the engine-side definition of one index. Entries are
// derived from the store's records on demand rather than maintained
// incrementally.
type indexState struct {
	name    string
	keyPath string
	unique  bool
}

// indexEntry pairs an index key with the record it points at.
type indexEntry struct {
	key     engine.Key
	primary engine.Key
	value   any
}

// index implements engine.Index.
type index struct {
	eng     *Engine
	store   *objectStore
	idx     *indexState
	emitter *engine.Emitter
}

func (x *index) Events() *engine.Emitter {
	return x.emitter
}

func (x *index) Name() string {
	return x.idx.name
}

func (x *index) KeyPath() string {
	return x.idx.keyPath
}

func (x *index) Unique() bool {
	return x.idx.unique
}

// submit queues one operation against this index, labeled
// "store.index.op".
func (x *index) submit(opName string, compute func() (any, error)) engine.Request {
	return x.eng.submit(x.store.st.name+"."+x.idx.name+"."+opName, func(req *request) {
		x.eng.mu.Lock()
		v, err := compute()
		x.eng.mu.Unlock()
		if err != nil {
			x.eng.fail(req, err)
			return
		}
		x.eng.complete(req, v)
	})
}

// entries projects the store's records through the index key path,
// sorted by index key then primary key. Records without an index key
// are skipped.
func (x *index) entries(query any) ([]indexEntry, error) {
	if err := x.store.readable(); err != nil {
		return nil, err
	}
	r, err := asRange(query)
	if err != nil {
		return nil, err
	}

	var out []indexEntry
	for _, rec := range x.store.st.records {
		ik := extractKey(rec.value, x.idx.keyPath)
		if ik == nil || !r.Contains(ik) {
			continue
		}
		out = append(out, indexEntry{key: ik, primary: rec.key, value: rec.value})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := engine.CompareKeys(out[i].key, out[j].key); c != 0 {
			return c < 0
		}
		return engine.CompareKeys(out[i].primary, out[j].primary) < 0
	})
	return out, nil
}

func (x *index) Get(query any) engine.Request {
	return x.submit("get", func() (any, error) {
		ents, err := x.entries(query)
		if err != nil || len(ents) == 0 {
			return nil, err
		}
		return ents[0].value, nil
	})
}

// GetKey resolves with the primary key of the first matching record.
func (x *index) GetKey(query any) engine.Request {
	return x.submit("getKey", func() (any, error) {
		ents, err := x.entries(query)
		if err != nil || len(ents) == 0 {
			return nil, err
		}
		return ents[0].primary, nil
	})
}

func (x *index) GetAll(query any) engine.Request {
	return x.submit("getAll", func() (any, error) {
		ents, err := x.entries(query)
		if err != nil {
			return nil, err
		}
		vals := make([]any, 0, len(ents))
		for _, ent := range ents {
			vals = append(vals, ent.value)
		}
		return vals, nil
	})
}

// GetAllKeys resolves with the primary keys of the matching records.
func (x *index) GetAllKeys(query any) engine.Request {
	return x.submit("getAllKeys", func() (any, error) {
		ents, err := x.entries(query)
		if err != nil {
			return nil, err
		}
		keys := make([]engine.Key, 0, len(ents))
		for _, ent := range ents {
			keys = append(keys, ent.primary)
		}
		return keys, nil
	})
}

func (x *index) Count(query any) engine.Request {
	return x.submit("count", func() (any, error) {
		ents, err := x.entries(query)
		if err != nil {
			return nil, err
		}
		return uint64(len(ents)), nil
	})
}

func (x *index) OpenCursor(query any) engine.Request {
	return x.openCursor("openCursor", query, false)
}

func (x *index) OpenKeyCursor(query any) engine.Request {
	return x.openCursor("openKeyCursor", query, true)
}

func (x *index) openCursor(opName string, query any, keysOnly bool) engine.Request {
	return x.eng.submit(x.store.st.name+"."+x.idx.name+"."+opName, func(req *request) {
		x.eng.mu.Lock()
		ents, err := x.entries(query)
		x.eng.mu.Unlock()

		if err != nil {
			x.eng.fail(req, err)
			return
		}
		entries := make([]cursorEntry, 0, len(ents))
		for _, ent := range ents {
			entries = append(entries, cursorEntry{key: ent.key, primary: ent.primary, value: ent.value})
		}
		startCursor(x.eng, req, x.store, entries, keysOnly)
	})
}
