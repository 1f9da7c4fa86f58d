package memdb

import (
	"fmt"
	"slices"
	"sort"

	"github.com/roach88/awaitdb/engine"
)

// record is one key/value pair in a store. Records are kept sorted by
// engine.CompareKeys.
type record struct {
	key   engine.Key
	value any
}

// storeState is the engine-side state of one object store. All access
// happens with the engine lock held.
type storeState struct {
	name          string
	keyPath       string
	autoIncrement bool
	nextKey       int64
	records       []record
	indexes       map[string]*indexState
	indexOrder    []string
}

// search returns the insertion position for key and whether a record
// with that key exists there.
func (s *storeState) search(key engine.Key) (int, bool) {
	i := sort.Search(len(s.records), func(i int) bool {
		return engine.CompareKeys(s.records[i].key, key) >= 0
	})
	return i, i < len(s.records) && engine.CompareKeys(s.records[i].key, key) == 0
}

// insert writes the record, replacing an existing one with the same
// key.
func (s *storeState) insert(key engine.Key, value any) {
	pos, exists := s.search(key)
	if exists {
		s.records[pos] = record{key: key, value: value}
		return
	}
	s.records = slices.Insert(s.records, pos, record{key: key, value: value})
}

// matching returns the records inside r in key order; a nil range means
// all of them.
func (s *storeState) matching(r *engine.KeyRange) []record {
	var out []record
	for _, rec := range s.records {
		if r.Contains(rec.key) {
			out = append(out, rec)
		}
	}
	return out
}

// deleteKey removes the record with the given key, if present.
func (s *storeState) deleteKey(key engine.Key) {
	if pos, exists := s.search(key); exists {
		s.records = slices.Delete(s.records, pos, pos+1)
	}
}

// objectStore implements engine.ObjectStore. tx is nil for stores
// obtained from a connection during an upgrade; those are writable
// unconditionally.
type objectStore struct {
	eng     *Engine
	st      *storeState
	tx      *transaction
	emitter *engine.Emitter
}

func (o *objectStore) Events() *engine.Emitter {
	return o.emitter
}

func (o *objectStore) Name() string {
	return o.st.name
}

func (o *objectStore) KeyPath() string {
	return o.st.keyPath
}

func (o *objectStore) AutoIncrement() bool {
	return o.st.autoIncrement
}

func (o *objectStore) IndexNames() []string {
	o.eng.mu.Lock()
	defer o.eng.mu.Unlock()
	return slices.Clone(o.st.indexOrder)
}

// readable rejects operations on an aborted transaction.
func (o *objectStore) readable() error {
	if o.tx != nil && o.tx.aborted {
		return ErrTransactionAborted
	}
	return nil
}

// writable additionally rejects writes through a readonly transaction.
func (o *objectStore) writable() error {
	if err := o.readable(); err != nil {
		return err
	}
	if o.tx != nil && o.tx.mode == engine.ReadOnly {
		return ErrReadOnly
	}
	return nil
}

// submit queues one operation against this store. compute runs on the
// writer goroutine with the engine lock held.
func (o *objectStore) submit(opName string, compute func() (any, error)) engine.Request {
	return o.eng.submit(o.st.name+"."+opName, func(req *request) {
		o.eng.mu.Lock()
		v, err := compute()
		o.eng.mu.Unlock()
		if err != nil {
			o.eng.fail(req, err)
			return
		}
		o.eng.complete(req, v)
	})
}

func (o *objectStore) Get(query any) engine.Request {
	return o.submit("get", func() (any, error) {
		recs, err := o.query(query)
		if err != nil || len(recs) == 0 {
			return nil, err
		}
		return recs[0].value, nil
	})
}

func (o *objectStore) GetKey(query any) engine.Request {
	return o.submit("getKey", func() (any, error) {
		recs, err := o.query(query)
		if err != nil || len(recs) == 0 {
			return nil, err
		}
		return recs[0].key, nil
	})
}

func (o *objectStore) GetAll(query any) engine.Request {
	return o.submit("getAll", func() (any, error) {
		recs, err := o.query(query)
		if err != nil {
			return nil, err
		}
		vals := make([]any, 0, len(recs))
		for _, rec := range recs {
			vals = append(vals, rec.value)
		}
		return vals, nil
	})
}

func (o *objectStore) GetAllKeys(query any) engine.Request {
	return o.submit("getAllKeys", func() (any, error) {
		recs, err := o.query(query)
		if err != nil {
			return nil, err
		}
		keys := make([]engine.Key, 0, len(recs))
		for _, rec := range recs {
			keys = append(keys, rec.key)
		}
		return keys, nil
	})
}

func (o *objectStore) Count(query any) engine.Request {
	return o.submit("count", func() (any, error) {
		recs, err := o.query(query)
		if err != nil {
			return nil, err
		}
		return uint64(len(recs)), nil
	})
}

func (o *objectStore) Put(value any, key engine.Key) engine.Request {
	return o.submit("put", func() (any, error) {
		return o.write(value, key, false)
	})
}

func (o *objectStore) Add(value any, key engine.Key) engine.Request {
	return o.submit("add", func() (any, error) {
		return o.write(value, key, true)
	})
}

func (o *objectStore) Delete(query any) engine.Request {
	return o.submit("delete", func() (any, error) {
		if err := o.writable(); err != nil {
			return nil, err
		}
		recs, err := o.query(query)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			o.st.deleteKey(rec.key)
		}
		return nil, nil
	})
}

func (o *objectStore) Clear() engine.Request {
	return o.submit("clear", func() (any, error) {
		if err := o.writable(); err != nil {
			return nil, err
		}
		o.st.records = nil
		return nil, nil
	})
}

func (o *objectStore) OpenCursor(query any) engine.Request {
	return o.openCursor("openCursor", query, false)
}

func (o *objectStore) OpenKeyCursor(query any) engine.Request {
	return o.openCursor("openKeyCursor", query, true)
}

func (o *objectStore) openCursor(opName string, query any, keysOnly bool) engine.Request {
	return o.eng.submit(o.st.name+"."+opName, func(req *request) {
		o.eng.mu.Lock()
		recs, err := o.query(query)
		var entries []cursorEntry
		for _, rec := range recs {
			entries = append(entries, cursorEntry{key: rec.key, primary: rec.key, value: rec.value})
		}
		o.eng.mu.Unlock()

		if err != nil {
			o.eng.fail(req, err)
			return
		}
		startCursor(o.eng, req, o, entries, keysOnly)
	})
}

func (o *objectStore) Index(name string) (engine.Index, error) {
	o.eng.mu.Lock()
	defer o.eng.mu.Unlock()

	idx, ok := o.st.indexes[name]
	if !ok {
		return nil, ErrNoSuchIndex
	}
	return &index{eng: o.eng, store: o, idx: idx, emitter: engine.NewEmitter()}, nil
}

func (o *objectStore) CreateIndex(name, keyPath string, opts engine.IndexOptions) (engine.Index, error) {
	o.eng.mu.Lock()
	defer o.eng.mu.Unlock()

	if _, ok := o.st.indexes[name]; ok {
		return nil, ErrIndexExists
	}
	idx := &indexState{name: name, keyPath: keyPath, unique: opts.Unique}
	o.st.indexes[name] = idx
	o.st.indexOrder = append(o.st.indexOrder, name)
	return &index{eng: o.eng, store: o, idx: idx, emitter: engine.NewEmitter()}, nil
}

// query resolves a query argument against the store under the
// transaction's read discipline.
func (o *objectStore) query(query any) ([]record, error) {
	if err := o.readable(); err != nil {
		return nil, err
	}
	r, err := asRange(query)
	if err != nil {
		return nil, err
	}
	return o.st.matching(r), nil
}

// write resolves the record key (explicit, key path, or generated),
// enforces add-only and unique-index constraints, and inserts.
func (o *objectStore) write(value any, key engine.Key, addOnly bool) (engine.Key, error) {
	if err := o.writable(); err != nil {
		return nil, err
	}
	s := o.st

	k := key
	if k == nil && s.keyPath != "" {
		k = extractKey(value, s.keyPath)
	}
	// A generated key is only a candidate until every constraint check
	// passes; a rejected write must not consume it.
	generated := false
	if k == nil && s.autoIncrement {
		k = s.nextKey + 1
		generated = true
	}
	if k == nil {
		return nil, ErrNoKey
	}
	k, err := engine.NormalizeKey(k)
	if err != nil {
		return nil, fmt.Errorf("memdb: %w", err)
	}

	if addOnly {
		if _, exists := s.search(k); exists {
			return nil, ErrKeyExists
		}
	}

	for _, name := range s.indexOrder {
		idx := s.indexes[name]
		if !idx.unique {
			continue
		}
		ik := extractKey(value, idx.keyPath)
		if ik == nil {
			continue
		}
		for _, rec := range s.records {
			if engine.CompareKeys(rec.key, k) == 0 {
				continue
			}
			if other := extractKey(rec.value, idx.keyPath); other != nil && engine.CompareKeys(other, ik) == 0 {
				return nil, ErrUniqueConstraint
			}
		}
	}

	if generated {
		s.nextKey++
	} else if s.autoIncrement {
		// An explicit numeric key moves the generator past itself so a
		// later generated key cannot collide with it.
		if n, ok := k.(int64); ok && n > s.nextKey {
			s.nextKey = n
		}
	}
	s.insert(k, value)
	return k, nil
}

// asRange turns a query argument (nil, a key, or a *engine.KeyRange)
// into a range.
func asRange(query any) (*engine.KeyRange, error) {
	switch q := query.(type) {
	case nil:
		return nil, nil
	case *engine.KeyRange:
		return q, nil
	default:
		k, err := engine.NormalizeKey(q)
		if err != nil {
			return nil, fmt.Errorf("memdb: %w", err)
		}
		return engine.Only(k), nil
	}
}

// extractKey pulls the key-path field out of a record value. Only flat
// map[string]any records carry key paths here; anything else yields no
// key.
func extractKey(value any, keyPath string) engine.Key {
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	v, ok := m[keyPath]
	if !ok {
		return nil
	}
	k, err := engine.NormalizeKey(v)
	if err != nil {
		return nil
	}
	return k
}
