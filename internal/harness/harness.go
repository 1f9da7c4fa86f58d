package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"

	"github.com/roach88/awaitdb"
	"github.com/roach88/awaitdb/engine"
	"github.com/roach88/awaitdb/memdb"
)

// harness is the scenario execution state: the open connection plus one
// bridge store handle per declared store.
type harness struct {
	db     *awaitdb.DB
	stores map[string]*awaitdb.Store
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh deterministic in-memory engine:
// sequential request tokens and a logical clock make the recorded trace
// byte-identical across runs. The schema in scenario.Stores is created
// by the open's upgrade callback; steps then run through a single
// readwrite transaction over every declared store.
func Run(scenario *Scenario) (*Result, error) {
	trace := &memdb.Trace{}
	eng := memdb.New(
		memdb.WithTokenGenerator(memdb.NewSequenceGenerator("req")),
		memdb.WithTrace(trace),
	)
	defer eng.Close()

	ctx := context.Background()

	db, err := awaitdb.Open(ctx, eng, scenario.Database, scenario.Version, func(ctx context.Context, db *awaitdb.DB, oldVersion, newVersion uint64) error {
		return createSchema(db, scenario.Stores)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	names := make([]string, 0, len(scenario.Stores))
	for _, def := range scenario.Stores {
		names = append(names, def.Name)
	}
	tx, err := db.Transaction(names, engine.ReadWrite)
	if err != nil {
		return nil, fmt.Errorf("failed to open transaction: %w", err)
	}

	h := &harness{
		db:     db,
		stores: make(map[string]*awaitdb.Store, len(names)),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, name := range names {
		st, err := tx.Store(name)
		if err != nil {
			return nil, fmt.Errorf("failed to get store %q: %w", name, err)
		}
		h.stores[name] = st
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		h.executeStep(ctx, i, step, result)
	}
	h.evaluateAssertions(ctx, scenario.Assertions, result)

	result.Trace = trace.Lines()
	result.Pass = len(result.Errors) == 0
	return result, nil
}

// createSchema creates the declared stores and indexes on the half-open
// connection.
func createSchema(db *awaitdb.DB, defs []StoreDef) error {
	for _, def := range defs {
		st, err := db.CreateObjectStore(def.Name, engine.StoreOptions{
			KeyPath:       def.KeyPath,
			AutoIncrement: def.AutoIncrement,
		})
		if err != nil {
			return fmt.Errorf("create store %q: %w", def.Name, err)
		}
		for _, idx := range def.Indexes {
			if _, err := st.CreateIndex(idx.Name, idx.KeyPath, engine.IndexOptions{Unique: idx.Unique}); err != nil {
				return fmt.Errorf("create index %q on %q: %w", idx.Name, def.Name, err)
			}
		}
	}
	return nil
}

// executeStep runs one step and records mismatches on result. A step
// error only fails the scenario when the step did not expect it.
func (h *harness) executeStep(ctx context.Context, i int, step Step, result *Result) {
	st := h.stores[step.Store]
	h.logger.Debug("step", "index", i, "op", step.Op, "store", step.Store)

	got, err := h.invoke(ctx, st, step)

	if step.ExpectError != "" {
		if err == nil {
			result.AddError("steps[%d] %s: expected error containing %q, got success", i, step.Op, step.ExpectError)
			return
		}
		if !strings.Contains(err.Error(), step.ExpectError) {
			result.AddError("steps[%d] %s: error %q does not contain %q", i, step.Op, err.Error(), step.ExpectError)
		}
		return
	}
	if err != nil {
		result.AddError("steps[%d] %s: %v", i, step.Op, err)
		return
	}
	if step.Expect == nil {
		return
	}

	want := normalizeValue(step.Expect)
	if !reflect.DeepEqual(normalizeValue(got), want) {
		result.AddError("steps[%d] %s: resolved %v, want %v", i, step.Op, got, want)
	}
}

// invoke dispatches one step through the bridge, routing through an
// index when the step names one.
func (h *harness) invoke(ctx context.Context, st *awaitdb.Store, step Step) (any, error) {
	key := normalizeValue(step.Key)
	value := normalizeValue(step.Value)

	var idx *awaitdb.Index
	if step.Index != "" {
		var err error
		idx, err = st.Index(step.Index)
		if err != nil {
			return nil, err
		}
	}

	switch step.Op {
	case "add":
		return st.Add(ctx, value, key)
	case "put":
		return st.Put(ctx, value, key)
	case "get":
		if idx != nil {
			return idx.Get(ctx, key)
		}
		return st.Get(ctx, key)
	case "get_key":
		if idx != nil {
			return idx.GetKey(ctx, key)
		}
		return st.GetKey(ctx, key)
	case "get_all":
		if idx != nil {
			return idx.GetAll(ctx, key)
		}
		return st.GetAll(ctx, key)
	case "get_all_keys":
		if idx != nil {
			return idx.GetAllKeys(ctx, key)
		}
		return st.GetAllKeys(ctx, key)
	case "count":
		if idx != nil {
			return idx.Count(ctx, key)
		}
		return st.Count(ctx, key)
	case "delete":
		return nil, st.Delete(ctx, key)
	case "clear":
		return nil, st.Clear(ctx)
	case "cursor_values":
		var cur *awaitdb.Cursor
		if idx != nil {
			cur = idx.OpenCursor(key)
		} else {
			cur = st.OpenCursor(key)
		}
		return collectCursor(ctx, cur, func(item *awaitdb.Item) any { return item.Value() })
	case "cursor_keys":
		var cur *awaitdb.Cursor
		if idx != nil {
			cur = idx.OpenKeyCursor(key)
		} else {
			cur = st.OpenKeyCursor(key)
		}
		return collectCursor(ctx, cur, func(item *awaitdb.Item) any { return item.Key() })
	}
	return nil, fmt.Errorf("unknown op %q", step.Op)
}

// collectCursor drains a cursor sequence, projecting each item.
func collectCursor(ctx context.Context, cur *awaitdb.Cursor, project func(*awaitdb.Item) any) ([]any, error) {
	var out []any
	for item, err := range cur.All(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, project(item))
	}
	return out, nil
}

// normalizeValue widens numbers to the canonical key types so
// YAML-decoded expectations compare equal to engine results. Maps and
// slices are normalized recursively; non-key scalars pass through.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalizeValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		if k, err := engine.NormalizeKey(x); err == nil {
			return k
		}
		return v
	}
}
