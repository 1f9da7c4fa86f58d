package harness

import (
	"context"
	"fmt"
	"reflect"
)

// Assertion validates final store state after the flow has run.
type Assertion struct {
	// Type is the assertion type: store_count or store_keys.
	Type string `yaml:"type"`

	// Store names the object store to inspect.
	Store string `yaml:"store"`

	// Count is the expected record count (store_count).
	Count uint64 `yaml:"count,omitempty"`

	// Keys is the expected key listing in key order (store_keys).
	Keys []any `yaml:"keys,omitempty"`
}

// Assertion type constants.
const (
	AssertStoreCount = "store_count"
	AssertStoreKeys  = "store_keys"
)

func validateAssertion(index int, a *Assertion, declared map[string]bool) error {
	switch a.Type {
	case AssertStoreCount, AssertStoreKeys:
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown type %q", index, a.Type)
	}
	if a.Store == "" {
		return fmt.Errorf("assertions[%d]: store is required", index)
	}
	if !declared[a.Store] {
		return fmt.Errorf("assertions[%d]: store %q is not declared", index, a.Store)
	}
	if a.Type == AssertStoreKeys && len(a.Keys) == 0 {
		return fmt.Errorf("assertions[%d]: keys is required for store_keys", index)
	}
	return nil
}

// evaluateAssertions checks each assertion against the final state,
// appending failures to result. Assertion reads go through the bridge
// like flow steps and therefore appear in the trace.
func (h *harness) evaluateAssertions(ctx context.Context, assertions []Assertion, result *Result) {
	for i, a := range assertions {
		st, ok := h.stores[a.Store]
		if !ok {
			result.AddError("assertions[%d]: no handle for store %q", i, a.Store)
			continue
		}

		switch a.Type {
		case AssertStoreCount:
			count, err := st.Count(ctx, nil)
			if err != nil {
				result.AddError("assertions[%d]: count failed: %v", i, err)
				continue
			}
			if count != a.Count {
				result.AddError("assertions[%d]: store %q has %d records, want %d", i, a.Store, count, a.Count)
			}

		case AssertStoreKeys:
			keys, err := st.GetAllKeys(ctx, nil)
			if err != nil {
				result.AddError("assertions[%d]: getAllKeys failed: %v", i, err)
				continue
			}
			want := normalizeValue(a.Keys)
			got := normalizeValue(keys)
			if !reflect.DeepEqual(got, want) {
				result.AddError("assertions[%d]: store %q keys are %v, want %v", i, a.Store, got, want)
			}
		}
	}
}
