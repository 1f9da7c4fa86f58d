package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario: a database schema, a flow
// of bridge operations, and assertions over the final state.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Database is the database name to open.
	Database string `yaml:"database"`

	// Version is the version to open at. The schema in Stores is created
	// by the upgrade callback.
	Version uint64 `yaml:"version"`

	// Stores declares the object stores the upgrade callback creates.
	Stores []StoreDef `yaml:"stores"`

	// Steps is the main flow, executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final store state after the flow.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// StoreDef declares one object store and its indexes.
type StoreDef struct {
	Name          string     `yaml:"name"`
	KeyPath       string     `yaml:"key_path,omitempty"`
	AutoIncrement bool       `yaml:"auto_increment,omitempty"`
	Indexes       []IndexDef `yaml:"indexes,omitempty"`
}

// IndexDef declares one secondary index.
type IndexDef struct {
	Name    string `yaml:"name"`
	KeyPath string `yaml:"key_path"`
	Unique  bool   `yaml:"unique,omitempty"`
}

// Step is one bridge operation with an optional expectation.
type Step struct {
	// Op names the operation; see the package documentation for the
	// supported set.
	Op string `yaml:"op"`

	// Store names the object store the operation targets.
	Store string `yaml:"store"`

	// Index optionally routes the operation through a secondary index.
	Index string `yaml:"index,omitempty"`

	// Value is the record for add/put.
	Value any `yaml:"value,omitempty"`

	// Key is the out-of-line key for add/put, or the query key for
	// reads and delete. Absent means the whole store for reads.
	Key any `yaml:"key,omitempty"`

	// Expect is the expected resolved value. Compared after numeric
	// widening, so YAML integers match engine int64 keys.
	Expect any `yaml:"expect,omitempty"`

	// ExpectError requires the step to fail with an error whose message
	// contains this substring. Mutually exclusive with Expect.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// stepOps is the set of operations a step may name.
var stepOps = map[string]bool{
	"add":           true,
	"put":           true,
	"get":           true,
	"get_key":       true,
	"get_all":       true,
	"get_all_keys":  true,
	"count":         true,
	"delete":        true,
	"clear":         true,
	"cursor_values": true,
	"cursor_keys":   true,
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected to catch typos.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Database == "" {
		return fmt.Errorf("database is required")
	}
	if s.Version == 0 {
		return fmt.Errorf("version must be at least 1")
	}
	if len(s.Stores) == 0 {
		return fmt.Errorf("stores list is required and must be non-empty")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	declared := make(map[string]bool, len(s.Stores))
	for i, def := range s.Stores {
		if def.Name == "" {
			return fmt.Errorf("stores[%d]: name is required", i)
		}
		if declared[def.Name] {
			return fmt.Errorf("stores[%d]: duplicate store %q", i, def.Name)
		}
		declared[def.Name] = true
		for j, idx := range def.Indexes {
			if idx.Name == "" {
				return fmt.Errorf("stores[%d].indexes[%d]: name is required", i, j)
			}
			if idx.KeyPath == "" {
				return fmt.Errorf("stores[%d].indexes[%d]: key_path is required", i, j)
			}
		}
	}

	for i, step := range s.Steps {
		if !stepOps[step.Op] {
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if step.Store == "" {
			return fmt.Errorf("steps[%d]: store is required", i)
		}
		if !declared[step.Store] {
			return fmt.Errorf("steps[%d]: store %q is not declared", i, step.Store)
		}
		if step.Expect != nil && step.ExpectError != "" {
			return fmt.Errorf("steps[%d]: expect and expect_error are mutually exclusive", i)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a, declared); err != nil {
			return err
		}
	}
	return nil
}
