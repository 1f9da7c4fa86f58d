// Package harness provides conformance testing for the bridging layer.
//
// The harness loads YAML scenarios, executes them against a fresh
// deterministic in-memory engine through the public bridge API, and
// validates step results, final state, and the full notification trace.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	database: app
//	version: 1
//	stores:
//	  - name: users
//	    key_path: id
//	    indexes:
//	      - name: by_email
//	        key_path: email
//	        unique: true
//	steps:
//	  - op: add
//	    store: users
//	    value: { id: u1, email: alice@example.com }
//	  - op: get
//	    store: users
//	    key: u1
//	    expect: { id: u1, email: alice@example.com }
//	assertions:
//	  - type: store_count
//	    store: users
//	    count: 1
//
// # Step Operations
//
// Steps run in order through one readwrite transaction covering every
// declared store. Supported ops: add, put, get, get_key, get_all,
// get_all_keys, count, delete, clear, cursor_values, cursor_keys.
// A step with an index name routes through that index. expect compares
// the resolved value; expect_error requires a failure whose message
// contains the given substring.
//
// # Deterministic Traces
//
// Every scenario runs with sequential request tokens and a logical
// clock, so the engine's notification trace is byte-identical across
// runs. RunWithGolden compares the trace against a golden file under
// testdata/golden.
package harness
