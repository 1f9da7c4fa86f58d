package harness

import "fmt"

// Result is the outcome of running one scenario.
type Result struct {
	// Pass is true when every step expectation and assertion held.
	Pass bool

	// Errors lists every expectation or assertion failure, in order.
	Errors []string

	// Trace is the engine's notification trace, one line per
	// notification in emission order.
	Trace []string
}

// NewResult creates an empty result.
func NewResult() *Result {
	return &Result{}
}

// AddError records one failure.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
