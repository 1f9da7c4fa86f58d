package memdb

import (
	"fmt"
	"strings"
	"sync"
)

// Trace collects every notification an engine emits, one line per
// event, in emission order. The writer goroutine serializes emissions,
// so with a SequenceGenerator the lines are fully deterministic.
type Trace struct {
	mu    sync.Mutex
	lines []string
}

func (t *Trace) record(seq int64, op, event string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, fmt.Sprintf("%d %s %s", seq, op, event))
}

// Lines returns a copy of the recorded lines.
func (t *Trace) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// Bytes renders the trace as newline-terminated text, for golden-file
// comparison.
func (t *Trace) Bytes() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.lines) == 0 {
		return nil
	}
	return []byte(strings.Join(t.lines, "\n") + "\n")
}
