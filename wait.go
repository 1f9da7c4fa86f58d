package awaitdb

import (
	"context"

	"github.com/roach88/awaitdb/engine"
)

// WaitFor blocks until the next occurrence of the named notification on
// src and returns its payload value.
//
// If ctx is already cancelled at call time it fails immediately with an
// ABORTED error and registers no subscription. Otherwise it subscribes,
// waits for the earlier of the notification and ctx.Done(), and
// releases the subscription on every exit path. Occurrences fired
// before a matching wait existed are held by the emitter's mailbox, so
// a notification is never lost between issuing an operation and
// waiting on it; each occurrence is observed exactly once.
//
// If the notification never fires and ctx is never cancelled, WaitFor
// blocks forever — bound its lifetime with a derived context.
func WaitFor(ctx context.Context, src engine.Source, name string) (any, error) {
	n, err := WaitAny(ctx, src, name)
	if err != nil {
		return nil, err
	}
	return n.Value, nil
}

// WaitAny blocks until the earliest occurrence among the named
// notifications on src. It is the select primitive the request and
// open adapters are built on: one subscription covers all names, so
// occurrences are observed strictly in emission order — racing two
// already-fired notifications can never pick the later one.
//
// Cancellation and cleanup behave as in WaitFor.
func WaitAny(ctx context.Context, src engine.Source, names ...string) (engine.Notification, error) {
	if err := ctx.Err(); err != nil {
		return engine.Notification{}, abortError("wait", err)
	}

	sub := src.Events().Subscribe(names...)
	defer sub.Release()

	select {
	case <-ctx.Done():
		return engine.Notification{}, abortError("wait", ctx.Err())
	case n := <-sub.C():
		return n, nil
	}
}
