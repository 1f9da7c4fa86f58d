package awaitdb

import (
	"context"
	"fmt"

	"github.com/roach88/awaitdb/engine"
)

// Await blocks until req settles and returns its outcome: the request's
// result value on success, or the engine-reported error verbatim on
// failure. Whichever terminal notification fires first decides; a late
// second terminal stays unclaimed in the emitter and is never surfaced.
// After Await returns, no subscription remains on the request.
func Await(ctx context.Context, req engine.Request) (any, error) {
	n, err := WaitAny(ctx, req, engine.EventSuccess, engine.EventError)
	if err != nil {
		return nil, err
	}
	if n.Name == engine.EventError {
		return nil, req.Err()
	}
	return req.Result(), nil
}

// awaitAs forwards one native operation and pipes its settled value
// through a type assertion. It is the generic forward-then-adapt step
// every typed wrapper method goes through: run the native call, await
// its request, narrow the result. A nil result stays the zero value
// (absent record, exhausted cursor).
func awaitAs[T any](ctx context.Context, op string, run func() engine.Request) (T, error) {
	var zero T
	v, err := Await(ctx, run())
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%s: engine resolved with %T, want %T", op, v, zero)
	}
	return t, nil
}

// awaitErr forwards a native operation whose settled value is
// irrelevant (delete, clear) and reports only the outcome.
func awaitErr(ctx context.Context, run func() engine.Request) error {
	_, err := Await(ctx, run())
	return err
}
