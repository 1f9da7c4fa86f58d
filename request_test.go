package awaitdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/awaitdb/engine"
)

func TestAwait_Success(t *testing.T) {
	req := newFakeRequest()
	req.succeed("value")

	v, err := Await(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "value", v)
}

func TestAwait_ErrorPassesThroughVerbatim(t *testing.T) {
	engineErr := errors.New("disk on fire")
	req := newFakeRequest()
	req.fail(engineErr)

	_, err := Await(context.Background(), req)
	assert.Same(t, engineErr, err, "engine errors must not be wrapped")
}

func TestAwait_FirstSettledWins(t *testing.T) {
	req := newFakeRequest()
	req.succeed("winner")
	// A misbehaving engine fires a late error on the same request.
	req.emit(engine.EventError, errors.New("too late"))

	v, err := Await(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "winner", v)
}

func TestAwait_ExactlyOneSettlement(t *testing.T) {
	req := newFakeRequest()
	req.succeed(1)
	req.emit(engine.EventSuccess, 2)
	req.emit(engine.EventError, errors.New("x"))

	v, err := Await(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// Zero listeners remain on either notification name.
	assert.Equal(t, 0, req.Events().SubscriberCount(engine.EventSuccess))
	assert.Equal(t, 0, req.Events().SubscriberCount(engine.EventError))
}

func TestAwait_Aborted(t *testing.T) {
	req := newFakeRequest() // never settles
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Await(ctx, req)
	require.Error(t, err)
	assert.True(t, IsAborted(err))
	assert.Equal(t, 0, req.Events().SubscriberCount(engine.EventSuccess))
	assert.Equal(t, 0, req.Events().SubscriberCount(engine.EventError))
}

func TestAwaitAs_TypeMismatch(t *testing.T) {
	req := newFakeRequest()
	req.succeed("not a count")

	_, err := awaitAs[uint64](context.Background(), "count", func() engine.Request { return req })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count")
}

func TestAwaitAs_NilStaysZero(t *testing.T) {
	req := newFakeRequest()
	req.succeed(nil)

	v, err := awaitAs[[]any](context.Background(), "getAll", func() engine.Request { return req })
	require.NoError(t, err)
	assert.Nil(t, v)
}
