package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter_DeliverToSubscriber(t *testing.T) {
	e := NewEmitter()
	sub := e.Subscribe(EventSuccess)
	defer sub.Release()

	e.Emit(Notification{Name: EventSuccess, Value: "v", Seq: 1})

	select {
	case n := <-sub.C():
		assert.Equal(t, EventSuccess, n.Name)
		assert.Equal(t, "v", n.Value)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("notification not delivered")
	}
}

func TestEmitter_ParksWithoutSubscriber(t *testing.T) {
	e := NewEmitter()

	// Emitted before anyone listens: parked, not lost.
	e.Emit(Notification{Name: EventSuccess, Value: 42, Seq: 1})

	sub := e.Subscribe(EventSuccess)
	defer sub.Release()

	select {
	case n := <-sub.C():
		assert.Equal(t, 42, n.Value)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("parked notification not claimed")
	}
}

func TestEmitter_ParkedOrderPreserved(t *testing.T) {
	e := NewEmitter()

	e.Emit(Notification{Name: EventSuccess, Value: "first", Seq: 1})
	e.Emit(Notification{Name: EventError, Value: "second", Seq: 2})

	sub := e.Subscribe(EventSuccess, EventError)
	defer sub.Release()

	n1 := <-sub.C()
	n2 := <-sub.C()
	assert.Equal(t, EventSuccess, n1.Name, "emission order must be preserved across names")
	assert.Equal(t, EventError, n2.Name)
}

func TestEmitter_ClaimsEntireMailbox(t *testing.T) {
	e := NewEmitter()

	// Park more occurrences than the minimum channel capacity; the
	// subscription must still claim all of them, in emission order.
	const parked = subscriptionBuffer + 2
	for i := 0; i < parked; i++ {
		e.Emit(Notification{Name: EventSuccess, Value: i, Seq: int64(i + 1)})
	}

	sub := e.Subscribe(EventSuccess)
	defer sub.Release()

	require.Len(t, sub.C(), parked)
	for i := 0; i < parked; i++ {
		n := <-sub.C()
		assert.Equal(t, i, n.Value)
	}
}

func TestEmitter_DeliversToOldestSubscriber(t *testing.T) {
	e := NewEmitter()
	first := e.Subscribe(EventSuccess)
	defer first.Release()
	second := e.Subscribe(EventSuccess)
	defer second.Release()

	e.Emit(Notification{Name: EventSuccess, Seq: 1})

	select {
	case <-first.C():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("oldest subscriber should receive the occurrence")
	}
	assert.Len(t, second.C(), 0)
}

func TestEmitter_ReleaseStopsDelivery(t *testing.T) {
	e := NewEmitter()
	sub := e.Subscribe(EventSuccess)

	require.Equal(t, 1, e.SubscriberCount(EventSuccess))
	sub.Release()
	assert.Equal(t, 0, e.SubscriberCount(EventSuccess))

	// Post-release occurrences park instead of landing in the old channel.
	e.Emit(Notification{Name: EventSuccess, Seq: 1})
	assert.Len(t, sub.ch, 0)
}

func TestEmitter_ReleaseIdempotent(t *testing.T) {
	e := NewEmitter()
	sub := e.Subscribe(EventSuccess)

	sub.Release()
	sub.Release()
	assert.Equal(t, 0, e.SubscriberCount(EventSuccess))
}

func TestEmitter_NameFiltering(t *testing.T) {
	e := NewEmitter()
	errSub := e.Subscribe(EventError)
	defer errSub.Release()

	e.Emit(Notification{Name: EventSuccess, Seq: 1})

	assert.Len(t, errSub.C(), 0, "error subscription must not see success")
	assert.Equal(t, 0, e.SubscriberCount(EventSuccess))
}

func TestRequestState_String(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
}
