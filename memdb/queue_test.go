package memdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := newJobQueue()

	var order []int
	for i := 1; i <= 3; i++ {
		require.True(t, q.Enqueue(job{run: func() { order = append(order, i) }}))
	}
	assert.Equal(t, 3, q.Len())

	for i := 0; i < 3; i++ {
		j, ok := q.Dequeue()
		require.True(t, ok)
		j.run()
	}
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, q.Len())
}

func TestQueueEnqueueAfterCloseFails(t *testing.T) {
	q := newJobQueue()
	q.Close()
	assert.False(t, q.Enqueue(job{run: func() {}}))
}

func TestQueueCloseIdempotent(t *testing.T) {
	q := newJobQueue()
	q.Close()
	q.Close()
}

func TestQueueDrainsAfterClose(t *testing.T) {
	q := newJobQueue()
	require.True(t, q.Enqueue(job{run: func() {}}))
	q.Close()

	_, ok := q.Dequeue()
	assert.True(t, ok)
	_, ok = q.Dequeue()
	assert.False(t, ok)
}

func TestQueueDequeueBlocksUntilWork(t *testing.T) {
	q := newJobQueue()

	done := make(chan struct{})
	go func() {
		defer close(done)
		j, ok := q.Dequeue()
		assert.True(t, ok)
		j.run()
	}()

	ran := make(chan struct{})
	require.True(t, q.Enqueue(job{run: func() { close(ran) }}))

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("queued job never ran")
	}
	<-done
}
