package queue

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type countTask struct {
	n *atomic.Int32
}

func (c countTask) Execute(context.Context) error {
	c.n.Add(1)
	return nil
}

func TestQueueRunsAndDrains(t *testing.T) {
	q := New(10)
	var n atomic.Int32
	for i := 0; i < 5; i++ {
		require.True(t, q.Enqueue(countTask{&n}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	q.Run(ctx, wg)
	cancel()
	wg.Wait()

	require.Equal(t, int32(5), n.Load())
	require.False(t, q.Enqueue(countTask{&n}))
}

func TestEnqueueFull(t *testing.T) {
	q := New(1)
	var n atomic.Int32
	require.True(t, q.Enqueue(countTask{&n}))
	require.False(t, q.Enqueue(countTask{&n}))
}
