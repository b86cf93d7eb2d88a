package syncqueue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"learnhub_client/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue() *Queue {
	return New(config.SyncConfig{JobTimeout: time.Second})
}

func TestJobsInALaneRunInOrder(t *testing.T) {
	q := newTestQueue()
	defer q.Close(context.Background())

	var mu sync.Mutex
	var got []int
	for i := 0; i < 20; i++ {
		i := i
		require.NoError(t, q.Enqueue(Job{Entity: "course", Op: "update", Run: func(ctx context.Context) error {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			return nil
		}}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, q.Flush(ctx))

	want := make([]int, 20)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, got)
}

func TestFailedJobDoesNotStopTheLane(t *testing.T) {
	q := newTestQueue()
	defer q.Close(context.Background())

	ran := make(chan string, 2)
	q.Enqueue(Job{Entity: "course", Op: "create", Run: func(ctx context.Context) error {
		ran <- "create"
		return errors.New("backend down")
	}})
	q.Enqueue(Job{Entity: "course", Op: "update", Run: func(ctx context.Context) error {
		ran <- "update"
		return nil
	}})

	require.NoError(t, q.Flush(context.Background()))
	close(ran)
	var order []string
	for op := range ran {
		order = append(order, op)
	}
	assert.Equal(t, []string{"create", "update"}, order)
}

func TestEnqueueNeverBlocksTheCaller(t *testing.T) {
	q := newTestQueue()
	defer q.Close(context.Background())

	release := make(chan struct{})
	q.Enqueue(Job{Entity: "course", Op: "slow", Run: func(ctx context.Context) error {
		<-release
		return nil
	}})

	start := time.Now()
	for i := 0; i < 100; i++ {
		q.Enqueue(Job{Entity: "course", Op: "noop", Run: func(ctx context.Context) error { return nil }})
	}
	assert.Less(t, time.Since(start), time.Second)

	close(release)
	require.NoError(t, q.Flush(context.Background()))
}

func TestFlushRespectsContext(t *testing.T) {
	q := newTestQueue()
	release := make(chan struct{})
	q.Enqueue(Job{Entity: "course", Op: "slow", Run: func(ctx context.Context) error {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	}})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Flush(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, q.Close(context.Background()))
}

func TestEnqueueAfterClose(t *testing.T) {
	q := newTestQueue()
	require.NoError(t, q.Close(context.Background()))

	err := q.Enqueue(Job{Entity: "course", Op: "update", Run: func(ctx context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestAliasesResolve(t *testing.T) {
	a := NewAliases()
	assert.Equal(t, "x", a.Resolve("x"))

	a.Set("temp-1", "srv-1")
	assert.Equal(t, "srv-1", a.Resolve("temp-1"))
	assert.Equal(t, "srv-1", a.Resolve("srv-1"))
}
