package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRunsJobs(t *testing.T) {
	done := make(chan Job, 1)
	q := NewQueue("test", func(_ context.Context, job Job) error {
		done <- job
		return nil
	}, QueueConfig{})
	q.Start(context.Background())
	defer q.Stop()

	id, err := q.Enqueue(Job{Type: "warmup"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	select {
	case job := <-done:
		assert.Equal(t, id, job.ID)
		assert.False(t, job.Enqueued.IsZero())
	case <-time.After(time.Second):
		t.Fatal("job was not processed")
	}
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var calls int32
	done := make(chan struct{})
	q := NewQueue("retry", func(_ context.Context, job Job) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			return errors.New("transient")
		}
		assert.Equal(t, 1, job.Attempt)
		close(done)
		return nil
	}, QueueConfig{MaxRetries: 2, RetryDelay: 10 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	_, err := q.Enqueue(Job{Type: "warmup"})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job was not retried")
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestEnqueueBeforeStartFails(t *testing.T) {
	q := NewQueue("idle", func(context.Context, Job) error { return nil }, QueueConfig{})
	_, err := q.Enqueue(Job{})
	assert.ErrorIs(t, err, ErrNotStarted)
}

// blockWorker enqueues a "block" job and waits until a worker has picked it up.
func blockWorker(t *testing.T, q *Queue, started chan struct{}) {
	t.Helper()
	_, err := q.Enqueue(Job{Type: "block"})
	require.NoError(t, err)
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("blocking job did not start")
	}
}

func TestEnqueueCoalescesWaitingKeys(t *testing.T) {
	started := make(chan struct{})
	gate := make(chan struct{})
	var keyed int32
	done := make(chan struct{}, 4)
	q := NewQueue("coalesce", func(_ context.Context, job Job) error {
		if job.Type == "block" {
			close(started)
			<-gate
			return nil
		}
		atomic.AddInt32(&keyed, 1)
		done <- struct{}{}
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 4})
	q.Start(context.Background())
	defer q.Stop()

	blockWorker(t, q, started)
	first, err := q.Enqueue(Job{Key: "warmup", Type: "warmup"})
	require.NoError(t, err)
	second, err := q.Enqueue(Job{Key: "warmup", Type: "warmup"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	close(gate)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("keyed job was not processed")
	}
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&keyed))

	third, err := q.Enqueue(Job{Key: "warmup", Type: "warmup"})
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestEnqueueReportsFullBuffer(t *testing.T) {
	started := make(chan struct{})
	gate := make(chan struct{})
	q := NewQueue("full", func(_ context.Context, job Job) error {
		if job.Type == "block" {
			close(started)
			<-gate
		}
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})
	q.Start(context.Background())
	defer q.Stop()
	defer close(gate)

	blockWorker(t, q, started)
	_, err := q.Enqueue(Job{})
	require.NoError(t, err)
	_, err = q.Enqueue(Job{})
	assert.ErrorIs(t, err, ErrFull)
}

func TestQueueBoundsJobDuration(t *testing.T) {
	deadline := make(chan bool, 1)
	q := NewQueue("timeout", func(ctx context.Context, _ Job) error {
		_, ok := ctx.Deadline()
		deadline <- ok
		return nil
	}, QueueConfig{Timeout: time.Minute})
	q.Start(context.Background())
	defer q.Stop()

	_, err := q.Enqueue(Job{})
	require.NoError(t, err)
	select {
	case ok := <-deadline:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("job was not processed")
	}
}
