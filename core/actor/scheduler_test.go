package actor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWorkerPool_RunsAll(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolOptions{Context: t.Context(), MaxWorkers: 4})

	var ran atomic.Int32
	for range 100 {
		pool.Schedule(runnableFunc(func() error {
			ran.Add(1)
			return nil
		}))
	}
	pool.Wait()
	require.Equal(t, int32(100), ran.Load())
}

func TestWorkerPool_BoundsConcurrency(t *testing.T) {
	const limit = 2
	pool := NewWorkerPool(WorkerPoolOptions{Context: t.Context(), MaxWorkers: limit})

	var (
		active, peak atomic.Int32
		mu           sync.Mutex
	)
	for range 20 {
		pool.Schedule(runnableFunc(func() error {
			n := active.Add(1)
			mu.Lock()
			if n > peak.Load() {
				peak.Store(n)
			}
			mu.Unlock()
			time.Sleep(2 * time.Millisecond)
			active.Add(-1)
			return nil
		}))
	}
	pool.Wait()
	require.LessOrEqual(t, peak.Load(), int32(limit))
	require.Positive(t, peak.Load())
}

func TestWorkerPool_ContainsPanicsAndErrors(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolOptions{Context: t.Context(), MaxWorkers: 1})

	var ran atomic.Int32
	pool.Schedule(runnableFunc(func() error { panic("boom") }))
	pool.Schedule(runnableFunc(func() error { return errors.New("uups") }))
	pool.Schedule(runnableFunc(func() error {
		ran.Add(1)
		return nil
	}))
	pool.Wait()
	require.Equal(t, int32(1), ran.Load())
}

func TestWorkerPool_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	pool := NewWorkerPool(WorkerPoolOptions{Context: ctx})
	cancel()

	var ran atomic.Bool
	pool.Schedule(runnableFunc(func() error {
		ran.Store(true)
		return nil
	}))
	pool.Wait()
	require.False(t, ran.Load())
}

func TestManualScheduler(t *testing.T) {
	m := NewManualScheduler()

	ran, err := m.RunNext()
	require.False(t, ran)
	require.NoError(t, err)

	var order []int
	uups := errors.New("uups")
	m.Schedule(runnableFunc(func() error {
		order = append(order, 1)
		// scheduling from within a run is picked up by RunAll
		m.Schedule(runnableFunc(func() error {
			order = append(order, 3)
			return nil
		}))
		return nil
	}))
	m.Schedule(runnableFunc(func() error {
		order = append(order, 2)
		return uups
	}))
	require.Equal(t, 2, m.Pending())

	require.ErrorIs(t, m.RunAll(), uups)
	require.Equal(t, []int{1, 2, 3}, order)
	require.Zero(t, m.Pending())
}
