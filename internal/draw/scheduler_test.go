package draw

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerStartsFull(t *testing.T) {
	s := NewScheduler()
	assert.True(t, s.Tick())

	s.Notify(1, 2)
	assert.Zero(t, s.Pending(), "indices during a pending rebuild are dropped")

	idx, full := s.Drain()
	assert.True(t, full)
	assert.Nil(t, idx)
	assert.False(t, s.Tick())
}

func TestSchedulerCoalesces(t *testing.T) {
	s := NewScheduler()
	s.Drain()

	s.Notify(5, 1)
	s.Notify(3, 5, 1)
	assert.Equal(t, 3, s.Pending())

	idx, full := s.Drain()
	assert.False(t, full)
	assert.Equal(t, []int{1, 3, 5}, idx)

	idx, full = s.Drain()
	assert.False(t, full)
	assert.Empty(t, idx)
}

func TestSchedulerInvalidate(t *testing.T) {
	s := NewScheduler()
	s.Drain()
	s.Notify(4)
	s.Invalidate()

	assert.Zero(t, s.Pending())
	_, full := s.Drain()
	assert.True(t, full)
}

func TestSchedulerConcurrentNotify(t *testing.T) {
	s := NewScheduler()
	s.Drain()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Notify(w*100 + i)
			}
		}(w)
	}
	wg.Wait()

	idx, _ := s.Drain()
	require.Len(t, idx, 800)
	for i, v := range idx {
		assert.Equal(t, i, v)
	}
}

func TestSchedulerRun(t *testing.T) {
	s := NewScheduler()
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan struct{})
	go func() {
		s.Run(ctx, 5*time.Millisecond, func() {
			calls.Add(1)
			s.Drain()
		})
		close(done)
	}()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "no redraw without pending work")

	s.Notify(7)
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
