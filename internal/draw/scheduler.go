package draw

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Scheduler coalesces update requests between redraws. Notify may be called
// from any goroutine; Drain is meant for the single goroutine that owns the
// geometry.
type Scheduler struct {
	mu      sync.Mutex
	pending map[int]struct{}
	full    bool
}

// NewScheduler returns a scheduler that starts out requesting a full build.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[int]struct{}), full: true}
}

// Notify queues segment indices for a patch pass. While a full rebuild is
// pending the indices are dropped, the rebuild covers them.
func (s *Scheduler) Notify(indices ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.full {
		return
	}
	for _, i := range indices {
		s.pending[i] = struct{}{}
	}
}

// Invalidate discards pending indices and requests a full rebuild.
func (s *Scheduler) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.full = true
	clear(s.pending)
}

// Tick reports whether work is due: a full rebuild or at least one pending
// index.
func (s *Scheduler) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.full || len(s.pending) > 0
}

// Pending is the number of queued indices.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Drain empties the queue. full reports a pending rebuild, in which case
// indices is nil. Indices are returned in ascending order.
func (s *Scheduler) Drain() (indices []int, full bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.full {
		s.full = false
		clear(s.pending)
		return nil, true
	}
	if len(s.pending) == 0 {
		return nil, false
	}
	indices = make([]int, 0, len(s.pending))
	for i := range s.pending {
		indices = append(indices, i)
	}
	clear(s.pending)
	sort.Ints(indices)
	return indices, false
}

// Run calls redraw at most once per interval while work is due, until ctx
// is done. It is the driver for consumers without their own event loop; a
// bubbletea program polls Tick from its tick message instead.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration, redraw func()) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if s.Tick() {
				redraw()
			}
		}
	}
}
