package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// Ticker signals redraws at a fixed rate. Its channel holds at most one
// pending tick; ticks that fire while one is pending are coalesced, so a
// slow consumer never builds a backlog. The goroutine only signals: the
// consumer renders on its own thread when it drains the channel.
type Ticker struct {
	interval time.Duration
	wake     func()
	ticks    chan time.Duration

	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool

	coalesced atomic.Uint64
}

// NewTicker returns a stopped ticker. wake, if non-nil, is called after each
// delivered tick to unblock a consumer waiting on something else (the window
// event queue).
func NewTicker(interval time.Duration, wake func()) *Ticker {
	return &Ticker{
		interval: interval,
		wake:     wake,
		ticks:    make(chan time.Duration, 1),
		quit:     make(chan struct{}),
	}
}

// C delivers the time elapsed since the previous delivered tick.
func (t *Ticker) C() <-chan time.Duration {
	return t.ticks
}

// Start launches the ticker goroutine. Only the first call does anything,
// and none does once Stop has run.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started || t.stopped {
		return
	}
	t.started = true
	t.wg.Add(1)
	go t.run()
}

// Stop ends the ticker and waits for its goroutine. Safe to call more than
// once, and before Start.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() {
		t.mu.Lock()
		t.stopped = true
		close(t.quit)
		t.mu.Unlock()
	})
	t.wg.Wait()
}

// Coalesced reports how many ticks were dropped because one was pending.
func (t *Ticker) Coalesced() uint64 {
	return t.coalesced.Load()
}

func (t *Ticker) run() {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-t.quit:
			return
		case now := <-ticker.C:
			select {
			case t.ticks <- now.Sub(last):
				last = now
				if t.wake != nil {
					t.wake()
				}
			default:
				t.coalesced.Add(1)
			}
		}
	}
}
