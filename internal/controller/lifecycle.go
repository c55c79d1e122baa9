package controller

import (
	"context"
	"sync"
	"time"

	"github.com/thecoder93/openclaw/internal/logging/events"
	"github.com/thecoder93/openclaw/internal/plan"
)

// Emitter receives freshly computed presentation plans. Implementations must
// marshal onto the rendering layer's own execution context (for Bubble Tea,
// program.Send does this).
type Emitter func(plan.Plan)

// Lifecycle tracks the popup surface's open/closed state and drives cache
// refreshes keyed to it. Each refresh attempt carries a generation: only the
// most recently started refresh may trigger a re-presentation, so re-opening
// while a prior refresh is still draining never double-presents.
type Lifecycle struct {
	cache        *Cache
	conn         ConnectionSource
	emit         Emitter
	now          func() time.Time
	activeWindow time.Duration

	mu     sync.Mutex
	open   bool
	gen    uint64
	cancel context.CancelFunc
}

// NewLifecycle wires the lifecycle controller. activeWindow <= 0 falls back
// to the planner default.
func NewLifecycle(cache *Cache, conn ConnectionSource, activeWindow time.Duration, emit Emitter) *Lifecycle {
	return &Lifecycle{
		cache:        cache,
		conn:         conn,
		emit:         emit,
		now:          time.Now,
		activeWindow: activeWindow,
	}
}

// Open handles the surface opening: it presents the current cache state
// immediately (the surface never shows nothing while waiting), supersedes any
// stale refresh, and starts a fresh unforced refresh in the background.
func (l *Lifecycle) Open() {
	l.mu.Lock()
	l.open = true
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	events.Session.SurfaceOpen()
	l.present()

	events.Session.RefreshStart(false, gen)
	go func() {
		settled := l.cache.Refresh(ctx, false)
		if !settled {
			return
		}
		if !l.isCurrent(gen) {
			return
		}
		l.present()
	}()
}

// Close cancels the outstanding refresh's ability to re-present. A fetch past
// the point of cancellation may still finish and update the cache silently;
// it simply won't be shown until the next open.
func (l *Lifecycle) Close() {
	l.mu.Lock()
	l.open = false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()
	events.Session.SurfaceClose()
}

// RefreshNow runs an action-triggered forced refresh. It supersedes any
// refresh still draining: the stale handle is cancelled and the generation
// advanced, so a pre-mutation fetch can neither overwrite the cache nor
// re-present. The forced refresh itself is never cancelled by surface close:
// user-initiated mutations always complete and update the cache, even if the
// result stays invisible until the next open.
func (l *Lifecycle) RefreshNow() {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	events.Session.RefreshStart(true, gen)
	l.cache.Refresh(context.Background(), true)
	l.mu.Lock()
	open := l.open
	l.mu.Unlock()
	if open {
		l.present()
	}
}

// IsOpen reports the current surface state.
func (l *Lifecycle) IsOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open
}

func (l *Lifecycle) isCurrent(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open && gen == l.gen
}

func (l *Lifecycle) present() {
	state := l.cache.State()
	p := plan.Build(plan.Input{
		Snapshot:     state.Snapshot,
		ErrorText:    state.ErrorText,
		Conn:         l.conn.Current(),
		Now:          l.now(),
		ActiveWindow: l.activeWindow,
	})
	events.Session.PlanEmitted(len(p.Entries))
	l.emit(p)
}
