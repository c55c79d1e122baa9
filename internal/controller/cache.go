// Package controller owns the session cache and the open/close lifecycle of
// the popup surface. It sits between the gateway (latency-bearing, fallible)
// and the rendering layer, which must never observe torn or stale-looking
// state.
package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/thecoder93/openclaw/internal/gateway"
	"github.com/thecoder93/openclaw/internal/logging/events"
	"github.com/thecoder93/openclaw/internal/session"
)

const (
	// DefaultRefreshInterval bounds remote traffic from repeated surface
	// opens: unforced refreshes within this window are no-ops.
	DefaultRefreshInterval = 12 * time.Second

	// FetchLimit caps the number of rows requested per snapshot.
	FetchLimit = 32
)

const (
	gatewayUnavailableText  = "No connection to gateway"
	sessionsUnavailableText = "Sessions unavailable"
)

// SnapshotSource is the asynchronous fetch operation backing the cache.
type SnapshotSource interface {
	FetchSessions(ctx context.Context, limit int) (session.Snapshot, error)
}

// ConnectionSource exposes current gateway connectivity.
type ConnectionSource interface {
	Current() gateway.ConnState
}

// CacheState is a read-only copy of the cached snapshot and error. At most one
// of Snapshot and ErrorText is set after a settled refresh; both are absent in
// the not-yet-refreshed initial state or while disconnected. UpdatedAt is zero
// until the first refresh settles.
type CacheState struct {
	Snapshot  *session.Snapshot
	ErrorText string
	UpdatedAt time.Time
}

// Cache coordinates snapshot refreshes against the gateway with a TTL policy.
// The three cached fields are always written together under the mutex, so
// readers never see a snapshot alongside an error or a timestamp ahead of its
// paired fields.
type Cache struct {
	source SnapshotSource
	conn   ConnectionSource
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	state CacheState
}

// NewCache builds a coordinator. A non-positive ttl falls back to the default
// refresh interval.
func NewCache(source SnapshotSource, conn ConnectionSource, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultRefreshInterval
	}
	return &Cache{source: source, conn: conn, ttl: ttl, now: time.Now}
}

// State returns a consistent copy of the cache fields.
func (c *Cache) State() CacheState {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.state
	if c.state.Snapshot != nil {
		snap := c.state.Snapshot.Clone()
		out.Snapshot = &snap
	}
	return out
}

// Refresh settles the cache against the gateway. Unforced calls within the
// TTL of the previous settled refresh are no-ops. When disconnected the cache
// is cleared without a fetch attempt: no data is itself terminal information,
// not an error. The return value reports whether the cache settled (fetched
// or cleared) as opposed to being skipped or abandoned.
func (c *Cache) Refresh(ctx context.Context, force bool) bool {
	c.mu.Lock()
	if !force && !c.state.UpdatedAt.IsZero() {
		age := c.now().Sub(c.state.UpdatedAt)
		if age < c.ttl {
			c.mu.Unlock()
			events.Session.RefreshSkipped(age.String())
			return false
		}
	}
	c.mu.Unlock()

	if c.conn.Current() != gateway.Connected {
		c.store(nil, "")
		events.Session.RefreshDone(0, "")
		return true
	}

	snap, err := c.source.FetchSessions(ctx, FetchLimit)
	// An abandoned attempt is not a settled refresh; leave the cache as the
	// superseding refresh will write it. The check covers fetches that raced
	// past the cancellation and returned data anyway.
	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return false
		}
		text := classifyFetchError(err)
		c.store(nil, text)
		events.Session.RefreshDone(0, text)
		return true
	}
	c.store(&snap, "")
	events.Session.RefreshDone(len(snap.Rows), "")
	return true
}

// store writes the snapshot/error/timestamp triple as one atomic unit.
func (c *Cache) store(snap *session.Snapshot, errText string) {
	c.mu.Lock()
	c.state = CacheState{Snapshot: snap, ErrorText: errText, UpdatedAt: c.now()}
	c.mu.Unlock()
}

func classifyFetchError(err error) string {
	if errors.Is(err, gateway.ErrDecodeFailed) {
		return sessionsUnavailableText
	}
	return gatewayUnavailableText
}
