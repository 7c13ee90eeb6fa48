package realtime

import (
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Feed is the in-process change feed. Write paths publish an event after
// every successful mutation and the Syncer consumes them.
type Feed struct {
	mu     sync.RWMutex
	events chan ChangeEvent
	closed bool
}

// NewFeed creates a change feed with a bounded buffer
func NewFeed() *Feed {
	return &Feed{
		events: make(chan ChangeEvent, 256),
	}
}

// Publish queues an event without blocking the write path. Events are dropped
// with a log line when the buffer is full; the next event for the same
// resource will still trigger a refetch, so the cache converges anyway.
func (f *Feed) Publish(ev ChangeEvent) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	// The read lock keeps the send from racing Close's close(f.events).
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return
	}

	select {
	case f.events <- ev:
	default:
		log.Printf("⚠️ Change feed buffer full, dropping %s event for %s", ev.Op, ev.Resource)
	}
}

// Events exposes the consumer side of the feed
func (f *Feed) Events() <-chan ChangeEvent {
	return f.events
}

// Close tears the feed down. Publish becomes a no-op.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	close(f.events)
}

// Gauge is the boolean connection-health indicator. There is no reconnect
// state machine behind it; it only reflects live/offline.
type Gauge struct {
	live atomic.Bool
}

// SetLive marks the connection live or offline
func (g *Gauge) SetLive(live bool) {
	g.live.Store(live)
	if live {
		log.Printf("🔌 Realtime connection live")
	} else {
		log.Printf("🔌 Realtime connection offline")
	}
}

// IsLive reports the current connection state
func (g *Gauge) IsLive() bool {
	return g.live.Load()
}
