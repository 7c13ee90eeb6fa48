package realtime

import (
	"log"
	"time"

	"laundry-service-server/config"
	"laundry-service-server/models"
)

// NotificationSink persists derived notifications
type NotificationSink interface {
	CreateNotification(n *models.Notification) error
}

// Broadcaster pushes realtime events out to connected dashboard clients
type Broadcaster interface {
	BroadcastData(msgType string, data interface{})
}

// Syncer ties the change feed, debouncer, refetcher, cache store and
// notification deriver together. One Syncer runs for the process lifetime.
type Syncer struct {
	feed      *Feed
	debouncer *Debouncer
	refetcher *Refetcher
	store     *CollectionStore
	gauge     *Gauge
	backend   Backend
	sink      NotificationSink
	hub       Broadcaster
	done      chan struct{}
}

// NewSyncer wires up a syncer. sink and hub may be nil (events are still
// debounced and refetched; derived notifications are skipped).
func NewSyncer(backend Backend, sink NotificationSink, hub Broadcaster) *Syncer {
	window := DefaultDebounceWindow
	retryDelay := DefaultRetryDelay
	if config.AppConfig != nil {
		window = time.Duration(config.AppConfig.Realtime.DebounceMillis) * time.Millisecond
		retryDelay = time.Duration(config.AppConfig.Realtime.RetrySeconds) * time.Second
	}

	store := NewCollectionStore()
	refetcher := NewRefetcher(backend, store)
	refetcher.retryDelay = retryDelay

	s := &Syncer{
		feed:      NewFeed(),
		store:     store,
		refetcher: refetcher,
		gauge:     &Gauge{},
		backend:   backend,
		sink:      sink,
		hub:       hub,
		done:      make(chan struct{}),
	}
	s.debouncer = NewDebouncer(window, func(res Resource) {
		s.refetcher.Refetch(res)
	})
	return s
}

// Feed returns the change feed write paths publish into
func (s *Syncer) Feed() *Feed {
	return s.feed
}

// Store returns the in-memory collection cache
func (s *Syncer) Store() *CollectionStore {
	return s.store
}

// Gauge returns the connection-health indicator
func (s *Syncer) Gauge() *Gauge {
	return s.gauge
}

// Start launches the startup probe and the event loop
func (s *Syncer) Start() {
	// One-shot probe so the dashboard shows "live" even before the first
	// event arrives. Subscription confirmation would also set the gauge.
	go func() {
		if err := s.backend.Probe(); err != nil {
			log.Printf("❌ Startup probe failed: %v", err)
			return
		}
		s.gauge.SetLive(true)
	}()

	go s.loop()
	log.Printf("🚀 Realtime syncer started (%d resources)", len(AllResources()))
}

// Stop tears the syncer down and marks the connection offline
func (s *Syncer) Stop() {
	s.feed.Close()
	<-s.done
	s.debouncer.Stop()
	s.gauge.SetLive(false)
	log.Printf("🛑 Realtime syncer stopped")
}

func (s *Syncer) loop() {
	defer close(s.done)

	for ev := range s.feed.Events() {
		s.handleEvent(ev)
	}
}

func (s *Syncer) handleEvent(ev ChangeEvent) {
	s.debouncer.Trigger(ev.Resource)

	for _, notif := range DeriveNotifications(ev) {
		n := notif
		n.Status = models.NotificationUnread
		// Fire-and-forget: a lost notification never blocks the refetch path.
		if s.sink != nil {
			if err := s.sink.CreateNotification(&n); err != nil {
				log.Printf("⚠️ Failed to persist derived notification %q: %v", n.Title, err)
			}
		}
		if s.hub != nil {
			s.hub.BroadcastData("notification", n)
		}
		// A derived notification is itself a change to the notifications
		// collection, so nudge that cache too.
		s.debouncer.Trigger(ResourceNotifications)
	}

	if s.hub != nil {
		s.hub.BroadcastData("change", map[string]interface{}{
			"resource":  ev.Resource,
			"op":        ev.Op,
			"timestamp": ev.Timestamp.Format(time.RFC3339),
		})
	}
}
