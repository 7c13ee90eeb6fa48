package realtime

import (
	"sync"
	"testing"
	"time"

	"laundry-service-server/models"
)

type staticBackend struct {
	rows map[Resource][]Row
}

func (b *staticBackend) Select(res Resource) ([]Row, error) { return b.rows[res], nil }
func (b *staticBackend) Probe() error                       { return nil }

type captureSink struct {
	mu    sync.Mutex
	saved []models.Notification
}

func (s *captureSink) CreateNotification(n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, *n)
	return nil
}

func (s *captureSink) all() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.saved...)
}

type captureHub struct {
	mu       sync.Mutex
	messages []string
}

func (h *captureHub) BroadcastData(msgType string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msgType)
}

func (h *captureHub) count(msgType string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, m := range h.messages {
		if m == msgType {
			n++
		}
	}
	return n
}

func TestSyncerEndToEnd(t *testing.T) {
	backend := &staticBackend{rows: map[Resource][]Row{
		ResourceOrders:        {{"id": float64(1), "service_type": "ironing"}},
		ResourceNotifications: {{"id": float64(9)}},
	}}
	sink := &captureSink{}
	hub := &captureHub{}

	s := NewSyncer(backend, sink, hub)
	s.Start()

	s.Feed().Publish(ChangeEvent{
		Resource: ResourceOrders,
		Op:       OpInsert,
		New:      Row{"service_type": "ironing"},
	})

	// Probe goroutine plus one debounce window for the refetch to land.
	time.Sleep(DefaultDebounceWindow + 200*time.Millisecond)

	if !s.Gauge().IsLive() {
		t.Error("gauge should be live after successful probe")
	}
	if got := s.Store().Get(ResourceOrders); len(got) != 1 {
		t.Errorf("orders cache has %d rows, want 1", len(got))
	}
	// The derived notification triggers its own collection refetch too.
	if got := s.Store().Get(ResourceNotifications); len(got) != 1 {
		t.Errorf("notifications cache has %d rows, want 1", len(got))
	}

	saved := sink.all()
	if len(saved) != 1 {
		t.Fatalf("sink saved %d notifications, want 1", len(saved))
	}
	if saved[0].Title != "New Ironing Order" {
		t.Errorf("notification title = %q, want %q", saved[0].Title, "New Ironing Order")
	}
	if saved[0].Status != models.NotificationUnread {
		t.Errorf("notification status = %q, want %q", saved[0].Status, models.NotificationUnread)
	}

	if got := hub.count("notification"); got != 1 {
		t.Errorf("hub saw %d notification messages, want 1", got)
	}
	if got := hub.count("change"); got != 1 {
		t.Errorf("hub saw %d change messages, want 1", got)
	}

	s.Stop()
	if s.Gauge().IsLive() {
		t.Error("gauge should be offline after Stop")
	}
}
