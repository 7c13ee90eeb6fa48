package realtime

import (
	"sync"
	"testing"
	"time"
)

// fireCounter records debouncer callbacks per resource
type fireCounter struct {
	mu    sync.Mutex
	fires map[Resource]int
}

func newFireCounter() *fireCounter {
	return &fireCounter{fires: make(map[Resource]int)}
}

func (fc *fireCounter) fire(res Resource) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.fires[res]++
}

func (fc *fireCounter) count(res Resource) int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.fires[res]
}

func TestDebouncerCoalescesBurst(t *testing.T) {
	fc := newFireCounter()
	d := NewDebouncer(50*time.Millisecond, fc.fire)
	defer d.Stop()

	// Five rapid triggers inside one window collapse to a single fire.
	for i := 0; i < 5; i++ {
		d.Trigger(ResourceOrders)
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)
	if got := fc.count(ResourceOrders); got != 1 {
		t.Errorf("burst fired %d times, want 1", got)
	}
}

func TestDebouncerSeparateBursts(t *testing.T) {
	fc := newFireCounter()
	d := NewDebouncer(50*time.Millisecond, fc.fire)
	defer d.Stop()

	d.Trigger(ResourceOrders)
	time.Sleep(150 * time.Millisecond)
	d.Trigger(ResourceOrders)
	time.Sleep(150 * time.Millisecond)

	if got := fc.count(ResourceOrders); got != 2 {
		t.Errorf("two spaced triggers fired %d times, want 2", got)
	}
}

func TestDebouncerIndependentResources(t *testing.T) {
	fc := newFireCounter()
	d := NewDebouncer(50*time.Millisecond, fc.fire)
	defer d.Stop()

	d.Trigger(ResourceOrders)
	d.Trigger(ResourceNotifications)
	d.Trigger(ResourceSupportTickets)

	time.Sleep(150 * time.Millisecond)
	for _, res := range []Resource{ResourceOrders, ResourceNotifications, ResourceSupportTickets} {
		if got := fc.count(res); got != 1 {
			t.Errorf("%s fired %d times, want 1", res, got)
		}
	}
}

func TestDebouncerSupersededTimerDoesNotFire(t *testing.T) {
	fc := newFireCounter()
	d := NewDebouncer(time.Hour, fc.fire)
	defer d.Stop()

	// Two triggers arm generation 1 then supersede it with generation 2.
	d.Trigger(ResourceOrders)
	d.Trigger(ResourceOrders)

	// The first timer's callback arriving late must be a no-op and must not
	// disarm its replacement.
	d.timerFired(ResourceOrders, 1)
	if got := fc.count(ResourceOrders); got != 0 {
		t.Errorf("superseded timer fired %d times, want 0", got)
	}
	if !d.Pending(ResourceOrders) {
		t.Error("replacement timer disarmed by the superseded callback")
	}

	d.timerFired(ResourceOrders, 2)
	if got := fc.count(ResourceOrders); got != 1 {
		t.Errorf("burst fired %d times, want 1", got)
	}
	if d.Pending(ResourceOrders) {
		t.Error("timer still armed after its callback ran")
	}
}

func TestDebouncerPendingAndStop(t *testing.T) {
	fc := newFireCounter()
	d := NewDebouncer(time.Hour, fc.fire)

	d.Trigger(ResourceOrders)
	if !d.Pending(ResourceOrders) {
		t.Error("timer should be armed after Trigger")
	}

	d.Stop()
	if d.Pending(ResourceOrders) {
		t.Error("timer still armed after Stop")
	}
	if got := fc.count(ResourceOrders); got != 0 {
		t.Errorf("cancelled timer fired %d times, want 0", got)
	}
}
