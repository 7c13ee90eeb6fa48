package realtime

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is how long a resource's timer waits for the burst to
// settle before one refetch is issued.
const DefaultDebounceWindow = 300 * time.Millisecond

// Debouncer coalesces bursts of change events per resource. Each Trigger
// resets that resource's timer; when the timer fires, the callback runs
// exactly once for the whole burst.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timers map[Resource]*time.Timer
	gens   map[Resource]uint64
	fire   func(Resource)
}

// NewDebouncer creates a debouncer. fire is invoked on a timer goroutine.
func NewDebouncer(window time.Duration, fire func(Resource)) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{
		window: window,
		timers: make(map[Resource]*time.Timer),
		gens:   make(map[Resource]uint64),
		fire:   fire,
	}
}

// Trigger records a change event for the resource, restarting its window.
// Each restart bumps the resource's generation so a timer that fires while
// being superseded cannot fire alongside its replacement.
func (d *Debouncer) Trigger(res Resource) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[res]; ok {
		t.Stop()
	}
	d.gens[res]++
	gen := d.gens[res]
	d.timers[res] = time.AfterFunc(d.window, func() {
		d.timerFired(res, gen)
	})
}

func (d *Debouncer) timerFired(res Resource, gen uint64) {
	d.mu.Lock()
	if d.gens[res] != gen {
		// Superseded while firing; the replacement timer owns this burst.
		d.mu.Unlock()
		return
	}
	delete(d.timers, res)
	d.mu.Unlock()
	d.fire(res)
}

// Pending reports whether a timer is currently armed for the resource
func (d *Debouncer) Pending(res Resource) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.timers[res]
	return ok
}

// Stop cancels all armed timers. Already-fired callbacks may still be running.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for res, t := range d.timers {
		t.Stop()
		d.gens[res]++
		delete(d.timers, res)
	}
}
