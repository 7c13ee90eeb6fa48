package realtime

import (
	"errors"
	"testing"
	"time"
)

// scriptedBackend returns one response per Select call, in order. The last
// entry repeats once the script runs out.
type scriptedBackend struct {
	script []struct {
		rows []Row
		err  error
	}
	calls int
}

func (b *scriptedBackend) Select(res Resource) ([]Row, error) {
	i := b.calls
	if i >= len(b.script) {
		i = len(b.script) - 1
	}
	b.calls++
	return b.script[i].rows, b.script[i].err
}

func (b *scriptedBackend) Probe() error { return nil }

func failing(err error, times int) *scriptedBackend {
	b := &scriptedBackend{}
	for i := 0; i < times; i++ {
		b.script = append(b.script, struct {
			rows []Row
			err  error
		}{nil, err})
	}
	return b
}

func succeeding(rows []Row) *scriptedBackend {
	b := &scriptedBackend{}
	b.script = append(b.script, struct {
		rows []Row
		err  error
	}{rows, nil})
	return b
}

func newTestRefetcher(b Backend, store *CollectionStore) *Refetcher {
	r := NewRefetcher(b, store)
	r.retryDelay = time.Millisecond
	return r
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "timeout", err: errors.New("i/o timeout"), want: true},
		{name: "network unreachable", err: errors.New("network is unreachable"), want: true},
		{name: "temporarily unavailable", err: errors.New("service temporarily unavailable"), want: true},
		{name: "case insensitive", err: errors.New("Connection reset by peer"), want: true},
		{name: "permission denied", err: errors.New("permission denied"), want: false},
		{name: "syntax error", err: errors.New("syntax error at or near SELECT"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRefetchSuccessReplacesCache(t *testing.T) {
	store := NewCollectionStore()
	store.SetError(ResourceOrders, errors.New("stale error"))

	rows := []Row{{"id": float64(1)}, {"id": float64(2)}}
	r := newTestRefetcher(succeeding(rows), store)
	r.Refetch(ResourceOrders)

	if got := store.Get(ResourceOrders); len(got) != 2 {
		t.Errorf("cached %d rows, want 2", len(got))
	}
	if err := store.Err(ResourceOrders); err != nil {
		t.Errorf("error state = %v, want cleared", err)
	}
}

func TestRefetchOrdersRetriesTransientErrors(t *testing.T) {
	transient := errors.New("read tcp: connection reset")

	// Persistent transient failure: 1 initial attempt + 3 retries, then the
	// error surfaces with the friendly wrapper.
	b := failing(transient, 5)
	store := NewCollectionStore()
	r := newTestRefetcher(b, store)
	r.Refetch(ResourceOrders)

	if b.calls != 4 {
		t.Errorf("backend called %d times, want 4", b.calls)
	}
	err := store.Err(ResourceOrders)
	if !errors.Is(err, ErrTransientNetwork) {
		t.Fatalf("error state = %v, want ErrTransientNetwork", err)
	}
}

func TestRefetchOrdersRecoversMidRetry(t *testing.T) {
	transient := errors.New("dial tcp: i/o timeout")
	b := failing(transient, 2)
	b.script = append(b.script, struct {
		rows []Row
		err  error
	}{[]Row{{"id": float64(7)}}, nil})

	store := NewCollectionStore()
	r := newTestRefetcher(b, store)
	r.Refetch(ResourceOrders)

	if b.calls != 3 {
		t.Errorf("backend called %d times, want 3", b.calls)
	}
	if got := store.Get(ResourceOrders); len(got) != 1 {
		t.Errorf("cached %d rows, want 1", len(got))
	}
	if err := store.Err(ResourceOrders); err != nil {
		t.Errorf("error state = %v, want nil after recovery", err)
	}
}

func TestRefetchOrdersNonTransientNotRetried(t *testing.T) {
	b := failing(errors.New("relation \"orders\" does not exist"), 1)
	store := NewCollectionStore()
	r := newTestRefetcher(b, store)
	r.Refetch(ResourceOrders)

	if b.calls != 1 {
		t.Errorf("backend called %d times, want 1", b.calls)
	}
	if err := store.Err(ResourceOrders); errors.Is(err, ErrTransientNetwork) {
		t.Errorf("non-transient error wrongly classified: %v", err)
	}
}

func TestRefetchOtherResourcesNeverRetried(t *testing.T) {
	// Transient or not, only the orders collection gets retry.
	b := failing(errors.New("connection refused"), 1)
	store := NewCollectionStore()
	r := newTestRefetcher(b, store)
	r.Refetch(ResourceSupportTickets)

	if b.calls != 1 {
		t.Errorf("backend called %d times, want 1", b.calls)
	}
	if store.Err(ResourceSupportTickets) == nil {
		t.Error("expected error state for failed refetch")
	}
}
