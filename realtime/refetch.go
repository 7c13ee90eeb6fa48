package realtime

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Backend is the read side of the persistence layer as the sync layer sees it
type Backend interface {
	// Select returns the full current collection for a resource
	Select(res Resource) ([]Row, error)
	// Probe is a lightweight health query used at startup
	Probe() error
}

// ErrTransientNetwork classifies fetch failures that look like flaky
// connectivity and are worth retrying.
var ErrTransientNetwork = errors.New("transient network error")

const (
	// ordersMaxRetries bounds the extra attempts for the orders collection
	ordersMaxRetries = 3
	// DefaultRetryDelay is the fixed pause between retry attempts
	DefaultRetryDelay = 2 * time.Second
)

var transientMarkers = []string{"connection", "timeout", "network", "temporarily unavailable"}

// IsTransient matches transient network failures by message substring,
// mirroring how the dashboard classifies fetch errors.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// Refetcher reloads collections into the cache store. Only the orders
// collection gets bounded retry; every other resource surfaces its first
// error as a collection-level error state.
type Refetcher struct {
	backend    Backend
	store      *CollectionStore
	retryDelay time.Duration
}

// NewRefetcher creates a refetcher over the backend and cache store
func NewRefetcher(backend Backend, store *CollectionStore) *Refetcher {
	return &Refetcher{
		backend:    backend,
		store:      store,
		retryDelay: DefaultRetryDelay,
	}
}

// Refetch reloads one resource's collection. On success the cache is replaced
// wholesale; on failure the resource's error state is set.
func (r *Refetcher) Refetch(res Resource) {
	rows, err := r.fetch(res)
	if err != nil {
		log.Printf("❌ Refetch of %s failed: %v", res, err)
		r.store.SetError(res, err)
		return
	}

	r.store.Replace(res, rows)
	log.Printf("🔄 Refetched %s (%d rows)", res, len(rows))
}

func (r *Refetcher) fetch(res Resource) ([]Row, error) {
	rows, err := r.backend.Select(res)
	if err == nil {
		return rows, nil
	}

	if res != ResourceOrders || !IsTransient(err) {
		return nil, err
	}

	// Orders power the main dashboard view, so transient failures get a few
	// more chances before the user sees an error.
	for attempt := 1; attempt <= ordersMaxRetries; attempt++ {
		log.Printf("⏳ Transient error fetching %s (attempt %d/%d), retrying in %s: %v",
			res, attempt, ordersMaxRetries, r.retryDelay, err)
		time.Sleep(r.retryDelay)

		rows, err = r.backend.Select(res)
		if err == nil {
			return rows, nil
		}
		if !IsTransient(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: could not load orders, please check your connection: %v", ErrTransientNetwork, err)
}
