package realtime

import "sync"

// CollectionStore holds the in-memory caches of backend collections. Each
// refetch replaces a resource's rows wholesale; there is no incremental
// patching. Concurrent refetches of the same resource resolve
// last-write-wins, which the dashboard tolerates.
type CollectionStore struct {
	mu   sync.RWMutex
	rows map[Resource][]Row
	errs map[Resource]error
}

// NewCollectionStore creates an empty collection store
func NewCollectionStore() *CollectionStore {
	return &CollectionStore{
		rows: make(map[Resource][]Row),
		errs: make(map[Resource]error),
	}
}

// Replace swaps in a fresh copy of the resource's rows and clears its error
func (cs *CollectionStore) Replace(res Resource, rows []Row) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.rows[res] = rows
	delete(cs.errs, res)
}

// Get returns the cached rows for a resource (nil when never fetched)
func (cs *CollectionStore) Get(res Resource) []Row {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.rows[res]
}

// SetError records a collection-level error state for the resource
func (cs *CollectionStore) SetError(res Resource, err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.errs[res] = err
}

// Err returns the resource's error state, nil when healthy
func (cs *CollectionStore) Err(res Resource) error {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.errs[res]
}
