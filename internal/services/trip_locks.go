package services

import "sync"

// tripLocks hands out one mutex per trip ID so the read-check-append
// booking sequence runs single-writer per trip. Locks are never
// removed; the registry grows with the number of distinct trips
// touched by this process, which is bounded by the trip table.
type tripLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newTripLocks() *tripLocks {
	return &tripLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// lock acquires the mutex for the trip and returns the unlock func.
func (t *tripLocks) lock(tripID string) func() {
	t.mu.Lock()
	lock, ok := t.locks[tripID]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[tripID] = lock
	}
	t.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
