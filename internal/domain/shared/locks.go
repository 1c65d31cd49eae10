package shared

import (
	"sort"
	"sync"
)

// ShipYearLocks serializes mutations per ship-year within a process.
// Storage-level locking (row locks, unique indexes) covers multiple processes.
type ShipYearLocks struct {
	mu    sync.Mutex
	locks map[string]*shipYearLock
}

type shipYearLock struct {
	mu      sync.Mutex
	holders int
}

func NewShipYearLocks() *ShipYearLocks {
	return &ShipYearLocks{locks: make(map[string]*shipYearLock)}
}

// Lock acquires the locks for every given ship-year and returns the release func.
// Keys are deduplicated and acquired in sorted order so overlapping callers cannot deadlock.
func (l *ShipYearLocks) Lock(shipYears ...ShipYear) func() {
	keys := make([]string, 0, len(shipYears))
	seen := make(map[string]bool, len(shipYears))
	for _, sy := range shipYears {
		k := sy.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	sort.Strings(keys)

	acquired := make([]*shipYearLock, 0, len(keys))
	for _, k := range keys {
		entry := l.acquire(k)
		entry.mu.Lock()
		acquired = append(acquired, entry)
	}

	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].mu.Unlock()
			l.release(keys[i])
		}
	}
}

func (l *ShipYearLocks) acquire(key string) *shipYearLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &shipYearLock{}
		l.locks[key] = entry
	}
	entry.holders++
	return entry
}

func (l *ShipYearLocks) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.locks[key]
	if !ok {
		return
	}
	entry.holders--
	if entry.holders == 0 {
		delete(l.locks, key)
	}
}

// Held returns the number of ship-years currently locked or awaited
func (l *ShipYearLocks) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
