package usecase

import (
	"sort"
	"sync"
)

// accountLocks hands out one mutex per account id so mutating operations on
// the same account are serialized across the full read-modify-append sequence.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *accountLocks) get(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}

	return m
}

// Acquire locks every id in sorted order (DEADLOCK PREVENTION) and returns a
// release function that unlocks in reverse order. Duplicate ids are collapsed.
func (l *accountLocks) Acquire(ids ...string) func() {
	seen := make(map[string]bool, len(ids))

	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	sort.Strings(unique)

	held := make([]*sync.Mutex, 0, len(unique))
	for _, id := range unique {
		m := l.get(id)
		m.Lock()
		held = append(held, m)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
