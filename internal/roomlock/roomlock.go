package roomlock

import (
	"sync"

	"github.com/snaphunt/snaphunt/internal/model"
)

// KeyedMutex serializes operations per room id. All read-modify-write of a
// room's roster, rounds, and submissions must run under its lock; requests
// for different rooms proceed in parallel.
//
// Locks are never removed from the map. A room entry is two words plus a
// mutex; teardown of stale entries is not worth the bookkeeping at this scale.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[model.RoomID]*sync.Mutex
}

// New creates a new KeyedMutex
func New() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[model.RoomID]*sync.Mutex),
	}
}

// Lock acquires the lock for the given room id, blocking until available.
// The returned function releases it.
func (k *KeyedMutex) Lock(roomID model.RoomID) func() {
	k.mu.Lock()
	lock, ok := k.locks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[roomID] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
