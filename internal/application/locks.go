package application

import "sync"

// RoomLocks serializes the read-check-write critical section per room, so
// two racing requests for the same room cannot both observe a free slot while
// unrelated rooms proceed in parallel. Booking and schedule services contend
// on the same rooms and must share one instance.
type RoomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRoomLocks returns an empty lock table.
func NewRoomLocks() *RoomLocks {
	return &RoomLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given key and returns its unlock function.
// Lock entries are kept for the life of the process; the key space is the set
// of room ids, which is small and stable.
func (k *RoomLocks) Lock(key string) func() {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
