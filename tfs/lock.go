package tfs

import "sync"

// entityLock bundles a mutex and a reader-writer lock on one entity
// (one inode, one open-file entry), matching the original source's
// pairing of a pthread_mutex_t and a pthread_rwlock_t on both
// inode_t and open_file_entry_t. The mutex guards exclusive, short
// critical sections (e.g. open()'s truncate-and-seek step); the rwlock
// guards the read/write fast paths. Writes take the rwlock for
// reading, not for writing, so concurrent writers on distinct handles
// to the same entity are ordered only at block-allocation granularity,
// not against each other directly.
type entityLock struct {
	mu sync.Mutex
	rw sync.RWMutex
}

func (l *entityLock) lockMutex()   { l.mu.Lock() }
func (l *entityLock) unlockMutex() { l.mu.Unlock() }

func (l *entityLock) rlock()   { l.rw.RLock() }
func (l *entityLock) runlock() { l.rw.RUnlock() }
