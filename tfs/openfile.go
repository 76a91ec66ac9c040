package tfs

import (
	"fmt"
	"sync"
)

// openFileEntry mirrors open_file_entry_t: an inumber, a current
// offset, and its own entityLock. Handles are stable indices into
// openFileTable.entries; a handle is reused once removed, matching
// the spec's FREE/TAKEN state machine.
type openFileEntry struct {
	entityLock

	inumber int
	offset  int
}

// openFileTable is the fixed-size open-file array plus its own
// bitmap (mutex, guarding allocation) and rwlock (guarding existence
// of entries during concurrent add/remove).
type openFileTable struct {
	entries []*openFileEntry
	alloc   *bitmap
	mapLock sync.RWMutex
}

func newOpenFileTable() *openFileTable {
	t := &openFileTable{
		entries: make([]*openFileEntry, MaxOpenFiles),
		alloc:   newBitmap(MaxOpenFiles),
	}
	for i := range t.entries {
		t.entries[i] = &openFileEntry{}
	}
	return t
}

// add claims the first free handle and initializes it to
// (inumber, offset).
func (t *openFileTable) add(inumber, offset int) (int, error) {
	t.mapLock.Lock()
	defer t.mapLock.Unlock()
	h := t.alloc.alloc()
	if h == none {
		return none, fmt.Errorf("%w: open-file table", ErrTableFull)
	}
	e := t.entries[h]
	e.inumber = inumber
	e.offset = offset
	return h, nil
}

// remove frees handle, failing if it is out of range or already free.
func (t *openFileTable) remove(handle int) error {
	if !t.alloc.valid(handle) {
		return fmt.Errorf("%w: handle %d", ErrInvalidArgument, handle)
	}
	t.mapLock.Lock()
	defer t.mapLock.Unlock()
	if !t.alloc.isTaken(handle) {
		return fmt.Errorf("%w: handle %d not open", ErrInvalidArgument, handle)
	}
	if !t.alloc.free(handle) {
		return fmt.Errorf("%w: handle %d", ErrInvalidArgument, handle)
	}
	return nil
}

// get range-checks handle and returns its entry. It does not verify
// the handle is currently allocated: callers that must exclude a
// freed handle synchronize through the map-level lock during add/
// remove, per the original's get_open_file_entry which performs the
// same bounds-only check.
func (t *openFileTable) get(handle int) (*openFileEntry, error) {
	if !t.alloc.valid(handle) {
		return nil, fmt.Errorf("%w: handle %d", ErrInvalidArgument, handle)
	}
	return t.entries[handle], nil
}
