package tfs

import (
	"fmt"
	"sync"
)

// inodeType distinguishes a plain file from the (single, root)
// directory.
type inodeType int

const (
	typeFile inodeType = iota
	typeDirectory
)

// inode mirrors inode_t from the original source: a type, a logical
// size, a direct block-index vector, one indirect block-index slot,
// and the "current write cursor" block index, plus its own
// entityLock. Fields are accessed only while holding at least the
// inode's entityLock, acquired by the caller before any field is
// read or written.
type inode struct {
	entityLock

	typ          inodeType
	size         int
	direct       [MaxDirectBlocks]int
	indirect     int
	currentBlock int // mirrors i_data_block: the block currently being appended to
}

func newFreeInode() *inode {
	n := &inode{indirect: none, currentBlock: none}
	for i := range n.direct {
		n.direct[i] = none
	}
	return n
}

// inodeTable is the fixed-size inode array plus its two guarding
// locks: alloc (the bitmap with the table's dedicated mutex, guarding the
// freeinode_ts array) and mapLock (the table's rwlock, guarding
// existence/content of entries during directory operations).
type inodeTable struct {
	nodes   []*inode
	alloc   *bitmap
	mapLock sync.RWMutex
	blocks  *blockStore
}

func newInodeTable(blocks *blockStore) *inodeTable {
	t := &inodeTable{
		nodes:  make([]*inode, InodeTableSize),
		alloc:  newBitmap(InodeTableSize),
		blocks: blocks,
	}
	for i := range t.nodes {
		t.nodes[i] = newFreeInode()
	}
	return t
}

// create allocates an inode of the given type. For a directory it
// also allocates and initializes the first data block as a free
// directory-entry array, matching inode_create's T_DIRECTORY branch.
func (t *inodeTable) create(typ inodeType) (int, error) {
	inum := t.alloc.alloc()
	if inum == none {
		return none, fmt.Errorf("%w: inode table", ErrTableFull)
	}
	simulateLatency() // storage access to the freshly-claimed inode

	n := t.nodes[inum]
	n.typ = typ
	n.indirect = none
	for i := range n.direct {
		n.direct[i] = none
	}

	if typ == typeDirectory {
		b := t.blocks.alloc()
		if b == none {
			t.alloc.free(inum)
			return none, fmt.Errorf("%w: data blocks", ErrTableFull)
		}
		n.size = BlockSize
		n.currentBlock = b
		n.direct[0] = b
		newDirView(t.blocks.get(b)).initFree()
	} else {
		n.size = 0
		n.currentBlock = none
	}

	return inum, nil
}

// delete frees the inode's primary data block (currentBlock) if
// present and marks the inode slot free. No other block is reclaimed:
// the remaining direct blocks, the indirect index block and the blocks
// it references all stay TAKEN, so deleting a file larger than one
// block leaks them.
func (t *inodeTable) delete(inumber int) error {
	if !t.alloc.valid(inumber) {
		return fmt.Errorf("%w: inumber %d", ErrInvalidArgument, inumber)
	}
	simulateLatency()
	simulateLatency()

	n := t.nodes[inumber]
	if n.size > 0 && n.currentBlock != none {
		t.blocks.free(n.currentBlock)
	}
	if !t.alloc.free(inumber) {
		return fmt.Errorf("%w: inumber %d", ErrInvalidArgument, inumber)
	}
	return nil
}

// get validates inumber's range and returns the inode, without
// locking — the caller must take the inode's own lock before touching
// its fields.
func (t *inodeTable) get(inumber int) (*inode, error) {
	if !t.alloc.valid(inumber) {
		return nil, fmt.Errorf("%w: inumber %d", ErrInvalidArgument, inumber)
	}
	simulateLatency()
	return t.nodes[inumber], nil
}

// addDirEntry requires dirInumber to name a directory, and fills the
// first free slot of its entry array with (name, childInumber).
func (t *inodeTable) addDirEntry(dirInumber, childInumber int, name string) error {
	if !t.alloc.valid(dirInumber) || !t.alloc.valid(childInumber) {
		return fmt.Errorf("%w: inumber", ErrInvalidArgument)
	}
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidArgument)
	}

	t.mapLock.RLock()
	dir := t.nodes[dirInumber]
	simulateLatency()
	if dir.typ != typeDirectory {
		t.mapLock.RUnlock()
		return fmt.Errorf("%w: inumber %d is not a directory", ErrInvalidArgument, dirInumber)
	}
	block := t.blocks.get(dir.currentBlock)
	t.mapLock.RUnlock()

	if block == nil {
		return fmt.Errorf("%w: directory has no data block", ErrInvalidArgument)
	}

	if !newDirView(block).insert(name, childInumber) {
		return fmt.Errorf("%w: directory", ErrTableFull)
	}
	return nil
}

// findInDir linearly scans dirInumber's entry array for name, and
// returns its inumber or none.
func (t *inodeTable) findInDir(dirInumber int, name string) int {
	simulateLatency()

	t.mapLock.RLock()
	if !t.alloc.valid(dirInumber) || t.nodes[dirInumber].typ != typeDirectory {
		t.mapLock.RUnlock()
		return none
	}
	block := t.blocks.get(t.nodes[dirInumber].currentBlock)
	t.mapLock.RUnlock()

	if block == nil {
		return none
	}
	return newDirView(block).find(name)
}
