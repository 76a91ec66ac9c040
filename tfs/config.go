package tfs

// Compile-time configuration. These values are part of the public
// contract: changing them changes the on-the-wire behavior of every
// operation below, not just an internal tuning knob.
const (
	// BlockSize is the size in bytes of one data block.
	BlockSize = 1024
	// DataBlocks is the number of data blocks in the block store.
	DataBlocks = 1024
	// InodeTableSize is the number of entries in the inode table.
	InodeTableSize = 50
	// MaxOpenFiles is the number of entries in the open-file table.
	MaxOpenFiles = 20
	// MaxFileName is the maximum length, including the terminator, of
	// a directory entry name.
	MaxFileName = 40
	// MaxDirectBlocks is the number of direct block slots on an inode.
	MaxDirectBlocks = 10
	// IndexSize is the size in bytes of one block index as stored in
	// an indirect (index) block.
	IndexSize = 4
	// Delay is the number of busy-wait iterations used to simulate a
	// single storage access.
	Delay = 5000
	// RootDirInum is the fixed inumber of the root directory.
	RootDirInum = 0

	maxBytesDirect = MaxDirectBlocks * BlockSize
	indexesPerBlock = BlockSize / IndexSize

	// MaxFileBytes is the largest size a single file's content may
	// reach: the direct region plus everything addressable through
	// one indirect index block.
	MaxFileBytes = maxBytesDirect + indexesPerBlock*BlockSize
)

// dirEntrySize is the on-disk footprint of one directory entry:
// MaxFileName bytes of name plus one int32 inumber.
const dirEntrySize = MaxFileName + 4

// maxDirEntries is the number of directory-entry slots in the root
// directory's single data block.
const maxDirEntries = BlockSize / dirEntrySize

// none marks an unallocated inode/block reference, mirroring the
// original source's use of -1 for "no block"/"no inode".
const none = -1
