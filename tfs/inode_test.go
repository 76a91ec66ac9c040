package tfs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestInodeTable() *inodeTable {
	return newInodeTable(newBlockStore())
}

func TestInodeTableCreateDirectory(t *testing.T) {
	it := newTestInodeTable()
	inum, err := it.create(typeDirectory)
	require.NoError(t, err)

	n, err := it.get(inum)
	require.NoError(t, err)
	require.Equal(t, typeDirectory, n.typ)
	require.Equal(t, BlockSize, n.size)
	require.NotEqual(t, none, n.currentBlock)
}

func TestInodeTableCreateFile(t *testing.T) {
	it := newTestInodeTable()
	inum, err := it.create(typeFile)
	require.NoError(t, err)

	n, err := it.get(inum)
	require.NoError(t, err)
	require.Equal(t, typeFile, n.typ)
	require.Zero(t, n.size)
	require.Equal(t, none, n.currentBlock)
}

func TestInodeTableAddAndFindDirEntry(t *testing.T) {
	it := newTestInodeTable()
	dir, err := it.create(typeDirectory)
	require.NoError(t, err)
	file, err := it.create(typeFile)
	require.NoError(t, err)

	require.NoError(t, it.addDirEntry(dir, file, "a.txt"))
	require.Equal(t, file, it.findInDir(dir, "a.txt"))
	require.Equal(t, none, it.findInDir(dir, "b.txt"))
}

func TestInodeTableAddDirEntryRejectsNonDirectory(t *testing.T) {
	it := newTestInodeTable()
	f1, err := it.create(typeFile)
	require.NoError(t, err)
	f2, err := it.create(typeFile)
	require.NoError(t, err)

	err = it.addDirEntry(f1, f2, "x")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInodeTableDeleteFreesPrimaryBlock(t *testing.T) {
	it := newTestInodeTable()
	dir, err := it.create(typeDirectory)
	require.NoError(t, err)
	n, err := it.get(dir)
	require.NoError(t, err)
	block := n.currentBlock

	require.NoError(t, it.delete(dir))
	require.False(t, it.alloc.isTaken(dir))
	require.False(t, it.blocks.bitmap.isTaken(block))
}

func TestInodeTableExhaustion(t *testing.T) {
	it := newTestInodeTable()
	for i := 0; i < InodeTableSize; i++ {
		_, err := it.create(typeFile)
		require.NoError(t, err)
	}
	_, err := it.create(typeFile)
	require.ErrorIs(t, err, ErrTableFull)
}
