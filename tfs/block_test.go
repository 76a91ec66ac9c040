package tfs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockStoreAllocZeroesBlock(t *testing.T) {
	bs := newBlockStore()
	idx := bs.alloc()
	require.NotEqual(t, none, idx)

	block := bs.get(idx)
	for _, b := range block {
		require.Zero(t, b)
	}
	block[0] = 0xFF

	require.True(t, bs.free(idx))

	idx2 := bs.alloc()
	require.Equal(t, idx, idx2)
	require.Zero(t, bs.get(idx2)[0])
}

func TestBlockStoreGetOutOfRange(t *testing.T) {
	bs := newBlockStore()
	require.Nil(t, bs.get(-1))
	require.Nil(t, bs.get(DataBlocks))
}

func TestIndexViewRoundTrip(t *testing.T) {
	raw := make([]byte, BlockSize)
	v := newIndexView(raw)
	v.initFree()

	require.Equal(t, indexesPerBlock, v.slots())
	for i := 0; i < v.slots(); i++ {
		require.Equal(t, none, v.get(i))
	}

	v.set(0, 7)
	v.set(v.slots()-1, 1000)
	require.Equal(t, 7, v.get(0))
	require.Equal(t, 1000, v.get(v.slots()-1))
	require.Equal(t, none, v.get(1))
}
