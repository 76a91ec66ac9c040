package tfs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngineWriteReadDirect(t *testing.T) {
	blocks := newBlockStore()
	e := newEngine(blocks)
	n := newFreeInode()
	n.typ = typeFile
	n.size = 0
	file := &openFileEntry{inumber: 0, offset: 0}

	payload := bytes.Repeat([]byte("ab"), BlockSize) // 2 direct blocks
	written, err := e.writeDirect(n, file, payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), written)
	require.Equal(t, len(payload), n.size)
	require.NotEqual(t, none, n.direct[0])
	require.NotEqual(t, none, n.direct[1])

	file.offset = 0
	dest := make([]byte, len(payload))
	read, err := e.readDirect(n, file, dest)
	require.NoError(t, err)
	require.Equal(t, len(payload), read)
	require.Equal(t, payload, dest)
}

func TestEngineDirectRegionExhaustion(t *testing.T) {
	blocks := newBlockStore()
	e := newEngine(blocks)
	n := newFreeInode()
	n.typ = typeFile
	file := &openFileEntry{}

	payload := bytes.Repeat([]byte{1}, maxBytesDirect)
	written, err := e.writeDirect(n, file, payload)
	require.NoError(t, err)
	require.Equal(t, maxBytesDirect, written)

	// One further byte has nowhere to go in the direct region.
	_, err = e.writeDirect(n, file, []byte{2})
	require.ErrorIs(t, err, ErrWrite)
}

func TestEngineWriteReadIndirect(t *testing.T) {
	blocks := newBlockStore()
	e := newEngine(blocks)
	n := newFreeInode()
	n.typ = typeFile

	// Fill the direct region first, crossing into the indirect one.
	file := &openFileEntry{}
	_, err := e.writeDirect(n, file, bytes.Repeat([]byte{1}, maxBytesDirect))
	require.NoError(t, err)

	require.True(t, e.allocIndirect(n))
	require.NotEqual(t, none, n.indirect)

	payload := bytes.Repeat([]byte("z"), BlockSize+10)
	written, err := e.writeIndirect(n, file, payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), written)

	file.offset = maxBytesDirect
	dest := make([]byte, len(payload))
	read, err := e.readIndirect(n, file, dest)
	require.NoError(t, err)
	require.Equal(t, len(payload), read)
	require.Equal(t, payload, dest)
}
