package tfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileSinkAtomicReplace(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "sink.txt")

	sink, err := NewFileSink(dst)
	require.NoError(t, err)

	_, err = sink.Write([]byte("committed"))
	require.NoError(t, err)

	// The destination must not exist until Close commits it.
	_, statErr := os.Stat(dst)
	require.Error(t, statErr)

	require.NoError(t, sink.Close())

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "committed", string(got))
}

func TestFileSinkAbortLeavesNoFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "aborted.txt")

	sink, err := NewFileSink(dst)
	require.NoError(t, err)
	_, err = sink.Write([]byte("never committed"))
	require.NoError(t, err)

	fs, ok := sink.(*fileSink)
	require.True(t, ok)
	require.NoError(t, fs.abort())

	_, statErr := os.Stat(dst)
	require.Error(t, statErr)
}
