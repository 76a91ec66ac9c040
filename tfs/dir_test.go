package tfs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirViewInsertFindRoundTrip(t *testing.T) {
	raw := make([]byte, BlockSize)
	v := newDirView(raw)
	v.initFree()

	require.Equal(t, maxDirEntries, v.count())
	require.Equal(t, none, v.find("missing"))

	require.True(t, v.insert("hello.txt", 3))
	require.Equal(t, 3, v.find("hello.txt"))
	require.Equal(t, "hello.txt", v.name(0))
}

func TestDirViewNameTruncation(t *testing.T) {
	raw := make([]byte, BlockSize)
	v := newDirView(raw)
	v.initFree()

	long := strings.Repeat("x", MaxFileName+10)
	require.True(t, v.insert(long, 1))

	stored := v.name(0)
	require.Len(t, stored, MaxFileName-1)

	// A lookup with an equally long, identically-prefixed name still
	// matches: find truncates its query the same way insert truncated
	// the stored name.
	require.Equal(t, 1, v.find(long))
}

func TestDirViewFullReturnsFalse(t *testing.T) {
	raw := make([]byte, BlockSize)
	v := newDirView(raw)
	v.initFree()

	for i := 0; i < v.count(); i++ {
		require.True(t, v.insert("f", i))
	}
	require.False(t, v.insert("overflow", 999))
}
