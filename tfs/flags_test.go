package tfs

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestFlagsFromPosix(t *testing.T) {
	f := FlagsFromPosix(unix.O_CREAT | unix.O_TRUNC)
	require.True(t, f.has(Creat))
	require.True(t, f.has(Trunc))
	require.False(t, f.has(Append))

	f = FlagsFromPosix(unix.O_APPEND)
	require.True(t, f.has(Append))
	require.False(t, f.has(Creat))
}
