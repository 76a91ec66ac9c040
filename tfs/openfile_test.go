package tfs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenFileTableAddGetRemove(t *testing.T) {
	t1 := newOpenFileTable()

	h, err := t1.add(3, 10)
	require.NoError(t, err)

	e, err := t1.get(h)
	require.NoError(t, err)
	require.Equal(t, 3, e.inumber)
	require.Equal(t, 10, e.offset)

	require.NoError(t, t1.remove(h))

	// A removed handle is reused by the next add.
	h2, err := t1.add(4, 0)
	require.NoError(t, err)
	require.Equal(t, h, h2)
}

func TestOpenFileTableRemoveInvalidHandle(t *testing.T) {
	t1 := newOpenFileTable()
	require.ErrorIs(t, t1.remove(-1), ErrInvalidArgument)
	require.ErrorIs(t, t1.remove(MaxOpenFiles), ErrInvalidArgument)
	require.ErrorIs(t, t1.remove(0), ErrInvalidArgument) // never allocated
}

func TestOpenFileTableExhaustion(t *testing.T) {
	t1 := newOpenFileTable()
	for i := 0; i < MaxOpenFiles; i++ {
		_, err := t1.add(0, 0)
		require.NoError(t, err)
	}
	_, err := t1.add(0, 0)
	require.ErrorIs(t, err, ErrTableFull)
}
