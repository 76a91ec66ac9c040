package tfs

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsObserveOperations(t *testing.T) {
	fs, err := New(WithMetrics(NewMetrics()))
	require.NoError(t, err)
	defer fs.Close()

	h := mustCreate(t, fs, "/metered.txt")
	_, err = fs.Write(h, []byte("x"))
	require.NoError(t, err)
	require.NoError(t, fs.CloseHandle(h))

	count := testutil.CollectAndCount(fs.metrics.operations)
	require.Positive(t, count)
}

func TestMetricsNilIsNoOp(t *testing.T) {
	var m *Metrics
	require.Nil(t, m.Registry())
	m.observe("op", time.Now(), nil)
	m.setBitmap("inode", 1)
}
