package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStats_SnapshotPercentiles(t *testing.T) {
	stats := NewWriteStats(time.Hour)
	for _, ms := range []int{300, 100, 500, 200, 400} {
		stats.Observe(time.Duration(ms)*time.Millisecond, false)
	}
	stats.Observe(0, true)

	snap := stats.Snapshot()
	assert.Equal(t, 6, snap.Count)
	assert.Equal(t, 1, snap.Failed)
	assert.Equal(t, int64(0), snap.MinMs)
	assert.Equal(t, int64(500), snap.MaxMs)
	assert.Equal(t, 250.0, snap.AvgMs)
	assert.Equal(t, 250.0, snap.P50Ms)
	assert.Equal(t, 475.0, snap.P95Ms)
}

func TestWriteStats_PrunesOutsideWindow(t *testing.T) {
	stats := NewWriteStats(time.Minute)
	clock := time.Now()
	stats.now = func() time.Time { return clock }

	stats.Observe(100*time.Millisecond, false)
	clock = clock.Add(2 * time.Minute)
	stats.Observe(200*time.Millisecond, false)

	snap := stats.Snapshot()
	assert.Equal(t, 1, snap.Count)
	assert.Equal(t, int64(200), snap.MinMs)
}

func TestWriteStats_Empty(t *testing.T) {
	assert.Equal(t, WriteStatsSnapshot{}, NewWriteStats(0).Snapshot())
}

func TestWriteStats_NegativeDurationClamped(t *testing.T) {
	stats := NewWriteStats(time.Hour)
	stats.Observe(-time.Second, false)
	assert.Equal(t, int64(0), stats.Snapshot().MaxMs)
}

type errWriter struct{ err error }

func (e errWriter) BatchWrite(context.Context, Target, []CellWrite) error { return e.err }

func TestTimedWriter_RecordsOutcome(t *testing.T) {
	stats := NewWriteStats(time.Hour)
	boom := errors.New("boom")

	ok := TimedWriter{Writer: errWriter{}, Stats: stats}
	bad := TimedWriter{Writer: errWriter{err: boom}, Stats: stats}

	require.NoError(t, ok.BatchWrite(context.Background(), Target{}, nil))
	assert.ErrorIs(t, bad.BatchWrite(context.Background(), Target{}, nil), boom)

	snap := stats.Snapshot()
	assert.Equal(t, 2, snap.Count)
	assert.Equal(t, 1, snap.Failed)
}
