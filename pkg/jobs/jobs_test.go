package jobs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/jordanlanch/alug/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	rows int64
	err  error
}

func (p *fakePurger) PurgeExpired(context.Context) (int64, error) {
	return p.rows, p.err
}

type countingRecorder struct {
	total int64
}

func (r *countingRecorder) RecordStoragePurge(rows int64) { r.total += rows }

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, "", 0)
}

func TestJanitor_Purge(t *testing.T) {
	t.Run("Success - rows are recorded", func(t *testing.T) {
		rec := &countingRecorder{}
		j := NewJanitor(&fakePurger{rows: 4}, rec, quietLogger())

		rows, err := j.Purge(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(4), rows)
		assert.Equal(t, int64(4), rec.total)
		stats := j.Stats()
		assert.Equal(t, 1, stats.Runs)
		assert.Equal(t, int64(4), stats.RowsPurged)
		assert.False(t, stats.LastRun.IsZero())
	})

	t.Run("Error - failure is counted", func(t *testing.T) {
		rec := &countingRecorder{}
		j := NewJanitor(&fakePurger{err: errors.New("database is locked")}, rec, quietLogger())

		_, err := j.Purge(context.Background())

		assert.Error(t, err)
		assert.Equal(t, int64(0), rec.total)
		assert.Equal(t, 1, j.Stats().Failures)
	})

	t.Run("Success - nil recorder", func(t *testing.T) {
		j := NewJanitor(&fakePurger{rows: 1}, nil, nil)

		_, err := j.Purge(context.Background())

		assert.NoError(t, err)
	})
}

func TestJanitor_PurgesExpiredSQLRows(t *testing.T) {
	store, err := storage.NewSQLStore("sqlite3", ":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "client-a", storage.KeyCategories, "[]", time.Millisecond))
	require.NoError(t, store.Set(ctx, "client-a", storage.KeyToken, "tok", 0))
	time.Sleep(5 * time.Millisecond)

	rows, err := NewJanitor(store, nil, quietLogger()).Purge(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	_, err = store.Get(ctx, "client-a", storage.KeyToken)
	assert.NoError(t, err)
}

func TestCronManager_SetupJobs(t *testing.T) {
	t.Run("Success - valid schedule", func(t *testing.T) {
		cm := NewCronManager(&fakePurger{}, nil, quietLogger())

		require.NoError(t, cm.SetupJobs("*/30 * * * *"))
		cm.Start()
		cm.Stop()
	})

	t.Run("Error - invalid schedule", func(t *testing.T) {
		cm := NewCronManager(&fakePurger{}, nil, quietLogger())

		assert.Error(t, cm.SetupJobs("every half hour"))
	})

	t.Run("Success - manual run updates stats", func(t *testing.T) {
		cm := NewCronManager(&fakePurger{rows: 2}, nil, quietLogger())

		cm.runPurge()

		assert.Equal(t, int64(2), cm.GetJanitor().Stats().RowsPurged)
	})
}
