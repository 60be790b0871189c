// Package jobs runs the service's scheduled maintenance.
package jobs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Purger is a client store that can drop its expired entries
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// PurgeRecorder receives the number of purged entries
type PurgeRecorder interface {
	RecordStoragePurge(rows int64)
}

// PurgeStats summarises the janitor's runs since startup
type PurgeStats struct {
	Runs       int       `json:"runs"`
	Failures   int       `json:"failures"`
	RowsPurged int64     `json:"rows_purged"`
	LastRun    time.Time `json:"last_run"`
}

// Janitor removes expired client storage entries
type Janitor struct {
	store    Purger
	recorder PurgeRecorder
	logger   *log.Logger

	mu    sync.Mutex
	stats PurgeStats
	now   func() time.Time
}

// NewJanitor creates a janitor over store. recorder may be nil.
func NewJanitor(store Purger, recorder PurgeRecorder, logger *log.Logger) *Janitor {
	if logger == nil {
		logger = log.Default()
	}

	return &Janitor{
		store:    store,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Purge runs one purge pass
func (j *Janitor) Purge(ctx context.Context) (int64, error) {
	rows, err := j.store.PurgeExpired(ctx)

	j.mu.Lock()
	j.stats.Runs++
	j.stats.LastRun = j.now()
	if err != nil {
		j.stats.Failures++
	} else {
		j.stats.RowsPurged += rows
	}
	j.mu.Unlock()

	if err != nil {
		return 0, fmt.Errorf("failed to purge expired storage: %w", err)
	}
	if j.recorder != nil {
		j.recorder.RecordStoragePurge(rows)
	}
	return rows, nil
}

// Stats returns a copy of the run statistics
func (j *Janitor) Stats() PurgeStats {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.stats
}
