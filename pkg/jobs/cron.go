package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const purgeTimeout = 5 * time.Minute

// CronManager manages scheduled jobs
type CronManager struct {
	cron    *cron.Cron
	janitor *Janitor
	logger  *log.Logger
}

// NewCronManager creates a new cron manager
func NewCronManager(store Purger, recorder PurgeRecorder, logger *log.Logger) *CronManager {
	if logger == nil {
		logger = log.Default()
	}

	return &CronManager{
		cron:    cron.New(),
		janitor: NewJanitor(store, recorder, logger),
		logger:  logger,
	}
}

// SetupJobs schedules the storage purge. schedule is a standard five-field
// cron expression.
func (cm *CronManager) SetupJobs(schedule string) error {
	cm.logger.Println("Setting up cron jobs...")

	_, err := cm.cron.AddFunc(schedule, cm.runPurge)
	if err != nil {
		return err
	}

	cm.logger.Println("✅ Cron jobs configured successfully")
	cm.logger.Printf("  - %s: Purge expired client storage", schedule)
	return nil
}

func (cm *CronManager) runPurge() {
	cm.logger.Println("🕐 Running client storage purge...")

	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	rows, err := cm.janitor.Purge(ctx)
	if err != nil {
		cm.logger.Printf("❌ %v", err)
		return
	}

	cm.logger.Printf("✅ Purged %d expired storage entries", rows)
}

// Start starts the scheduler
func (cm *CronManager) Start() {
	cm.cron.Start()
	cm.logger.Println("✅ Cron scheduler started")
}

// Stop stops the scheduler and waits for a running job
func (cm *CronManager) Stop() {
	<-cm.cron.Stop().Done()
	cm.logger.Println("Cron scheduler stopped")
}

// GetJanitor returns the janitor for status reporting
func (cm *CronManager) GetJanitor() *Janitor {
	return cm.janitor
}
