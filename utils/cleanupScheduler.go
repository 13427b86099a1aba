package utils

import (
	"log"

	"netlab/config"
	"netlab/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeCleanupScheduler starts the orphaned-file sweep: submission
// files superseded inside a transaction are only unlinked after commit, so
// a crash in between leaves FileCleanup rows behind for this job
func InitializeCleanupScheduler(db *gorm.DB) {
	log.Println("[CLEANUP-SCHEDULER] Initializing orphaned file sweep...")

	c := cron.New()

	if _, err := c.AddFunc(config.AppConfig.CleanupSchedule, func() {
		services.SweepFileCleanups(db)
	}); err != nil {
		log.Printf("[CLEANUP-SCHEDULER] Invalid schedule %q: %v", config.AppConfig.CleanupSchedule, err)
		return
	}

	c.Start()

	// clear anything a previous crash left queued
	go services.SweepFileCleanups(db)

	log.Printf("[CLEANUP-SCHEDULER] File sweep scheduled (%s)", config.AppConfig.CleanupSchedule)
}
