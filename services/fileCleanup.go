package services

import (
	"log"
	"os"

	"netlab/models"

	"gorm.io/gorm"
)

// SweepFileCleanups unlinks every file queued in the FileCleanup outbox
// and removes the rows that were cleaned. A file already gone counts as
// cleaned; any other failure keeps the row for the next sweep.
func SweepFileCleanups(db *gorm.DB) {
	var rows []models.FileCleanup
	if err := db.Find(&rows).Error; err != nil {
		log.Printf("[FILE-CLEANUP] Error fetching cleanup queue: %v", err)
		return
	}

	for _, row := range rows {
		if err := os.Remove(row.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("[FILE-CLEANUP] Failed to remove %s: %v", row.Path, err)
			continue
		}
		if err := db.Delete(&models.FileCleanup{}, row.ID).Error; err != nil {
			log.Printf("[FILE-CLEANUP] Failed to clear queue entry %d: %v", row.ID, err)
		}
	}
}
