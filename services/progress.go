package services

import (
	"math"
	"time"

	"netlab/models"

	"gorm.io/gorm/clause"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ensureProgress is an idempotent create-if-missing for the per-student
// per-project aggregate; concurrent first submits race harmlessly on the
// DO NOTHING insert
func ensureProgress(tx *gorm.DB, userID, projectID uint) (*models.Progress, error) {
	fresh := models.Progress{
		UserID:    userID,
		ProjectID: projectID,
		Status:    models.ProgressNotStarted,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "project_id"}},
		DoNothing: true,
	}).Create(&fresh).Error; err != nil {
		return nil, err
	}

	var p models.Progress
	if err := tx.Where("user_id = ? AND project_id = ?", userID, projectID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// upsertLabProgress marks the lab completed for this progress row and
// overwrites the completed-identifier sets; started_at is written only
// when the row is first created
func upsertLabProgress(tx *gorm.DB, progressID, labID uint, in *SubmitInput) error {
	now := time.Now()
	lp := models.LabProgress{
		ProgressID:             progressID,
		LabID:                  labID,
		CompletedSections:      datatypes.NewJSONSlice(in.CompletedSections),
		CompletedTasks:         datatypes.NewJSONSlice(in.CompletedTasks),
		CompletedVerifications: datatypes.NewJSONSlice(in.CompletedVerifications),
		PercentComplete:        100,
		Status:                 models.ProgressCompleted,
		StartedAt:              &now,
		CompletedAt:            &now,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "progress_id"}, {Name: "lab_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"completed_sections":      datatypes.NewJSONSlice(in.CompletedSections),
			"completed_tasks":         datatypes.NewJSONSlice(in.CompletedTasks),
			"completed_verifications": datatypes.NewJSONSlice(in.CompletedVerifications),
			"percent_complete":        100,
			"status":                  models.ProgressCompleted,
			"completed_at":            now,
			"updated_at":              now,
		}),
	}).Create(&lp).Error
}

// recomputeProjectProgress derives the project percentage from committed
// LabProgress rows: round(completed/total*100), scoped strictly to the
// labs linked to this project
func recomputeProjectProgress(tx *gorm.DB, progressID uint, projectID uint) error {
	var total int64
	if err := tx.Table("project_labs").Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return err
	}

	var completed int64
	if err := tx.Model(&models.LabProgress{}).
		Where("progress_id = ? AND status = ?", progressID, models.ProgressCompleted).
		Count(&completed).Error; err != nil {
		return err
	}

	percent := 0
	if total > 0 {
		percent = int(math.Round(float64(completed) / float64(total) * 100))
	}
	status := models.ProgressInProgress
	if percent == 100 {
		status = models.ProgressCompleted
	}

	return tx.Model(&models.Progress{}).Where("id = ?", progressID).Updates(map[string]interface{}{
		"percent_complete": percent,
		"status":           status,
	}).Error
}
