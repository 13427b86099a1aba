package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Progress statuses
const (
	ProgressNotStarted = "NOT_STARTED"
	ProgressInProgress = "IN_PROGRESS"
	ProgressCompleted  = "COMPLETED"
)

// Progress is the per-student per-project completion aggregate, derived
// from the student's LabProgress rows. Created lazily on first activity,
// never deleted.
type Progress struct {
	gorm.Model
	UserID          uint   `json:"userId" gorm:"not null;uniqueIndex:uidx_user_project"`
	ProjectID       uint   `json:"projectId" gorm:"not null;uniqueIndex:uidx_user_project"`
	PercentComplete int    `json:"percentComplete" gorm:"default:0"`
	Status          string `json:"status" gorm:"default:'NOT_STARTED'"`
}

// LabProgress tracks one student's completion of one lab within a project
type LabProgress struct {
	gorm.Model
	ProgressID             uint                        `json:"progressId" gorm:"not null;uniqueIndex:uidx_progress_lab"`
	LabID                  uint                        `json:"labId" gorm:"not null;uniqueIndex:uidx_progress_lab"`
	CompletedSections      datatypes.JSONSlice[string] `json:"completedSections"`
	CompletedTasks         datatypes.JSONSlice[string] `json:"completedTasks"`
	CompletedVerifications datatypes.JSONSlice[string] `json:"completedVerifications"`
	PercentComplete        int                         `json:"percentComplete" gorm:"default:0"`
	Status                 string                      `json:"status" gorm:"default:'NOT_STARTED'"`
	StartedAt              *time.Time                  `json:"startedAt"`
	CompletedAt            *time.Time                  `json:"completedAt"`
}
