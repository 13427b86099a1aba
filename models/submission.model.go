package models

import (
	"time"

	"gorm.io/gorm"
)

// Submission statuses
const (
	SubmissionPending = "pending"
	SubmissionGraded  = "graded"
)

// LabSubmission is the current submission of a student for a lab within a
// project. The (user, project, lab) key is unique: resubmission bumps the
// attempt counter in place instead of inserting a new row.
type LabSubmission struct {
	gorm.Model
	UserID      uint             `json:"userId" gorm:"not null;uniqueIndex:uidx_submission_key"`
	ProjectID   uint             `json:"projectId" gorm:"not null;uniqueIndex:uidx_submission_key"`
	LabID       uint             `json:"labId" gorm:"not null;uniqueIndex:uidx_submission_key"`
	ClassroomID uint             `json:"classroomId" gorm:"index"`
	Attempt     int              `json:"attempt" gorm:"default:1"`
	Status      string           `json:"status" gorm:"default:'pending'"`
	Grade       *float64         `json:"grade"`
	Feedback    *string          `json:"feedback"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Files       []SubmissionFile `json:"files" gorm:"foreignKey:SubmissionID"`
}

// SubmissionFile references an uploaded file of the current submission.
// Rows (and backing files) of a superseded submission are removed when a
// new attempt is stored.
type SubmissionFile struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"createdAt"`
	SubmissionID uint      `json:"-" gorm:"index;not null"`
	URL          string    `json:"url" gorm:"not null"`
	OriginalName string    `json:"originalName"`
}

// FileCleanup is the outbox for physical file deletion. A row is written in
// the same transaction that drops the SubmissionFile rows it replaces; the
// actual unlink happens after commit and is retried by the cleanup sweep,
// so a crash can leave a stale file on disk but never a dangling reference.
type FileCleanup struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time
	Path      string `gorm:"not null"`
}
