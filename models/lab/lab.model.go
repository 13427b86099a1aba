package lab

import (
	"time"

	"gorm.io/datatypes"
)

// Lab difficulty levels
const (
	DifficultyBeginner     = "BEGINNER"
	DifficultyIntermediate = "INTERMEDIATE"
	DifficultyAdvanced     = "ADVANCED"
)

// Lab publication status
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
)

// Lab is the aggregate root of a networking lab: it owns one Environment
// (with the device topology), one Guide, resources and settings. The whole
// aggregate is created, replaced and deleted as a unit, so no child model
// carries soft-delete columns.
type Lab struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time                   `json:"createdAt"`
	UpdatedAt     time.Time                   `json:"updatedAt"`
	Title         string                      `json:"title" gorm:"not null"`
	Description   string                      `json:"description"`
	Category      string                      `json:"category"`
	Difficulty    string                      `json:"difficulty" gorm:"default:'BEGINNER'"`
	EstimatedTime int                         `json:"estimatedTime"` // minutes
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	Objectives    datatypes.JSONSlice[string] `json:"objectives"`
	Prerequisites datatypes.JSONSlice[string] `json:"prerequisites"`
	Status        string                      `json:"status" gorm:"default:'DRAFT'"`
	CreatedBy     uint                        `json:"createdBy" gorm:"index"`

	Environment Environment  `json:"environment" gorm:"foreignKey:LabID"`
	Guide       Guide        `json:"guide" gorm:"foreignKey:LabID"`
	Resources   []Resource   `json:"resources" gorm:"foreignKey:LabID"`
	Settings    *LabSettings `json:"settings,omitempty" gorm:"foreignKey:LabID"`
}

// Resource types
const (
	ResourceDocument = "DOCUMENT"
	ResourceVideo    = "VIDEO"
	ResourceLink     = "LINK"
	ResourceDownload = "DOWNLOAD"
	ResourceTool     = "TOOL"
)

// Resource is supplementary material attached to a lab
type Resource struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	LabID       uint   `json:"-" gorm:"index;not null"`
	Title       string `json:"title"`
	Type        string `json:"type"` // DOCUMENT, VIDEO, LINK, DOWNLOAD, TOOL
	URL         string `json:"url"`
	Description string `json:"description"`
	Required    bool   `json:"required" gorm:"default:false"`
}

// LabSettings is the one-to-one policy row for a lab. A nil
// MaxAttemptSubmission means unlimited attempts.
type LabSettings struct {
	ID                     uint   `json:"id" gorm:"primaryKey"`
	LabID                  uint   `json:"-" gorm:"uniqueIndex;not null"`
	MaxAttemptSubmission   *int   `json:"maxAttemptSubmission"`
	Visible                bool   `json:"visible" gorm:"default:true"`
	DisableInteractiveLab  bool   `json:"disableInteractiveLab" gorm:"default:false"`
	NoLateSubmission       bool   `json:"noLateSubmission" gorm:"default:false"`
	OnForceExitUponTimeout string `json:"onForceExitUponTimeout"`
}
