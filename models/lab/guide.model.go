package lab

import "gorm.io/datatypes"

// Guide is the ordered instructional walkthrough of a lab
type Guide struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	LabID          uint      `json:"-" gorm:"uniqueIndex;not null"`
	CurrentSection int       `json:"currentSection" gorm:"default:0"`
	Sections       []Section `json:"sections" gorm:"foreignKey:GuideID"`
}

// Section groups content blocks, tasks and verification steps. OrderIndex
// defines presentation order and is unique within a guide.
type Section struct {
	ID            uint                        `json:"-" gorm:"primaryKey"`
	GuideID       uint                        `json:"-" gorm:"index;not null;uniqueIndex:uidx_guide_order"`
	SectionKey    string                      `json:"id"`
	Title         string                      `json:"title"`
	Type          string                      `json:"type"`
	OrderIndex    int                         `json:"order" gorm:"not null;uniqueIndex:uidx_guide_order"`
	EstimatedTime int                         `json:"estimatedTime"`
	Hints         datatypes.JSONSlice[string] `json:"hints"`
	Content       []ContentBlock              `json:"content" gorm:"foreignKey:SectionID"`
	Tasks         []Task                      `json:"tasks" gorm:"foreignKey:SectionID"`
	Verifications []Verification              `json:"verifications" gorm:"foreignKey:SectionID"`
}

// Content block types
const (
	ContentText    = "TEXT"
	ContentCode    = "CODE"
	ContentImage   = "IMAGE"
	ContentVideo   = "VIDEO"
	ContentCallout = "CALLOUT"
)

// ContentMetadata carries the type-dependent optional fields of a content
// block (language for CODE, device/command/expected output for terminal
// captures, callout type for CALLOUT)
type ContentMetadata struct {
	Language       *string `json:"language,omitempty"`
	Device         *string `json:"device,omitempty"`
	Command        *string `json:"command,omitempty"`
	ExpectedOutput *string `json:"expectedOutput,omitempty"`
	CalloutType    *string `json:"calloutType,omitempty"`
}

// ContentBlock is one unit of section content
type ContentBlock struct {
	ID        uint            `json:"-" gorm:"primaryKey"`
	SectionID uint            `json:"-" gorm:"index;not null"`
	BlockKey  string          `json:"id"`
	Type      string          `json:"type"` // TEXT, CODE, IMAGE, VIDEO, CALLOUT
	Content   string          `json:"content"`
	Metadata  ContentMetadata `json:"metadata" gorm:"embedded;embeddedPrefix:meta_"`
}

// Task is an actionable step the student performs on a target device
type Task struct {
	ID             uint                        `json:"-" gorm:"primaryKey"`
	SectionID      uint                        `json:"-" gorm:"index;not null"`
	TaskKey        string                      `json:"id"`
	Description    string                      `json:"description"`
	TargetDevice   string                      `json:"device"`
	Commands       datatypes.JSONSlice[string] `json:"commands"`
	ExpectedResult string                      `json:"expectedResult"`
	Completed      bool                        `json:"completed" gorm:"default:false"`
	Hints          datatypes.JSONSlice[string] `json:"hints"`
}

// Verification is a check the student runs to prove a task worked
type Verification struct {
	ID                 uint                        `json:"-" gorm:"primaryKey"`
	SectionID          uint                        `json:"-" gorm:"index;not null"`
	VerificationKey    string                      `json:"id"`
	Description        string                      `json:"description"`
	Commands           datatypes.JSONSlice[string] `json:"commands"`
	ExpectedOutput     string                      `json:"expectedOutput"`
	RequiresScreenshot bool                        `json:"requiresScreenshot" gorm:"default:false"`
	TargetDevice       string                      `json:"device"`
	Completed          bool                        `json:"completed" gorm:"default:false"`
}
