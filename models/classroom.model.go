package models

import (
	labModels "netlab/models/lab"

	"gorm.io/gorm"
)

// Classroom groups students and the projects assigned to them
type Classroom struct {
	gorm.Model
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedBy   uint      `json:"createdBy" gorm:"index"`
	Projects    []Project `json:"projects,omitempty" gorm:"foreignKey:ClassroomID"`
	IsDeleted   bool      `json:"-" gorm:"default:false"`
}

// Project is an assignment unit inside a classroom; labs are attached
// through the project_labs join table (a lab may be reused across projects)
type Project struct {
	gorm.Model
	ClassroomID uint             `json:"classroomId" gorm:"index;not null"`
	Title       string           `json:"title" gorm:"not null"`
	Description string           `json:"description"`
	Labs        []*labModels.Lab `json:"labs,omitempty" gorm:"many2many:project_labs"`
	IsDeleted   bool             `json:"-" gorm:"default:false"`
}
