package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage string     `json:"profileImage" gorm:"default:''"`
	Name         string     `json:"name" gorm:"default:''"`
	Email        string     `json:"email" gorm:"unique;not null"`
	Role         string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR, ADMIN
	Password     string     `json:"-" gorm:"not null"`
	LastLogin    *time.Time `json:"lastLogin"`
	IsDeleted    bool       `json:"-" gorm:"default:false"`
}
