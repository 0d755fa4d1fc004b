package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Email         string         `json:"email" gorm:"size:120;not null;uniqueIndex"`
	Password      string         `json:"-" gorm:"not null"` // bcrypt hash
	FullName      string         `json:"full_name" gorm:"size:120;not null"`
	Qualification string         `json:"qualification" gorm:"size:120;not null"`
	Dob           string         `json:"dob" gorm:"size:10;not null"` // YYYY-MM-DD
	IsAdmin       bool           `json:"is_admin" gorm:"default:false"`
	Scores        []Score        `json:"scores,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
