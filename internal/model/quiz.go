package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Quiz struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	ChapterID    uint           `json:"chapter_id" gorm:"not null;index"`
	Chapter      Chapter        `json:"chapter,omitempty" gorm:"foreignKey:ChapterID"`
	DateOfQuiz   datatypes.Date `json:"date_of_quiz" gorm:"not null"`
	TimeDuration string         `json:"time_duration" gorm:"size:5;not null"` // HH:MM
	Remarks      string         `json:"remarks" gorm:"type:text"`
	Questions    []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// DateLayout is the wire and form format of DateOfQuiz.
const DateLayout = "2006-01-02"

func (q Quiz) DateString() string {
	return time.Time(q.DateOfQuiz).Format(DateLayout)
}
