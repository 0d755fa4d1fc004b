package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	QuizID            uint           `json:"quiz_id" gorm:"not null;index"`
	QuestionStatement string         `json:"question_statement" gorm:"type:text;not null"`
	Option1           string         `json:"option1" gorm:"not null"`
	Option2           string         `json:"option2" gorm:"not null"`
	Option3           string         `json:"option3" gorm:"not null"`
	Option4           string         `json:"option4" gorm:"not null"`
	CorrectOption     int            `json:"correct_option" gorm:"not null"` // 1..4
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// Options returns the four answer choices in display order.
func (q Question) Options() []string {
	return []string{q.Option1, q.Option2, q.Option3, q.Option4}
}
