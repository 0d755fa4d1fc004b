package model

import (
	"time"

	"gorm.io/gorm"
)

// TimestampLayout is the stored format of Score.TimeStampOfAttempt.
const TimestampLayout = "2006-01-02 15:04:05"

// Score is one attempt of one user at one quiz. Rows are inserted once and
// never updated.
type Score struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	QuizID             uint           `json:"quiz_id" gorm:"not null;index"`
	Quiz               Quiz           `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	UserID             uint           `json:"user_id" gorm:"not null;index"`
	User               User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TimeStampOfAttempt string         `json:"time_stamp_of_attempt" gorm:"size:19;not null"`
	TotalScored        int            `json:"total_scored" gorm:"not null"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// AttemptedAt parses the stored timestamp. The zero time is returned for
// malformed values.
func (s Score) AttemptedAt() time.Time {
	t, err := time.ParseInLocation(TimestampLayout, s.TimeStampOfAttempt, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
