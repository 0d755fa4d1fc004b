// Package testutil provides an in-memory store and fixtures for tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lshigami/quizhub/database"
	"github.com/lshigami/quizhub/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plaintext password of every fixture user.
const Password = "secret"

// NewDB opens a migrated in-memory sqlite database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, email string, isAdmin bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{
		Email:         email,
		Password:      string(hash),
		FullName:      "Test " + email,
		Qualification: "B.Sc",
		Dob:           "1999-05-01",
		IsAdmin:       isAdmin,
	}
	mustCreate(t, db, user)
	return user
}

func CreateSubject(t testing.TB, db *gorm.DB, name string) *model.Subject {
	t.Helper()
	subject := &model.Subject{Name: name, Description: name + " basics"}
	mustCreate(t, db, subject)
	return subject
}

func CreateChapter(t testing.TB, db *gorm.DB, subjectID uint, name string) *model.Chapter {
	t.Helper()
	chapter := &model.Chapter{Name: name, Description: name + " notes", SubjectID: subjectID}
	mustCreate(t, db, chapter)
	return chapter
}

func CreateQuiz(t testing.TB, db *gorm.DB, chapterID uint, remarks string) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		ChapterID:    chapterID,
		DateOfQuiz:   datatypes.Date(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
		TimeDuration: "00:30",
		Remarks:      remarks,
	}
	mustCreate(t, db, quiz)
	return quiz
}

// CreateQuestions adds one question per correct option given, in order.
func CreateQuestions(t testing.TB, db *gorm.DB, quizID uint, correct ...int) []model.Question {
	t.Helper()
	questions := make([]model.Question, 0, len(correct))
	for i, c := range correct {
		q := model.Question{
			QuizID:            quizID,
			QuestionStatement: fmt.Sprintf("Question %d", i+1),
			Option1:           "A",
			Option2:           "B",
			Option3:           "C",
			Option4:           "D",
			CorrectOption:     c,
		}
		mustCreate(t, db, &q)
		questions = append(questions, q)
	}
	return questions
}

func CreateScore(t testing.TB, db *gorm.DB, quizID, userID uint, total int) *model.Score {
	t.Helper()
	score := &model.Score{
		QuizID:             quizID,
		UserID:             userID,
		TimeStampOfAttempt: "2024-03-15 10:00:00",
		TotalScored:        total,
	}
	mustCreate(t, db, score)
	return score
}

// Count returns the number of live rows of the given model.
func Count(t testing.TB, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func mustCreate(t testing.TB, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Omit("Subject", "Chapter", "Quiz", "User").Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}
