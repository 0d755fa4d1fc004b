package service

import (
	"errors"
	"testing"
	"time"

	"github.com/lshigami/quizhub/internal/model"
	"github.com/lshigami/quizhub/internal/testutil"
)

func TestScoreAnswers(t *testing.T) {
	questions := []model.Question{
		{ID: 1, CorrectOption: 1},
		{ID: 2, CorrectOption: 2},
		{ID: 3, CorrectOption: 3},
	}
	tests := []struct {
		name    string
		answers map[uint]int
		want    int
	}{
		{"all correct", map[uint]int{1: 1, 2: 2, 3: 3}, 3},
		{"one wrong", map[uint]int{1: 1, 2: 2, 3: 4}, 2},
		{"none answered", map[uint]int{}, 0},
		{"unanswered counts as wrong", map[uint]int{1: 1}, 1},
		{"unknown question ignored", map[uint]int{1: 1, 99: 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreAnswers(questions, tt.answers); got != tt.want {
				t.Errorf("ScoreAnswers() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQuizServiceSubmit(t *testing.T) {
	db, r := setup(t)
	user := testutil.CreateUser(t, db, "learner@example.com", false)
	subject := testutil.CreateSubject(t, db, "Math")
	chapter := testutil.CreateChapter(t, db, subject.ID, "Algebra")
	quiz := testutil.CreateQuiz(t, db, chapter.ID, "weekly")
	qs := testutil.CreateQuestions(t, db, quiz.ID, 1, 2, 3)

	fixed := time.Date(2024, 3, 15, 9, 30, 5, 0, time.UTC)
	svc := NewQuizServiceWithClock(r.quizzes, r.scores, func() time.Time { return fixed })
	principal := Principal{UserID: user.ID}

	answers := map[uint]int{qs[0].ID: 1, qs[1].ID: 2, qs[2].ID: 4}
	score, err := svc.Submit(principal, quiz.ID, answers)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if score.TotalScored != 2 {
		t.Errorf("TotalScored = %d, want 2", score.TotalScored)
	}
	if score.TimeStampOfAttempt != "2024-03-15 09:30:05" {
		t.Errorf("TimeStampOfAttempt = %q", score.TimeStampOfAttempt)
	}
	if score.UserID != user.ID || score.QuizID != quiz.ID {
		t.Errorf("score owner = (%d, %d), want (%d, %d)", score.UserID, score.QuizID, user.ID, quiz.ID)
	}

	// Resubmission records a separate attempt.
	if _, err := svc.Submit(principal, quiz.ID, answers); err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if n := testutil.Count(t, db, &model.Score{}); n != 2 {
		t.Errorf("score rows = %d, want 2", n)
	}
}

func TestQuizServiceSubmitEmptyQuiz(t *testing.T) {
	db, r := setup(t)
	user := testutil.CreateUser(t, db, "learner@example.com", false)
	subject := testutil.CreateSubject(t, db, "Math")
	chapter := testutil.CreateChapter(t, db, subject.ID, "Algebra")
	quiz := testutil.CreateQuiz(t, db, chapter.ID, "empty")

	svc := NewQuizService(r.quizzes, r.scores)
	score, err := svc.Submit(Principal{UserID: user.ID}, quiz.ID, nil)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if score.TotalScored != 0 {
		t.Errorf("TotalScored = %d, want 0", score.TotalScored)
	}
	if n := testutil.Count(t, db, &model.Score{}); n != 1 {
		t.Errorf("score rows = %d, want 1", n)
	}
}

func TestQuizServiceSubmitUnknownQuiz(t *testing.T) {
	db, r := setup(t)
	svc := NewQuizService(r.quizzes, r.scores)

	_, err := svc.Submit(Principal{UserID: 1}, 404, map[uint]int{1: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if n := testutil.Count(t, db, &model.Score{}); n != 0 {
		t.Errorf("score rows = %d, want 0", n)
	}
}

func TestQuizServiceGetResultOwnership(t *testing.T) {
	db, r := setup(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", false)
	other := testutil.CreateUser(t, db, "other@example.com", false)
	subject := testutil.CreateSubject(t, db, "Physics")
	chapter := testutil.CreateChapter(t, db, subject.ID, "Optics")
	quiz := testutil.CreateQuiz(t, db, chapter.ID, "lenses")
	testutil.CreateQuestions(t, db, quiz.ID, 2)
	score := testutil.CreateScore(t, db, quiz.ID, owner.ID, 1)

	svc := NewQuizService(r.quizzes, r.scores)

	got, err := svc.GetResult(Principal{UserID: owner.ID}, score.ID)
	if err != nil {
		t.Fatalf("GetResult(owner): %v", err)
	}
	if got.Quiz.Chapter.Subject.Name != "Physics" {
		t.Errorf("subject = %q, want Physics", got.Quiz.Chapter.Subject.Name)
	}
	if len(got.Quiz.Questions) != 1 {
		t.Errorf("questions = %d, want 1", len(got.Quiz.Questions))
	}

	if _, err := svc.GetResult(Principal{UserID: other.ID}, score.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("GetResult(other) err = %v, want ErrForbidden", err)
	}
	if _, err := svc.GetResult(Principal{UserID: owner.ID}, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetResult(missing) err = %v, want ErrNotFound", err)
	}
}

func TestQuizServiceScoreResponses(t *testing.T) {
	db, r := setup(t)
	alice := testutil.CreateUser(t, db, "alice@example.com", false)
	bob := testutil.CreateUser(t, db, "bob@example.com", false)
	subject := testutil.CreateSubject(t, db, "Math")
	chapter := testutil.CreateChapter(t, db, subject.ID, "Algebra")
	quiz := testutil.CreateQuiz(t, db, chapter.ID, "weekly")
	testutil.CreateScore(t, db, quiz.ID, alice.ID, 3)
	testutil.CreateScore(t, db, quiz.ID, bob.ID, 1)
	testutil.CreateScore(t, db, quiz.ID, alice.ID, 2)

	svc := NewQuizService(r.quizzes, r.scores)

	mine, err := svc.ScoreResponses(alice.ID)
	if err != nil {
		t.Fatalf("ScoreResponses: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("len = %d, want 2", len(mine))
	}
	if mine[0].TimeStamp != "2024-03-15T10:00:00" {
		t.Errorf("TimeStamp = %q, want ISO form", mine[0].TimeStamp)
	}

	all, err := svc.AllScoreResponses()
	if err != nil {
		t.Fatalf("AllScoreResponses: %v", err)
	}
	if len(all) != 3 || all[1].UserID != bob.ID {
		t.Errorf("AllScoreResponses = %+v", all)
	}
}
