package service

import (
	"fmt"
	"time"

	"github.com/lshigami/quizhub/internal/dto"
	"github.com/lshigami/quizhub/internal/model"
	"github.com/lshigami/quizhub/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuizService presents quizzes to users, scores submissions and serves the
// resulting Score rows.
type QuizService interface {
	GetQuiz(quizID uint) (*model.Quiz, error)
	Submit(principal Principal, quizID uint, answers map[uint]int) (*model.Score, error)
	GetResult(principal Principal, scoreID uint) (*model.Score, error)
	UserScores(userID uint) ([]model.Score, error)
	ScoreResponses(userID uint) ([]dto.ScoreResponse, error)
	AllScoreResponses() ([]dto.AdminScoreResponse, error)
}

type quizService struct {
	quizRepo  repository.QuizRepository
	scoreRepo repository.ScoreRepository
	now       func() time.Time
}

func NewQuizService(quizRepo repository.QuizRepository, scoreRepo repository.ScoreRepository) QuizService {
	return NewQuizServiceWithClock(quizRepo, scoreRepo, time.Now)
}

func NewQuizServiceWithClock(quizRepo repository.QuizRepository, scoreRepo repository.ScoreRepository, now func() time.Time) QuizService {
	return &quizService{quizRepo: quizRepo, scoreRepo: scoreRepo, now: now}
}

func (s *quizService) GetQuiz(quizID uint) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		return nil, notFound(err, "quiz %d", quizID)
	}
	return quiz, nil
}

// ScoreAnswers counts the questions whose selected option equals the correct
// one. Questions missing from answers count as option 0, which never matches.
func ScoreAnswers(questions []model.Question, answers map[uint]int) int {
	total := 0
	for _, q := range questions {
		if answers[q.ID] == q.CorrectOption {
			total++
		}
	}
	return total
}

// Submit scores a full attempt and records it as a new Score row. The row is
// written only after every question has been scored.
func (s *quizService) Submit(principal Principal, quizID uint, answers map[uint]int) (*model.Score, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		return nil, notFound(err, "quiz %d", quizID)
	}
	submittedAt := s.now()

	score := model.Score{
		QuizID:             quiz.ID,
		UserID:             principal.UserID,
		TimeStampOfAttempt: submittedAt.Format(model.TimestampLayout),
		TotalScored:        ScoreAnswers(quiz.Questions, answers),
	}
	if err := s.scoreRepo.Create(&score); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Uint("userID", principal.UserID).Msg("Failed to record score")
		return nil, fmt.Errorf("recording score: %w", err)
	}
	log.Info().
		Uint("scoreID", score.ID).
		Uint("quizID", quizID).
		Uint("userID", principal.UserID).
		Int("total", score.TotalScored).
		Int("questions", len(quiz.Questions)).
		Msg("Quiz attempt scored")
	return &score, nil
}

// GetResult returns the score with its quiz. ErrForbidden is returned when
// the score belongs to someone else.
func (s *quizService) GetResult(principal Principal, scoreID uint) (*model.Score, error) {
	score, err := s.scoreRepo.FindByIDWithQuiz(scoreID)
	if err != nil {
		return nil, notFound(err, "score %d", scoreID)
	}
	if score.UserID != principal.UserID {
		return nil, ErrForbidden
	}
	return score, nil
}

func (s *quizService) UserScores(userID uint) ([]model.Score, error) {
	scores, err := s.scoreRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("listing scores of user %d: %w", userID, err)
	}
	return scores, nil
}

func (s *quizService) ScoreResponses(userID uint) ([]dto.ScoreResponse, error) {
	scores, err := s.scoreRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("listing scores of user %d: %w", userID, err)
	}
	resp := make([]dto.ScoreResponse, 0, len(scores))
	for _, sc := range scores {
		resp = append(resp, dto.ScoreResponse{
			ID:          sc.ID,
			QuizID:      sc.QuizID,
			TotalScored: sc.TotalScored,
			TimeStamp:   isoTimestamp(sc),
		})
	}
	return resp, nil
}

func (s *quizService) AllScoreResponses() ([]dto.AdminScoreResponse, error) {
	scores, err := s.scoreRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("listing scores: %w", err)
	}
	resp := make([]dto.AdminScoreResponse, 0, len(scores))
	for _, sc := range scores {
		resp = append(resp, dto.AdminScoreResponse{
			ID:          sc.ID,
			UserID:      sc.UserID,
			QuizID:      sc.QuizID,
			TotalScored: sc.TotalScored,
			TimeStamp:   isoTimestamp(sc),
		})
	}
	return resp, nil
}

const isoLayout = "2006-01-02T15:04:05"

func isoTimestamp(sc model.Score) string {
	t := sc.AttemptedAt()
	if t.IsZero() {
		return sc.TimeStampOfAttempt
	}
	return t.Format(isoLayout)
}
