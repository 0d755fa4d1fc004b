package repository

import (
	"github.com/lshigami/quizhub/internal/model"
	"gorm.io/gorm"
)

// SubjectAttempt is one Score row resolved to the subject of its quiz,
// together with the number of questions that quiz currently has.
type SubjectAttempt struct {
	ScoreID       uint
	SubjectID     uint
	UserID        uint
	TotalScored   int
	QuestionCount int
}

type ScoreRepository interface {
	Create(score *model.Score) error
	FindByID(id uint) (*model.Score, error)
	FindByIDWithQuiz(id uint) (*model.Score, error)
	FindAll() ([]model.Score, error)
	FindAllByUser(userID uint) ([]model.Score, error)
	FindSubjectAttempts(userID *uint) ([]SubjectAttempt, error)
}

type scoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Create(score *model.Score) error {
	return r.db.Omit("Quiz", "User").Create(score).Error
}

func (r *scoreRepository) FindByID(id uint) (*model.Score, error) {
	var score model.Score
	err := r.db.First(&score, id).Error
	return &score, err
}

func (r *scoreRepository) FindByIDWithQuiz(id uint) (*model.Score, error) {
	var score model.Score
	err := r.db.
		Preload("Quiz.Chapter.Subject").
		Preload("Quiz.Questions").
		First(&score, id).Error
	return &score, err
}

func (r *scoreRepository) FindAll() ([]model.Score, error) {
	var scores []model.Score
	err := r.db.Order("id ASC").Find(&scores).Error
	return scores, err
}

func (r *scoreRepository) FindAllByUser(userID uint) ([]model.Score, error) {
	var scores []model.Score
	err := r.db.
		Preload("Quiz.Chapter.Subject").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&scores).Error
	return scores, err
}

// FindSubjectAttempts resolves every score to its subject in one query. A nil
// userID selects the scores of all users.
func (r *scoreRepository) FindSubjectAttempts(userID *uint) ([]SubjectAttempt, error) {
	var rows []SubjectAttempt
	query := r.db.Table("scores").
		Select("scores.id AS score_id, chapters.subject_id AS subject_id, scores.user_id AS user_id, " +
			"scores.total_scored AS total_scored, " +
			"(SELECT COUNT(*) FROM questions WHERE questions.quiz_id = scores.quiz_id AND questions.deleted_at IS NULL) AS question_count").
		Joins("JOIN quizzes ON quizzes.id = scores.quiz_id AND quizzes.deleted_at IS NULL").
		Joins("JOIN chapters ON chapters.id = quizzes.chapter_id AND chapters.deleted_at IS NULL").
		Where("scores.deleted_at IS NULL")
	if userID != nil {
		query = query.Where("scores.user_id = ?", *userID)
	}
	err := query.Order("scores.id ASC").Scan(&rows).Error
	return rows, err
}
