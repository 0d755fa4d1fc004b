package repository

import (
	"github.com/lshigami/quizhub/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(quiz *model.Quiz) error
	FindByID(id uint) (*model.Quiz, error)
	FindByIDWithQuestions(id uint) (*model.Quiz, error)
	FindAll() ([]model.Quiz, error)
	FindAllWithDetails() ([]model.Quiz, error)
	Update(quiz *model.Quiz) error
	Search(query string) ([]model.Quiz, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	return r.db.Omit("Chapter").Create(quiz).Error
}

func (r *quizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.First(&quiz, id).Error
	return &quiz, err
}

func (r *quizRepository) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.
		Preload("Chapter.Subject").
		Preload("Questions", orderQuestions).
		First(&quiz, id).Error
	return &quiz, err
}

func (r *quizRepository) FindAll() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.Order("id ASC").Find(&quizzes).Error
	return quizzes, err
}

// FindAllWithDetails loads chapter, subject and questions for dashboards.
func (r *quizRepository) FindAllWithDetails() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.
		Preload("Chapter.Subject").
		Preload("Questions", orderQuestions).
		Order("id ASC").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) Update(quiz *model.Quiz) error {
	return r.db.Omit("Chapter", "Questions").Save(quiz).Error
}

func (r *quizRepository) Search(query string) ([]model.Quiz, error) {
	pattern := likePattern(query)
	var quizzes []model.Quiz
	err := r.db.
		Preload("Chapter.Subject").
		Preload("Questions", orderQuestions).
		Joins("JOIN chapters ON chapters.id = quizzes.chapter_id AND chapters.deleted_at IS NULL").
		Joins("JOIN subjects ON subjects.id = chapters.subject_id AND subjects.deleted_at IS NULL").
		Where("LOWER(subjects.name) LIKE ? OR LOWER(chapters.name) LIKE ? OR LOWER(quizzes.remarks) LIKE ?",
			pattern, pattern, pattern).
		Order("quizzes.id ASC").
		Find(&quizzes).Error
	return quizzes, err
}

func orderQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("questions.id ASC")
}
