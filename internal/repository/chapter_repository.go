package repository

import (
	"github.com/lshigami/quizhub/internal/model"
	"gorm.io/gorm"
)

type ChapterRepository interface {
	Create(chapter *model.Chapter) error
	FindByID(id uint) (*model.Chapter, error)
	FindAll() ([]model.Chapter, error)
	FindBySubjectID(subjectID uint) ([]model.Chapter, error)
	Update(chapter *model.Chapter) error
	Search(query string) ([]model.Chapter, error)
}

type chapterRepository struct {
	db *gorm.DB
}

func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) Create(chapter *model.Chapter) error {
	return r.db.Omit("Subject").Create(chapter).Error
}

func (r *chapterRepository) FindByID(id uint) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := r.db.Preload("Subject").First(&chapter, id).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *chapterRepository) FindAll() ([]model.Chapter, error) {
	var chapters []model.Chapter
	if err := r.db.Preload("Subject").Order("id ASC").Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *chapterRepository) FindBySubjectID(subjectID uint) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.db.Where("subject_id = ?", subjectID).Order("id ASC").Find(&chapters).Error
	return chapters, err
}

func (r *chapterRepository) Update(chapter *model.Chapter) error {
	return r.db.Omit("Subject").Save(chapter).Error
}

func (r *chapterRepository) Search(query string) ([]model.Chapter, error) {
	pattern := likePattern(query)
	var chapters []model.Chapter
	err := r.db.
		Preload("Subject").
		Joins("JOIN subjects ON subjects.id = chapters.subject_id AND subjects.deleted_at IS NULL").
		Where("LOWER(chapters.name) LIKE ? OR LOWER(chapters.description) LIKE ? OR LOWER(subjects.name) LIKE ?",
			pattern, pattern, pattern).
		Order("chapters.id ASC").
		Find(&chapters).Error
	return chapters, err
}
