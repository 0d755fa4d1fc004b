package service

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/quizhub/internal/dto"
	"github.com/lshigami/quizhub/internal/model"
	"github.com/lshigami/quizhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CatalogService manages the curriculum tree: subjects, chapters, quizzes and
// questions. Deleting a node removes everything beneath it, including the
// scores recorded against removed quizzes.
type CatalogService interface {
	ListSubjects() ([]model.Subject, error)
	CreateSubject(form dto.SubjectForm) (*model.Subject, error)
	UpdateSubject(id uint, form dto.SubjectForm) (*model.Subject, error)
	DeleteSubject(id uint) error

	ListChapters() ([]model.Chapter, error)
	CreateChapter(form dto.ChapterCreateForm) (*model.Chapter, error)
	UpdateChapter(id uint, form dto.ChapterForm) (*model.Chapter, error)
	DeleteChapter(id uint) error

	ListQuizzes() ([]model.Quiz, error)
	CreateQuiz(form dto.QuizCreateForm) (*model.Quiz, error)
	UpdateQuiz(id uint, form dto.QuizForm) (*model.Quiz, error)
	DeleteQuiz(id uint) error

	CreateQuestion(form dto.QuestionCreateForm) (*model.Question, error)
	UpdateQuestion(id uint, form dto.QuestionForm) (*model.Question, error)
	DeleteQuestion(id uint) error

	SubjectResponses() ([]dto.SubjectResponse, error)
	ChapterResponses(subjectID uint) ([]dto.ChapterResponse, error)
	QuizResponses() ([]dto.QuizResponse, error)
	QuizDetail(id uint) (*dto.QuizDetailResponse, error)
}

type catalogService struct {
	subjectRepo  repository.SubjectRepository
	chapterRepo  repository.ChapterRepository
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	db           *gorm.DB // For cascading deletes
}

func NewCatalogService(
	subjectRepo repository.SubjectRepository,
	chapterRepo repository.ChapterRepository,
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	db *gorm.DB,
) CatalogService {
	return &catalogService{
		subjectRepo:  subjectRepo,
		chapterRepo:  chapterRepo,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		db:           db,
	}
}

// --- Subjects ---

func (s *catalogService) ListSubjects() ([]model.Subject, error) {
	return s.subjectRepo.FindAll()
}

func (s *catalogService) CreateSubject(form dto.SubjectForm) (*model.Subject, error) {
	subject := model.Subject{Name: form.Name, Description: form.Description}
	if err := s.subjectRepo.Create(&subject); err != nil {
		return nil, fmt.Errorf("creating subject: %w", err)
	}
	return &subject, nil
}

func (s *catalogService) UpdateSubject(id uint, form dto.SubjectForm) (*model.Subject, error) {
	subject, err := s.subjectRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "subject %d", id)
	}
	subject.Name = form.Name
	subject.Description = form.Description
	if err := s.subjectRepo.Update(subject); err != nil {
		return nil, fmt.Errorf("updating subject %d: %w", id, err)
	}
	return subject, nil
}

func (s *catalogService) DeleteSubject(id uint) error {
	if _, err := s.subjectRepo.FindByID(id); err != nil {
		return notFound(err, "subject %d", id)
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var chapterIDs []uint
		if err := tx.Model(&model.Chapter{}).Where("subject_id = ?", id).Pluck("id", &chapterIDs).Error; err != nil {
			return err
		}
		if err := deleteChapters(tx, chapterIDs); err != nil {
			return err
		}
		return tx.Delete(&model.Subject{}, id).Error
	})
	if err != nil {
		log.Error().Err(err).Uint("subjectID", id).Msg("Failed to delete subject")
		return fmt.Errorf("deleting subject %d: %w", id, err)
	}
	return nil
}

// --- Chapters ---

func (s *catalogService) ListChapters() ([]model.Chapter, error) {
	return s.chapterRepo.FindAll()
}

func (s *catalogService) CreateChapter(form dto.ChapterCreateForm) (*model.Chapter, error) {
	if _, err := s.subjectRepo.FindByID(form.SubjectID); err != nil {
		return nil, notFound(err, "subject %d", form.SubjectID)
	}
	chapter := model.Chapter{
		Name:        form.Name,
		Description: form.Description,
		SubjectID:   form.SubjectID,
	}
	if err := s.chapterRepo.Create(&chapter); err != nil {
		return nil, fmt.Errorf("creating chapter: %w", err)
	}
	return &chapter, nil
}

func (s *catalogService) UpdateChapter(id uint, form dto.ChapterForm) (*model.Chapter, error) {
	chapter, err := s.chapterRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "chapter %d", id)
	}
	chapter.Name = form.Name
	chapter.Description = form.Description
	if err := s.chapterRepo.Update(chapter); err != nil {
		return nil, fmt.Errorf("updating chapter %d: %w", id, err)
	}
	return chapter, nil
}

func (s *catalogService) DeleteChapter(id uint) error {
	if _, err := s.chapterRepo.FindByID(id); err != nil {
		return notFound(err, "chapter %d", id)
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return deleteChapters(tx, []uint{id})
	})
	if err != nil {
		log.Error().Err(err).Uint("chapterID", id).Msg("Failed to delete chapter")
		return fmt.Errorf("deleting chapter %d: %w", id, err)
	}
	return nil
}

// --- Quizzes ---

func (s *catalogService) ListQuizzes() ([]model.Quiz, error) {
	return s.quizRepo.FindAllWithDetails()
}

func (s *catalogService) CreateQuiz(form dto.QuizCreateForm) (*model.Quiz, error) {
	if _, err := s.chapterRepo.FindByID(form.ChapterID); err != nil {
		return nil, notFound(err, "chapter %d", form.ChapterID)
	}
	date, err := time.Parse(model.DateLayout, form.DateOfQuiz)
	if err != nil {
		return nil, fmt.Errorf("parsing date_of_quiz: %w", err)
	}
	quiz := model.Quiz{
		ChapterID:    form.ChapterID,
		DateOfQuiz:   datatypes.Date(date),
		TimeDuration: form.TimeDuration,
		Remarks:      form.Remarks,
	}
	if err := s.quizRepo.Create(&quiz); err != nil {
		return nil, fmt.Errorf("creating quiz: %w", err)
	}
	return &quiz, nil
}

func (s *catalogService) UpdateQuiz(id uint, form dto.QuizForm) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "quiz %d", id)
	}
	date, err := time.Parse(model.DateLayout, form.DateOfQuiz)
	if err != nil {
		return nil, fmt.Errorf("parsing date_of_quiz: %w", err)
	}
	quiz.DateOfQuiz = datatypes.Date(date)
	quiz.TimeDuration = form.TimeDuration
	quiz.Remarks = form.Remarks
	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, fmt.Errorf("updating quiz %d: %w", id, err)
	}
	return quiz, nil
}

func (s *catalogService) DeleteQuiz(id uint) error {
	if _, err := s.quizRepo.FindByID(id); err != nil {
		return notFound(err, "quiz %d", id)
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return deleteQuizzes(tx, []uint{id})
	})
	if err != nil {
		log.Error().Err(err).Uint("quizID", id).Msg("Failed to delete quiz")
		return fmt.Errorf("deleting quiz %d: %w", id, err)
	}
	return nil
}

// --- Questions ---

func (s *catalogService) CreateQuestion(form dto.QuestionCreateForm) (*model.Question, error) {
	if _, err := s.quizRepo.FindByID(form.QuizID); err != nil {
		return nil, notFound(err, "quiz %d", form.QuizID)
	}
	var question model.Question
	if err := copier.Copy(&question, &form.QuestionForm); err != nil {
		return nil, fmt.Errorf("mapping question form: %w", err)
	}
	question.QuizID = form.QuizID
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("quizID", form.QuizID).Msg("Failed to add question to quiz")
		return nil, fmt.Errorf("creating question: %w", err)
	}
	return &question, nil
}

func (s *catalogService) UpdateQuestion(id uint, form dto.QuestionForm) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "question %d", id)
	}
	if err := copier.Copy(question, &form); err != nil {
		return nil, fmt.Errorf("mapping question form: %w", err)
	}
	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("updating question %d: %w", id, err)
	}
	return question, nil
}

func (s *catalogService) DeleteQuestion(id uint) error {
	if _, err := s.questionRepo.FindByID(id); err != nil {
		return notFound(err, "question %d", id)
	}
	if err := s.db.Delete(&model.Question{}, id).Error; err != nil {
		return fmt.Errorf("deleting question %d: %w", id, err)
	}
	return nil
}

// --- API views ---

func (s *catalogService) SubjectResponses() ([]dto.SubjectResponse, error) {
	subjects, err := s.subjectRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	resp := make([]dto.SubjectResponse, 0, len(subjects))
	if err := copier.Copy(&resp, &subjects); err != nil {
		return nil, fmt.Errorf("mapping subjects: %w", err)
	}
	return resp, nil
}

func (s *catalogService) ChapterResponses(subjectID uint) ([]dto.ChapterResponse, error) {
	chapters, err := s.chapterRepo.FindBySubjectID(subjectID)
	if err != nil {
		return nil, fmt.Errorf("listing chapters of subject %d: %w", subjectID, err)
	}
	resp := make([]dto.ChapterResponse, 0, len(chapters))
	if err := copier.Copy(&resp, &chapters); err != nil {
		return nil, fmt.Errorf("mapping chapters: %w", err)
	}
	return resp, nil
}

func (s *catalogService) QuizResponses() ([]dto.QuizResponse, error) {
	quizzes, err := s.quizRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("listing quizzes: %w", err)
	}
	resp := make([]dto.QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		resp = append(resp, toQuizResponse(q))
	}
	return resp, nil
}

func (s *catalogService) QuizDetail(id uint) (*dto.QuizDetailResponse, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(id)
	if err != nil {
		return nil, notFound(err, "quiz %d", id)
	}
	resp := dto.QuizDetailResponse{
		QuizResponse: toQuizResponse(*quiz),
		Questions:    make([]dto.QuestionResponse, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		resp.Questions = append(resp.Questions, dto.QuestionResponse{
			ID:                q.ID,
			QuestionStatement: q.QuestionStatement,
			Options:           q.Options(),
		})
	}
	return &resp, nil
}

func toQuizResponse(q model.Quiz) dto.QuizResponse {
	return dto.QuizResponse{
		ID:           q.ID,
		ChapterID:    q.ChapterID,
		DateOfQuiz:   q.DateString(),
		TimeDuration: q.TimeDuration,
		Remarks:      q.Remarks,
	}
}

// deleteChapters removes the given chapters and their quizzes within tx.
func deleteChapters(tx *gorm.DB, chapterIDs []uint) error {
	if len(chapterIDs) == 0 {
		return nil
	}
	var quizIDs []uint
	if err := tx.Model(&model.Quiz{}).Where("chapter_id IN ?", chapterIDs).Pluck("id", &quizIDs).Error; err != nil {
		return err
	}
	if err := deleteQuizzes(tx, quizIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", chapterIDs).Delete(&model.Chapter{}).Error
}

// deleteQuizzes removes the given quizzes with their questions and scores.
func deleteQuizzes(tx *gorm.DB, quizIDs []uint) error {
	if len(quizIDs) == 0 {
		return nil
	}
	if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.Question{}).Error; err != nil {
		return err
	}
	if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.Score{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", quizIDs).Delete(&model.Quiz{}).Error
}
