package service

import (
	"fmt"
	"strings"

	"github.com/lshigami/quizhub/internal/model"
	"github.com/lshigami/quizhub/internal/repository"
)

// Search scopes accepted by the admin search page.
const (
	SearchAll      = "all"
	SearchUsers    = "users"
	SearchSubjects = "subjects"
	SearchQuizzes  = "quizzes"
	SearchChapters = "chapters"
)

// DashboardLists is everything the admin dashboard lists.
type DashboardLists struct {
	Users    []model.User
	Subjects []model.Subject
	Chapters []model.Chapter
	Quizzes  []model.Quiz
}

type SearchService interface {
	// Search returns all lists, filtering the ones selected by scope with a
	// case-insensitive substring match. An empty query filters nothing.
	Search(query, scope string) (*DashboardLists, error)
}

type searchService struct {
	userRepo    repository.UserRepository
	subjectRepo repository.SubjectRepository
	chapterRepo repository.ChapterRepository
	quizRepo    repository.QuizRepository
}

func NewSearchService(
	userRepo repository.UserRepository,
	subjectRepo repository.SubjectRepository,
	chapterRepo repository.ChapterRepository,
	quizRepo repository.QuizRepository,
) SearchService {
	return &searchService{
		userRepo:    userRepo,
		subjectRepo: subjectRepo,
		chapterRepo: chapterRepo,
		quizRepo:    quizRepo,
	}
}

func (s *searchService) Search(query, scope string) (*DashboardLists, error) {
	query = strings.TrimSpace(query)
	if scope == "" {
		scope = SearchAll
	}
	filter := func(target string) bool {
		return query != "" && (scope == SearchAll || scope == target)
	}

	var lists DashboardLists
	var err error

	if filter(SearchUsers) {
		lists.Users, err = s.userRepo.Search(query)
	} else {
		lists.Users, err = s.userRepo.FindAll()
	}
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}

	if filter(SearchSubjects) {
		lists.Subjects, err = s.subjectRepo.Search(query)
	} else {
		lists.Subjects, err = s.subjectRepo.FindAll()
	}
	if err != nil {
		return nil, fmt.Errorf("loading subjects: %w", err)
	}

	if filter(SearchChapters) {
		lists.Chapters, err = s.chapterRepo.Search(query)
	} else {
		lists.Chapters, err = s.chapterRepo.FindAll()
	}
	if err != nil {
		return nil, fmt.Errorf("loading chapters: %w", err)
	}

	if filter(SearchQuizzes) {
		lists.Quizzes, err = s.quizRepo.Search(query)
	} else {
		lists.Quizzes, err = s.quizRepo.FindAllWithDetails()
	}
	if err != nil {
		return nil, fmt.Errorf("loading quizzes: %w", err)
	}
	return &lists, nil
}
