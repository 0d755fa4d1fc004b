package service

import (
	"testing"

	"github.com/lshigami/quizhub/internal/repository"
	"github.com/lshigami/quizhub/internal/testutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type repos struct {
	users     repository.UserRepository
	subjects  repository.SubjectRepository
	chapters  repository.ChapterRepository
	quizzes   repository.QuizRepository
	questions repository.QuestionRepository
	scores    repository.ScoreRepository
}

func newRepos(db *gorm.DB) repos {
	return repos{
		users:     repository.NewUserRepository(db),
		subjects:  repository.NewSubjectRepository(db),
		chapters:  repository.NewChapterRepository(db),
		quizzes:   repository.NewQuizRepository(db),
		questions: repository.NewQuestionRepository(db),
		scores:    repository.NewScoreRepository(db),
	}
}

func setup(t *testing.T) (*gorm.DB, repos) {
	t.Helper()
	db := testutil.NewDB(t)
	return db, newRepos(db)
}

func newTestAuthService(r repos) AuthService {
	return NewAuthServiceWithCost(r.users, bcrypt.MinCost)
}
