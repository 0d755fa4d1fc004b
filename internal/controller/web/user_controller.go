package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhub/internal/middleware"
	"github.com/lshigami/quizhub/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	userDashboardPath = "/user/dashboard"
	answerFieldPrefix = "question_"
)

type UserController struct {
	catalogService service.CatalogService
	quizService    service.QuizService
	reportService  service.ReportService
}

func NewUserController(
	catalogService service.CatalogService,
	quizService service.QuizService,
	reportService service.ReportService,
) *UserController {
	return &UserController{
		catalogService: catalogService,
		quizService:    quizService,
		reportService:  reportService,
	}
}

func (c *UserController) Dashboard(ctx *gin.Context) {
	principal, _ := middleware.PrincipalFrom(ctx)
	data := gin.H{}

	quizzes, err := c.catalogService.ListQuizzes()
	if err != nil {
		log.Error().Err(err).Msg("User dashboard: failed to load quizzes")
	}
	scores, err := c.quizService.UserScores(principal.UserID)
	if err != nil {
		log.Error().Err(err).Uint("userID", principal.UserID).Msg("User dashboard: failed to load scores")
	}
	chart, performance, err := c.reportService.RenderUserChart(principal.UserID)
	if err != nil {
		log.Error().Err(err).Uint("userID", principal.UserID).Msg("User dashboard: failed to build performance chart")
		chart = ""
	}

	data["Quizzes"] = quizzes
	data["Scores"] = scores
	data["Performance"] = performance
	data["Chart"] = staticURL(chart)
	render(ctx, http.StatusOK, "user_dashboard.html", "Dashboard", data)
}

func (c *UserController) ShowQuiz(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}
	quiz, err := c.quizService.GetQuiz(quizID)
	if err != nil {
		fail(ctx, err, "Quiz")
		return
	}
	render(ctx, http.StatusOK, "quiz.html", "Quiz", gin.H{"Quiz": quiz})
}

func (c *UserController) SubmitQuiz(ctx *gin.Context) {
	principal, _ := middleware.PrincipalFrom(ctx)
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}
	if err := ctx.Request.ParseForm(); err != nil {
		badForm(ctx, err)
		return
	}

	score, err := c.quizService.Submit(principal, quizID, answersFromForm(ctx.Request.PostForm))
	if err != nil {
		fail(ctx, err, "Quiz")
		return
	}
	redirect(ctx, "/user/results/"+strconv.FormatUint(uint64(score.ID), 10))
}

func (c *UserController) Results(ctx *gin.Context) {
	principal, _ := middleware.PrincipalFrom(ctx)
	scoreID, ok := pathID(ctx, "score_id")
	if !ok {
		return
	}
	score, err := c.quizService.GetResult(principal, scoreID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			redirect(ctx, userDashboardPath)
			return
		}
		fail(ctx, err, "Score")
		return
	}
	render(ctx, http.StatusOK, "results.html", "Results", gin.H{"Score": score})
}

// answersFromForm collects question_<id> fields. Values that are not
// integers are dropped and therefore score as unanswered.
func answersFromForm(form map[string][]string) map[uint]int {
	answers := make(map[uint]int)
	for key, values := range form {
		if !strings.HasPrefix(key, answerFieldPrefix) || len(values) == 0 {
			continue
		}
		id, err := strconv.ParseUint(strings.TrimPrefix(key, answerFieldPrefix), 10, 32)
		if err != nil {
			continue
		}
		option, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			continue
		}
		answers[uint(id)] = option
	}
	return answers
}
