package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhub/internal/dto"
	"github.com/lshigami/quizhub/internal/service"
	"github.com/rs/zerolog/log"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// ListSubjects godoc
// @Summary List subjects
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SubjectResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /subjects [get]
func (c *CatalogController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.catalogService.SubjectResponses()
	if err != nil {
		log.Error().Err(err).Msg("API ListSubjects: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve subjects"})
		return
	}
	ctx.JSON(http.StatusOK, subjects)
}

// ListSubjectChapters godoc
// @Summary List the chapters of a subject
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param subject_id path int true "Subject ID"
// @Success 200 {array} dto.ChapterResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid Subject ID format"
// @Failure 401 {object} dto.ErrorResponse
// @Router /subjects/{subject_id}/chapters [get]
func (c *CatalogController) ListSubjectChapters(ctx *gin.Context) {
	subjectID, ok := parseID(ctx, "subject_id", "Invalid Subject ID format")
	if !ok {
		return
	}
	chapters, err := c.catalogService.ChapterResponses(subjectID)
	if err != nil {
		log.Error().Err(err).Uint("subjectID", subjectID).Msg("API ListSubjectChapters: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve chapters"})
		return
	}
	ctx.JSON(http.StatusOK, chapters)
}

// ListQuizzes godoc
// @Summary List quizzes
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuizResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /quizzes [get]
func (c *CatalogController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.catalogService.QuizResponses()
	if err != nil {
		log.Error().Err(err).Msg("API ListQuizzes: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve quizzes"})
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary Get a quiz with its questions
// @Description Correct options are never included.
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid Quiz ID format"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id} [get]
func (c *CatalogController) GetQuiz(ctx *gin.Context) {
	quizID, ok := parseID(ctx, "quiz_id", "Invalid Quiz ID format")
	if !ok {
		return
	}
	quiz, err := c.catalogService.QuizDetail(quizID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Quiz not found"})
			return
		}
		log.Error().Err(err).Uint("quizID", quizID).Msg("API GetQuiz: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve quiz"})
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

func parseID(ctx *gin.Context, param, msg string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: msg})
		return 0, false
	}
	return uint(id), true
}
