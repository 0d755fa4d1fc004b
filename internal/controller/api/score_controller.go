package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhub/internal/dto"
	"github.com/lshigami/quizhub/internal/middleware"
	"github.com/lshigami/quizhub/internal/service"
	"github.com/rs/zerolog/log"
)

type ScoreController struct {
	quizService service.QuizService
	authService service.AuthService
}

func NewScoreController(quizService service.QuizService, authService service.AuthService) *ScoreController {
	return &ScoreController{quizService: quizService, authService: authService}
}

// MyScores godoc
// @Summary List the caller's scores
// @Tags Scores
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ScoreResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/me/scores [get]
func (c *ScoreController) MyScores(ctx *gin.Context) {
	principal, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: middleware.MsgTokenInvalid})
		return
	}
	scores, err := c.quizService.ScoreResponses(principal.UserID)
	if err != nil {
		log.Error().Err(err).Uint("userID", principal.UserID).Msg("API MyScores: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve scores"})
		return
	}
	ctx.JSON(http.StatusOK, scores)
}

// ListUsers godoc
// @Summary (Admin) List users
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Admin privileges required"
// @Router /admin/users [get]
func (c *ScoreController) ListUsers(ctx *gin.Context) {
	users, err := c.authService.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("API ListUsers: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve users"})
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// ListScores godoc
// @Summary (Admin) List all scores
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AdminScoreResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Admin privileges required"
// @Router /admin/scores [get]
func (c *ScoreController) ListScores(ctx *gin.Context) {
	scores, err := c.quizService.AllScoreResponses()
	if err != nil {
		log.Error().Err(err).Msg("API ListScores: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve scores"})
		return
	}
	ctx.JSON(http.StatusOK, scores)
}
