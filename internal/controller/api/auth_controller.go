package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhub/internal/dto"
	"github.com/lshigami/quizhub/internal/service"
	"github.com/rs/zerolog/log"
)

const msgCouldNotVerify = "Could not verify"

type AuthController struct {
	authService  service.AuthService
	tokenService service.TokenService
}

func NewAuthController(authService service.AuthService, tokenService service.TokenService) *AuthController {
	return &AuthController{authService: authService, tokenService: tokenService}
}

// Login godoc
// @Summary Issue an API token
// @Description Exchanges email and password for a bearer token valid for 24 hours.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse "Could not verify"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: msgCouldNotVerify})
		return
	}

	user, err := c.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			log.Error().Err(err).Msg("API Login: Service error")
		}
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: msgCouldNotVerify})
		return
	}

	token, err := c.tokenService.Issue(user)
	if err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("API Login: Failed to issue token")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to issue token"})
		return
	}
	ctx.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
