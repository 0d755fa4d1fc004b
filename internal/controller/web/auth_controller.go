package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhub/internal/dto"
	"github.com/lshigami/quizhub/internal/middleware"
	"github.com/lshigami/quizhub/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	msgMissingCredentials = "Please provide both email and password."
	msgInvalidCredentials = "Invalid email or password"
	msgEmailTaken         = "Email already registered"
	msgRegistered         = "Registration successful! Please log in."
	msgLoggedOut          = "You have been logged out."
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (c *AuthController) Index(ctx *gin.Context) {
	render(ctx, http.StatusOK, "index.html", "", nil)
}

func (c *AuthController) ShowLogin(ctx *gin.Context) {
	render(ctx, http.StatusOK, "login.html", "Login", nil)
}

func (c *AuthController) Login(ctx *gin.Context) {
	var form dto.LoginForm
	if err := ctx.ShouldBind(&form); err != nil || form.Email == "" || form.Password == "" {
		middleware.Flash(ctx, msgMissingCredentials)
		redirect(ctx, middleware.LoginPath)
		return
	}

	user, err := c.authService.Authenticate(form.Email, form.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			log.Error().Err(err).Msg("Page Login: Service error")
		}
		middleware.Flash(ctx, msgInvalidCredentials)
		render(ctx, http.StatusOK, "login.html", "Login", nil)
		return
	}

	if err := middleware.StartSession(ctx, user); err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Page Login: Failed to save session")
		renderError(ctx, http.StatusInternalServerError, "Could not start session")
		return
	}
	if user.IsAdmin {
		redirect(ctx, "/admin/dashboard")
		return
	}
	redirect(ctx, "/user/dashboard")
}

func (c *AuthController) ShowRegister(ctx *gin.Context) {
	render(ctx, http.StatusOK, "register.html", "Register", nil)
}

func (c *AuthController) Register(ctx *gin.Context) {
	var form dto.RegisterForm
	if err := ctx.ShouldBind(&form); err != nil {
		log.Warn().Err(err).Msg("Page Register: Invalid form")
		middleware.Flash(ctx, "Please fill in every field correctly.")
		redirect(ctx, "/register")
		return
	}

	if _, err := c.authService.Register(form); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			middleware.Flash(ctx, msgEmailTaken)
			redirect(ctx, "/register")
			return
		}
		log.Error().Err(err).Msg("Page Register: Service error")
		renderError(ctx, http.StatusInternalServerError, "Registration failed")
		return
	}
	middleware.Flash(ctx, msgRegistered)
	redirect(ctx, middleware.LoginPath)
}

func (c *AuthController) Logout(ctx *gin.Context) {
	if err := middleware.EndSession(ctx); err != nil {
		log.Warn().Err(err).Msg("Page Logout: Failed to clear session")
	}
	middleware.Flash(ctx, msgLoggedOut)
	redirect(ctx, "/")
}
