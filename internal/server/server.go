// Package server builds the gin engine and wires every route group.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhub/config"
	_ "github.com/lshigami/quizhub/docs" // Swagger docs
	apictrl "github.com/lshigami/quizhub/internal/controller/api"
	webctrl "github.com/lshigami/quizhub/internal/controller/web"
	"github.com/lshigami/quizhub/internal/dto"
	"github.com/lshigami/quizhub/internal/middleware"
	"github.com/lshigami/quizhub/internal/service"
	"github.com/lshigami/quizhub/internal/web"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const sessionCookie = "quizhub_session"

func NewGinEngine(cfg *config.Config) (*gin.Engine, error) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}
	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(templates)

	r.Static("/static", cfg.StaticDir)
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r, nil
}

// Controllers groups every handler set mounted by RegisterRoutes.
type Controllers struct {
	APIAuth    *apictrl.AuthController
	APICatalog *apictrl.CatalogController
	APIScores  *apictrl.ScoreController
	WebAuth    *webctrl.AuthController
	WebAdmin   *webctrl.AdminController
	WebUser    *webctrl.UserController
}

// RegisterRoutes mounts the token API under /api and the session pages at
// the root. The two surfaces share no authentication state.
func RegisterRoutes(router *gin.Engine, cfg *config.Config, tokens service.TokenService, ctrl Controllers) {
	api := router.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	{
		api.POST("/auth/login", ctrl.APIAuth.Login)

		protected := api.Group("", middleware.TokenAuth(tokens))
		protected.GET("/subjects", ctrl.APICatalog.ListSubjects)
		protected.GET("/subjects/:subject_id/chapters", ctrl.APICatalog.ListSubjectChapters)
		protected.GET("/quizzes", ctrl.APICatalog.ListQuizzes)
		protected.GET("/quizzes/:quiz_id", ctrl.APICatalog.GetQuiz)
		protected.GET("/users/me/scores", ctrl.APIScores.MyScores)

		admin := protected.Group("/admin", middleware.RequireAdminToken())
		admin.GET("/users", ctrl.APIScores.ListUsers)
		admin.GET("/scores", ctrl.APIScores.ListScores)
	}

	store := cookie.NewStore([]byte(cfg.Auth.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	pages := router.Group("", sessions.Sessions(sessionCookie, store), middleware.SessionPrincipal())
	{
		pages.GET("/", ctrl.WebAuth.Index)
		pages.GET("/login", ctrl.WebAuth.ShowLogin)
		pages.POST("/login", ctrl.WebAuth.Login)
		pages.GET("/register", ctrl.WebAuth.ShowRegister)
		pages.POST("/register", ctrl.WebAuth.Register)
		pages.GET("/logout", ctrl.WebAuth.Logout)

		admin := pages.Group("/admin", middleware.RequireAdminSession())
		admin.GET("/dashboard", ctrl.WebAdmin.Dashboard)
		admin.GET("/search", ctrl.WebAdmin.Search)
		admin.POST("/subject/add", ctrl.WebAdmin.AddSubject)
		admin.POST("/subject/edit/:id", ctrl.WebAdmin.EditSubject)
		admin.GET("/subject/delete/:id", ctrl.WebAdmin.DeleteSubject)
		admin.POST("/chapter/add", ctrl.WebAdmin.AddChapter)
		admin.POST("/chapter/edit/:id", ctrl.WebAdmin.EditChapter)
		admin.GET("/chapter/delete/:id", ctrl.WebAdmin.DeleteChapter)
		admin.POST("/quiz/add", ctrl.WebAdmin.AddQuiz)
		admin.POST("/quiz/edit/:id", ctrl.WebAdmin.EditQuiz)
		admin.GET("/quiz/delete/:id", ctrl.WebAdmin.DeleteQuiz)
		admin.POST("/question/add", ctrl.WebAdmin.AddQuestion)
		admin.POST("/question/edit/:id", ctrl.WebAdmin.EditQuestion)
		admin.GET("/question/delete/:id", ctrl.WebAdmin.DeleteQuestion)

		user := pages.Group("/user", middleware.RequireUserSession())
		user.GET("/dashboard", ctrl.WebUser.Dashboard)
		user.GET("/quiz/:quiz_id", ctrl.WebUser.ShowQuiz)
		user.POST("/quiz/:quiz_id", ctrl.WebUser.SubmitQuiz)
		user.GET("/results/:score_id", ctrl.WebUser.Results)
	}
}
