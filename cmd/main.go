package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhub/config"
	"github.com/lshigami/quizhub/database"
	"github.com/lshigami/quizhub/internal/chart"
	apictrl "github.com/lshigami/quizhub/internal/controller/api"
	webctrl "github.com/lshigami/quizhub/internal/controller/web"
	"github.com/lshigami/quizhub/internal/logger"
	"github.com/lshigami/quizhub/internal/repository"
	"github.com/lshigami/quizhub/internal/server"
	"github.com/lshigami/quizhub/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Quizhub API
// @version 1.0
// @description Token-authenticated read API over subjects, quizzes and scores.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.NopLogger,

		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			server.NewGinEngine,  // Provides *gin.Engine
			func(cfg *config.Config) chart.Renderer {
				return chart.NewPNGRenderer(cfg.StaticDir)
			},
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewSubjectRepository,
			repository.NewChapterRepository,
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewScoreRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAuthService,
			service.NewTokenService,
			service.NewCatalogService,
			service.NewQuizService,
			service.NewReportService,
			service.NewSearchService,
		),

		// Controllers Layer
		fx.Provide(
			apictrl.NewAuthController,
			apictrl.NewCatalogController,
			apictrl.NewScoreController,
			webctrl.NewAuthController,
			webctrl.NewAdminController,
			webctrl.NewUserController,
		),

		// Invokers run in order: schema and admin account before serving.
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedAdmin),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	// Wait for a shutdown signal
	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func AutoMigrateDB(db *gorm.DB) error {
	return database.AutoMigrate(db)
}

// SeedAdmin creates the bootstrap administrator once.
func SeedAdmin(cfg *config.Config, auth service.AuthService) error {
	return auth.EnsureAdmin(cfg.Admin.Email, cfg.Admin.Password)
}

type routeParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Router     *gin.Engine
	Config     *config.Config
	DB         *gorm.DB
	Tokens     service.TokenService
	APIAuth    *apictrl.AuthController
	APICatalog *apictrl.CatalogController
	APIScores  *apictrl.ScoreController
	WebAuth    *webctrl.AuthController
	WebAdmin   *webctrl.AdminController
	WebUser    *webctrl.UserController
}

// RegisterRoutesAndStartServer configures routes and manages server lifecycle.
func RegisterRoutesAndStartServer(p routeParams) {
	server.RegisterRoutes(p.Router, p.Config, p.Tokens, server.Controllers{
		APIAuth:    p.APIAuth,
		APICatalog: p.APICatalog,
		APIScores:  p.APIScores,
		WebAuth:    p.WebAuth,
		WebAdmin:   p.WebAdmin,
		WebUser:    p.WebUser,
	})

	srv := &http.Server{
		Addr:              ":" + p.Config.Server.Port,
		Handler:           p.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quizhub server starting on port %s", p.Config.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", p.Config.Server.Port)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			if sqlDB, err := p.DB.DB(); err == nil {
				return sqlDB.Close()
			}
			return nil
		},
	})
}
