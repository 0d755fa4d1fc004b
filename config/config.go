package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server    Server
	Database  Database
	Auth      Auth
	Admin     Admin
	StaticDir string
}

type Server struct {
	Port string
	Mode string
}

type Database struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Path     string // sqlite file; ":memory:" runs on a single connection
}

type Auth struct {
	SessionSecret string
	JWTSecret     string
	TokenTTL      time.Duration
}

// Admin is the account seeded on first start.
type Admin struct {
	Email    string
	Password string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_PATH", "quizhub.db")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("STATIC_DIR", "static")
	viper.SetDefault("ADMIN_EMAIL", "admin@example.com")
	viper.SetDefault("ADMIN_PASSWORD", "admin123")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.Mode = viper.GetString("GIN_MODE")
	config.Database.Driver = viper.GetString("DATABASE_DRIVER")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.Path = viper.GetString("DATABASE_PATH")

	config.Auth.SessionSecret = viper.GetString("SESSION_SECRET")
	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.TokenTTL = viper.GetDuration("TOKEN_TTL")

	config.Admin.Email = viper.GetString("ADMIN_EMAIL")
	config.Admin.Password = viper.GetString("ADMIN_PASSWORD")

	config.StaticDir = viper.GetString("STATIC_DIR")

	if config.Auth.SessionSecret == "" || config.Auth.JWTSecret == "" {
		log.Warn().Msg("SESSION_SECRET or JWT_SECRET not set, falling back to development secrets")
		if config.Auth.SessionSecret == "" {
			config.Auth.SessionSecret = "dev-session-secret"
		}
		if config.Auth.JWTSecret == "" {
			config.Auth.JWTSecret = "dev-jwt-secret"
		}
	}

	log.Info().
		Str("port", config.Server.Port).
		Str("db_driver", config.Database.Driver).
		Str("db_host", config.Database.Host).
		Str("db_name", config.Database.Name).
		Dur("token_ttl", config.Auth.TokenTTL).
		Msg("Config loaded")
	return &config, nil
}
