package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abdusco/shelf/internal/auth"
	"github.com/abdusco/shelf/internal/db"
	"github.com/abdusco/shelf/internal/functions"
	"github.com/abdusco/shelf/internal/handler"
	"github.com/abdusco/shelf/internal/logger"
	"github.com/abdusco/shelf/internal/repo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

type Config struct {
	Host       string
	Port       string
	DBPath     string
	AdminCreds string `json:"-"`
	JWTSecret  string `json:"-"`
	LogLevel   string
	Debug      bool
}

func newConfigFromEnv() (Config, error) {
	cfg := Config{
		Host:       cmp.Or(os.Getenv("HOST"), "localhost"),
		Port:       cmp.Or(os.Getenv("PORT"), "8080"),
		DBPath:     cmp.Or(os.Getenv("DB_PATH"), "shelf.db"),
		AdminCreds: os.Getenv("ADMIN_CREDENTIALS"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		LogLevel:   cmp.Or(os.Getenv("LOG_LEVEL"), "info"),
		Debug:      os.Getenv("DEBUG") == "1",
	}

	if cfg.AdminCreds != "" {
		if _, err := auth.NewCredentials(cfg.AdminCreds); err != nil {
			return Config{}, fmt.Errorf("ADMIN_CREDENTIALS: %w", err)
		}
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = cfg.AdminCreds
			log.Warn().Msg("using ADMIN_CREDENTIALS as JWT_SECRET - set JWT_SECRET for production")
		}
	}

	return cfg, nil
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func main() {
	cfg, err := newConfigFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse configuration from environment")
	}

	if err := logger.Setup(cfg.LogLevel, cfg.Debug); err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("failed to parse log level")
	}

	log.Info().
		Interface("config", cfg).
		Msg("current configuration")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("application error")
	}
}

func run(ctx context.Context, cfg Config) error {
	log.Info().
		Str("version", version).
		Str("build_time", buildTime).
		Msg("starting application")

	dbInstance, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbInstance.Close()

	registry := functions.NewRegistry()
	registry.Register(functions.LinkFunctions(repo.NewLinksRepo(dbInstance))...)
	registry.Register(functions.ModelFunctions(repo.NewModelsRepo(dbInstance))...)
	log.Debug().Strs("functions", registry.Paths()).Msg("functions registered")

	e, err := newServer(cfg, registry)
	if err != nil {
		return err
	}
	defer e.Close()

	log.Info().Str("address", cfg.Addr()).Msg("server starting")

	return runServer(ctx, e, cfg.Addr())
}

func newServer(cfg Config, registry *functions.Registry) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	if cfg.AdminCreds != "" {
		credentials, err := auth.NewCredentials(cfg.AdminCreds)
		if err != nil {
			return nil, fmt.Errorf("failed to parse admin credentials: %w", err)
		}
		authenticator := auth.NewAuthenticator(credentials, cfg.JWTSecret)
		authHandler := handler.NewAuthHandler(authenticator)

		e.POST("/login", authHandler.Login)
		e.GET("/logout", authHandler.Logout)
		api.Use(auth.NewAuthMiddleware(authenticator))
	} else {
		log.Warn().Msg("ADMIN_CREDENTIALS not set - API is unauthenticated")
	}

	handler.RegisterAPI(api, registry)

	return e, nil
}

func runServer(ctx context.Context, e *echo.Echo, addr string) error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(addr)
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received, gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during graceful shutdown")
	}

	if err := <-serverErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server error")
	}

	log.Info().Msg("server stopped")
	return nil
}
