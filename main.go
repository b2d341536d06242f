package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"mcq-server/config"
	"mcq-server/db"
	"mcq-server/exam"
	"mcq-server/handlers"
	"mcq-server/middleware"
	"mcq-server/store"
	"mcq-server/templates"
	"mcq-server/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := utils.SetupLogger(cfg.Env)
	defer logger.Sync()
	if cfg.ConfigFile == "" {
		logger.Info("config.yaml not found, using environment variables and defaults")
	} else {
		logger.Info("configuration loaded", zap.String("file", cfg.ConfigFile))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// The question source decides whether a database is needed at all.
	var pool *pgxpool.Pool
	if cfg.Questions.Source == config.SourcePostgres {
		pool, err = db.InitDB(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("unable to connect to database", zap.Error(err))
		}
		defer pool.Close()
		if err := db.CreateSchema(ctx, pool); err != nil {
			logger.Fatal("error creating database schema", zap.Error(err))
		}
	}

	source, err := newSource(cfg, pool)
	if err != nil {
		logger.Fatal("invalid question source", zap.Error(err))
	}
	questions := store.New(source, logger)
	questions.LoadAsync(ctx)

	registry := exam.NewRegistry(cfg.Session.TTL, logger)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	renderer, err := templates.NewRenderer(templatesDir(cfg.TemplatesDir, logger))
	if err != nil {
		logger.Fatal("error loading templates", zap.Error(err))
	}
	router.HTMLRender = renderer

	router.Use(middleware.Logger(logger))
	router.Use(middleware.SessionMiddleware(cfg.Session.SigningKey, cfg.Session.CookieName, cfg.Session.TTL, logger))

	handlers.RegisterRoutes(router, &handlers.ExamDeps{
		Store:    questions,
		Registry: registry,
		Meta:     store.LoadExamMeta(cfg.Questions.MetaPath, logger),
		Log:      logger,
	})

	// Drop exam sessions nobody has touched within the session TTL.
	go func() {
		ticker := time.NewTicker(cfg.Session.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				registry.Sweep()
			case <-ctx.Done():
				return
			}
		}
	}()

	srv := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}

	// Goroutine to gracefully shut down the server
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down server")
		stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	logger.Info("MCQ server starting",
		zap.String("addr", cfg.ServerPort),
		zap.String("questions", source.Describe()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server startup error", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}

func newSource(cfg *config.Config, pool *pgxpool.Pool) (store.Source, error) {
	switch cfg.Questions.Source {
	case config.SourceFile:
		return store.FileSource{Path: cfg.Questions.Path}, nil
	case config.SourceHTTP:
		return store.NewHTTPSource(cfg.Questions.URL, cfg.Questions.Timeout), nil
	case config.SourcePostgres:
		return store.DBSource{Pool: pool}, nil
	default:
		return nil, errors.New("unknown question source " + cfg.Questions.Source)
	}
}

// templatesDir returns dir when it exists on disk, or "" to use the embedded pages.
func templatesDir(dir string, logger *zap.Logger) string {
	if dir == "" {
		return ""
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logger.Info("templates directory not found, using embedded pages", zap.String("dir", dir))
		return ""
	}
	return dir
}
