package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-api/internal/auth"
	"resume-api/internal/resumes"
	"resume-api/internal/services/health"
	"resume-api/internal/shared/config"
	"resume-api/internal/shared/server"
	"resume-api/internal/shared/storage/db"
	"resume-api/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	DB            *sql.DB
	UsersRepo     users.Repo
	ResumesRepo   resumes.Repo
	AuthService   *auth.Service
	ResumeService *resumes.Service
	AuthHandler   *auth.Handler
	ResumeHandler *resumes.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}

	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
	}

	app.AuthService = auth.NewService(app.UsersRepo)
	app.ResumeService = resumes.NewService(app.ResumesRepo)
	app.AuthHandler = auth.NewHandler(app.AuthService)
	app.ResumeHandler = resumes.NewHandler(app.ResumeService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		Health:        health.NewService(app.DB),
		AuthHandler:   app.AuthHandler,
		ResumeHandler: app.ResumeHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
