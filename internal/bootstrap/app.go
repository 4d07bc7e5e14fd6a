package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/applications"
	"jobboard-backend/internal/jobs"
	"jobboard-backend/internal/shared/auth"
	"jobboard-backend/internal/shared/config"
	"jobboard-backend/internal/shared/server"
	"jobboard-backend/internal/shared/server/middleware"
	"jobboard-backend/internal/shared/storage/db"
	"jobboard-backend/internal/shared/storage/object"
	localstore "jobboard-backend/internal/shared/storage/object/local"
	s3store "jobboard-backend/internal/shared/storage/object/s3"
	"jobboard-backend/internal/shared/telemetry"
	"jobboard-backend/internal/users"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	DB                 *sql.DB
	Store              object.ObjectStore
	Tokens             *auth.Issuer
	UsersRepo          users.Repo
	JobsRepo           jobs.Repo
	ApplicationsRepo   applications.Repo
	UsersService       *users.Service
	JobsService        *jobs.Service
	ApplicationService *applications.Service
	UsersHandler       *users.Handler
	JobsHandler        *jobs.Handler
	ApplicationHandler *applications.Handler
}

// Build prepares dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Tokens: tokens,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	deps := server.RouterDeps{
		Config:             cfg,
		Tokens:             app.UsersService,
		UserHandler:        app.UsersHandler,
		JobHandler:         app.JobsHandler,
		ApplicationHandler: app.ApplicationHandler,
		RateLimiter:        middleware.NewRateLimiter(nil),
	}
	if cfg.ObjectStoreType == "local" {
		deps.Files = store
	}
	app.Router = server.NewRouter(deps)

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Info("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, errors.New("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
			err = fmt.Errorf("run migrations: %w", err)
		}
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "database unavailable", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, errors.New("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, s3store.Options{
			Region:        cfg.AWSRegion,
			Bucket:        cfg.S3Bucket,
			Prefix:        cfg.S3Prefix,
			KMSKeyID:      cfg.SSEKMSKeyID,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL), nil
	}
}

func buildServices(app *App) error {
	var (
		userRepo users.Repo
		jobRepo  jobs.Repo
		appRepo  applications.Repo
		// PG cascades application rows through the foreign key.
		dependents jobs.DependentsRemover
	)

	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		jobRepo = &jobs.PGRepo{DB: app.DB}
		appRepo = &applications.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		jobRepo = jobs.NewMemoryRepo()
		memApps := applications.NewMemoryRepo()
		appRepo = memApps
		dependents = memApps
	}

	userSvc := users.NewService(userRepo, app.Tokens)
	jobSvc := jobs.NewService(jobRepo, dependents)
	appSvc := applications.NewService(appRepo, jobSvc, app.Store, app.Config.UploadTimeout)

	app.UsersRepo = userRepo
	app.JobsRepo = jobRepo
	app.ApplicationsRepo = appRepo
	app.UsersService = userSvc
	app.JobsService = jobSvc
	app.ApplicationService = appSvc
	app.UsersHandler = users.NewHandler(userSvc)
	app.JobsHandler = jobs.NewHandler(jobSvc)
	app.ApplicationHandler = applications.NewHandler(appSvc, app.Config.MaxUploadBytes)

	if app.UsersHandler == nil || app.JobsHandler == nil || app.ApplicationHandler == nil {
		return errors.New("failed to initialize handlers")
	}
	return nil
}
