package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/gin-gonic/gin"

	"cv-forge/internal/builds"
	"cv-forge/internal/extract"
	"cv-forge/internal/preview"
	"cv-forge/internal/services/health"
	"cv-forge/internal/shared/config"
	"cv-forge/internal/shared/server"
	"cv-forge/internal/shared/storage/db"
	"cv-forge/internal/shared/storage/object"
	localstore "cv-forge/internal/shared/storage/object/local"
	miniostore "cv-forge/internal/shared/storage/object/minio"
	s3store "cv-forge/internal/shared/storage/object/s3"
	"cv-forge/internal/shared/telemetry"
	"cv-forge/resume/render"
	"cv-forge/resume/service"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ObjectStore
	BuildsRepo     builds.Repo
	BuildsService  *builds.Service
	Renderers      *render.Registry
	Builder        *service.Builder
	PreviewCache   preview.Cache
	PreviewService *preview.Service
	BuildsHandler  *builds.Handler
	PreviewHandler *preview.Handler
	Health         *health.Service

	closers []func() error
}

// PipelineOptions select how BuildPipeline wires the build side.
type PipelineOptions struct {
	DB db.Options
	// DryRun leaves out the database, store and registry.
	DryRun bool
	// VerifyPDF checks rendered PDFs for the owner's name.
	VerifyPDF bool
	// DevFallback uses the in-memory registry when a dev database is unreachable.
	DevFallback bool
	// Migrate applies pending migrations in dev-like environments.
	Migrate bool
}

// Build prepares shared dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app, err := BuildPipeline(ctx, cfg, PipelineOptions{
		DB:          db.OptionsFromEnv(db.DefaultServerOptions()),
		VerifyPDF:   true,
		DevFallback: true,
		Migrate:     true,
	})
	if err != nil {
		return nil, err
	}
	cfg = app.Config

	app.PreviewCache = buildCache(ctx, cfg, app)
	app.PreviewService = &preview.Service{
		Source:    preview.FileSource{Path: cfg.DataFile},
		Renderers: app.Renderers,
		Cache:     app.PreviewCache,
		TTL:       cfg.PreviewCacheTTL,
		JobTitle:  cfg.JobTitle,
	}

	app.Health = health.NewService()
	if app.DB != nil {
		app.Health.Add("database", app.DB.PingContext)
	}
	if redisCache, ok := app.PreviewCache.(*preview.RedisCache); ok {
		app.Health.Add("redis", func(ctx context.Context) error {
			return redisCache.Client.Ping(ctx).Err()
		})
	}

	app.BuildsHandler = builds.NewHandler(app.BuildsService)
	app.PreviewHandler = preview.NewHandler(app.PreviewService)
	app.Router = server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Handlers: []server.RouteRegistrar{app.Health, app.PreviewHandler, app.BuildsHandler},
	})

	return app, nil
}

// BuildPipeline wires the artifact store, build registry, renderers and
// builder. The batch CLI uses it directly; Build adds the HTTP side on top.
func BuildPipeline(ctx context.Context, cfg config.Config, opts PipelineOptions) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if cfg.BuildConcurrency <= 0 {
		cfg.BuildConcurrency = service.DefaultConcurrency
	}

	app := &App{Config: cfg}
	app.Renderers = render.NewRegistry(PDFCompiler(cfg))
	app.Builder = &service.Builder{
		Renderers:   app.Renderers,
		Logger:      telemetry.Logger(),
		Concurrency: cfg.BuildConcurrency,
	}
	if opts.VerifyPDF {
		app.Builder.Verifier = extract.Verifier{MinPages: 1}
	}
	if opts.DryRun {
		return app, nil
	}

	sqlDB, err := buildDB(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	if sqlDB != nil {
		app.DB = sqlDB
		app.closers = append(app.closers, sqlDB.Close)
	}

	store, err := BuildStore(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Store = store

	if app.DB != nil {
		app.BuildsRepo = &builds.PGRepo{DB: app.DB}
	} else {
		app.BuildsRepo = builds.NewMemoryRepo()
	}
	app.BuildsService = builds.NewService(app.BuildsRepo, app.Store)
	app.Builder.Store = app.Store
	app.Builder.Registry = app.BuildsService
	return app, nil
}

// Close releases connections opened by Build.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// BuildStore selects the artifact store named by cfg.ObjectStoreType.
func BuildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case "minio":
		return miniostore.New(ctx, miniostore.Options{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			UseSSL:    cfg.MinIOUseSSL,
			Bucket:    cfg.MinIOBucket,
			Prefix:    cfg.S3Prefix,
			Region:    cfg.AWSRegion,
		})
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// PDFCompiler returns the LaTeX compiler, or nil when its program is not installed.
func PDFCompiler(cfg config.Config) render.PDFCompiler {
	command := strings.TrimSpace(cfg.PDFCommand)
	if command == "" {
		command = render.DefaultPDFCommand
	}
	program := strings.Fields(command)[0]
	if _, err := exec.LookPath(program); err != nil {
		telemetry.Warn("bootstrap: pdf engine not found; pdf format disabled", map[string]any{"command": program})
		return nil
	}
	return render.ExecCompiler{Command: command}
}

func buildDB(ctx context.Context, cfg config.Config, opts PipelineOptions) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Info("bootstrap: DATABASE_URL empty; using in-memory build registry", nil)
		return nil, nil
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts.DB)
	if err != nil {
		if opts.DevFallback && isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap: database connect failed; using in-memory build registry", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	if opts.Migrate && isDevLike(cfg.Env) {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildCache(ctx context.Context, cfg config.Config, app *App) preview.Cache {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return preview.NewMemoryCache()
	}
	cache, err := preview.NewRedisCache(ctx, cfg.RedisAddr)
	if err != nil {
		telemetry.Warn("bootstrap: redis unavailable; using in-memory preview cache", map[string]any{"error": err.Error()})
		return preview.NewMemoryCache()
	}
	app.closers = append(app.closers, cache.Close)
	return cache
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
