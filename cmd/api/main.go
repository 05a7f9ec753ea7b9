package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/job-board/internal/api/http"
	"github.com/spec-kit/job-board/internal/api/http/handlers"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/observability"
	"github.com/spec-kit/job-board/internal/persistence"
	"github.com/spec-kit/job-board/internal/repository"
	"github.com/spec-kit/job-board/internal/service"
	"github.com/spec-kit/job-board/internal/storage"
	"github.com/spec-kit/job-board/internal/validation"
	"github.com/spec-kit/job-board/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	userRepo := repository.NewUserRepository(pg.Pool)
	jobRepo := repository.NewJobRepository(pg.Pool)
	savedJobRepo := repository.NewSavedJobRepository(pg.Pool)
	applicationRepo := repository.NewApplicationRepository(pg.Pool)

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	files, err := storage.NewLocalStore(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix, cfg.Uploads.MaxSizeBytes(), logger)
	if err != nil {
		logger.Fatal("failed to init upload store", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	notifications := worker.NewNotificationWorker(service.NewNotificationService(logger, cfg.Notification), logger, 0)
	notifications.Subscribe(dispatcher, service.NotifiedEvents()...)
	notifications.Start(ctx)

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   userRepo,
		Tokens:     tokens,
		Hasher:     auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		Files:      files,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	jobService := service.NewJobService(service.JobDependencies{
		JobRepo:      jobRepo,
		SavedJobRepo: savedJobRepo,
		Files:        files,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo: applicationRepo,
		JobRepo:         jobRepo,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(cfg.Uploads.MaxSizeBytes()) * 3,
		ErrorHandler: httptransport.ErrorHandler(logger),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:     cfg.App.RequestTimeout(),
		CORSOrigins: cfg.App.CORSOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Prefix:        cfg.App.APIPrefix,
		UploadsPrefix: cfg.Uploads.PublicPrefix,
		UploadsDir:    files.Dir(),
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics, logger),
		Users:          handlers.NewUsersHandler(authService),
		Jobs:           handlers.NewJobsHandler(jobService),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		Admin:          handlers.NewAdminHandler(authService, jobService, applicationService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, userRepo, cfg.Auth.PrincipalLookupTimeout()),
		Validator:      validation.New(),
		LoginLimiter: httptransport.RateLimit(redis, "login",
			cfg.Auth.LoginRateLimitMax, cfg.Auth.LoginRateLimitWindow(), logger),
		LoginReset: httptransport.ResetOnSuccess(redis, "login", logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	cancel()
	notifications.Wait()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
