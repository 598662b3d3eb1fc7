package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/bountyboard/bounty-service/internal/api/http"
	"github.com/bountyboard/bounty-service/internal/api/http/handlers"
	"github.com/bountyboard/bounty-service/internal/auth"
	"github.com/bountyboard/bounty-service/internal/cache"
	"github.com/bountyboard/bounty-service/internal/config"
	"github.com/bountyboard/bounty-service/internal/events"
	"github.com/bountyboard/bounty-service/internal/observability"
	"github.com/bountyboard/bounty-service/internal/persistence"
	"github.com/bountyboard/bounty-service/internal/repository"
	"github.com/bountyboard/bounty-service/internal/service"
	"github.com/bountyboard/bounty-service/internal/worker"
)

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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	bugRepo := repository.NewBugRepository(pool)
	submissionRepo := repository.NewSubmissionRepository(pool)
	ledgerRepo := repository.NewLedgerRepository(pool)
	historyRepo := repository.NewBugHistoryRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	bugListCache := cache.NewBugListCache(redis, cfg.Cache.BugListTTL(), logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
	})
	ledgerService := service.NewLedgerService(userRepo, ledgerRepo)
	bugService := service.NewBugService(service.BugDependencies{
		BugRepo:     bugRepo,
		UserRepo:    userRepo,
		HistoryRepo: historyRepo,
		Cache:       bugListCache,
		Dispatcher:  dispatcher,
	})
	submissionService := service.NewSubmissionService(service.SubmissionDependencies{
		BugRepo:        bugRepo,
		SubmissionRepo: submissionRepo,
		LedgerRepo:     ledgerRepo,
		HistoryRepo:    historyRepo,
		Cache:          bugListCache,
		Dispatcher:     dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	usersHandler := handlers.NewUsersHandler(authService, ledgerService)
	bugsHandler := handlers.NewBugsHandler(bugService)
	submissionsHandler := handlers.NewSubmissionsHandler(submissionService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Users:          usersHandler,
		Bugs:           bugsHandler,
		Submissions:    submissionsHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
