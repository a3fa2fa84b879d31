package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/triage-service/internal/api/http"
	"github.com/spec-kit/triage-service/internal/api/http/handlers"
	"github.com/spec-kit/triage-service/internal/approval"
	"github.com/spec-kit/triage-service/internal/auth"
	"github.com/spec-kit/triage-service/internal/config"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/intake"
	"github.com/spec-kit/triage-service/internal/observability"
	"github.com/spec-kit/triage-service/internal/persistence"
	"github.com/spec-kit/triage-service/internal/repository"
	"github.com/spec-kit/triage-service/internal/service"
	"github.com/spec-kit/triage-service/internal/triage"
	"github.com/spec-kit/triage-service/internal/worker"
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

	var recordRepo repository.RecordRepository
	var approverRepo repository.ApproverRepository
	if pool := pg.PoolHandle(); pool != nil {
		recordRepo = repository.NewRecordRepository(pool)
		approverRepo = repository.NewApproverRepository(pool)
	} else {
		recordRepo = repository.NewMemoryRecordRepository()
		approverRepo = repository.NewMemoryApproverRepository()
	}

	var pendingStore approval.Store
	if err := redis.Ping(ctx); err != nil {
		logger.Warn("using in-memory pending-approval store", zap.Error(err))
		pendingStore = approval.NewMemoryStore()
	} else {
		pendingStore = approval.NewRedisStore(redis.Client)
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	memoryService := service.NewMemoryService(recordRepo)

	triageService := service.NewTriageService(service.TriageDependencies{
		Reasoner:   triage.NewReasoner(),
		Decider:    triage.NewDecider(),
		Actor:      triage.NewActor(triage.NewStubExecutor(logger), logger),
		Memory:     memoryService,
		Gate:       approval.NewGate(pendingStore),
		Source:     intake.NewFileBacklog(cfg.Intake.BacklogPath, logger),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	reportService := service.NewReportService(memoryService)

	authService := service.NewAuthService(cfg.Auth, approverRepo, logger)
	if err := authService.EnsureBootstrapApprover(ctx); err != nil {
		logger.Fatal("failed to bootstrap approver", zap.Error(err))
	}
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), approverRepo)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:        handlers.NewTicketsHandler(triageService),
		Approvals:      handlers.NewApprovalsHandler(triageService),
		Reports:        handlers.NewReportsHandler(memoryService, reportService),
		ApproverAuth:   handlers.NewApproverAuthHandler(authService),
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
