package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	apihttp "github.com/spec-kit/workdesk-service/internal/api/http"
	"github.com/spec-kit/workdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/workdesk-service/internal/auth"
	"github.com/spec-kit/workdesk-service/internal/config"
	"github.com/spec-kit/workdesk-service/internal/events"
	"github.com/spec-kit/workdesk-service/internal/observability"
	"github.com/spec-kit/workdesk-service/internal/persistence"
	"github.com/spec-kit/workdesk-service/internal/realtime"
	"github.com/spec-kit/workdesk-service/internal/repository"
	"github.com/spec-kit/workdesk-service/internal/service"
	"github.com/spec-kit/workdesk-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
	}

	rds := persistence.NewRedis(cfg.Redis, logger)
	defer rds.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	featureRepo := repository.NewFeatureRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	programRepo := repository.NewProgramRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	evidenceRepo := repository.NewTaskEvidenceRepository(pool)
	reportRepo := repository.NewDailyReportRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	messageRepo := repository.NewTicketMessageRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	accountService := service.NewAccountService(accountRepo, rds.Client, cfg.Redis.AccountCacheTTL, cfg.Auth, logger)
	authService := service.NewAuthService(accountService, accountRepo, resetRepo, tokens, cfg.Auth, logger)
	roleService := service.NewRoleService(roleRepo, featureRepo)
	programService := service.NewProgramService(programRepo, projectRepo)
	projectService := service.NewProjectService(projectRepo, taskRepo, dispatcher, logger)
	taskService := service.NewTaskService(taskRepo, evidenceRepo)
	reportService := service.NewDailyReportService(reportRepo)
	ticketService := service.NewTicketService(ticketRepo, accountRepo, dispatcher, logger)
	conversationService := service.NewConversationService(ticketRepo, messageRepo, accountRepo, dispatcher, logger)
	notificationService := service.NewNotificationService(notificationRepo, accountRepo, logger)
	exportService := service.NewExportService(ticketRepo, accountRepo, reportRepo, evidenceRepo, cfg.Export)

	notificationService.RegisterSubscribers(dispatcher)

	hub := realtime.NewHub(logger)
	bridge := realtime.NewBridge(hub, rds.Client, logger)
	bridge.RegisterSubscribers(dispatcher)
	go bridge.Run(ctx)

	purger := worker.NewNotificationPurger(notificationRepo, time.Hour, 30*24*time.Hour, logger)
	go purger.Run(ctx)

	app := apihttp.NewApp(apihttp.RouterDeps{
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.App.RequestTimeout(),
		AuthMW:         auth.NewAuthMiddleware(tokens, accountRepo),

		Health:        handlers.NewHealthHandler(cfg.App.Version, pg, rds),
		Auth:          handlers.NewAuthHandler(authService),
		Accounts:      handlers.NewAccountHandler(accountService),
		Roles:         handlers.NewRoleHandler(roleService),
		Programs:      handlers.NewProgramHandler(programService),
		Projects:      handlers.NewProjectHandler(projectService),
		Tasks:         handlers.NewTaskHandler(taskService),
		DailyReports:  handlers.NewDailyReportHandler(reportService),
		Tickets:       handlers.NewTicketHandler(ticketService, conversationService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Exports:       handlers.NewExportHandler(exportService),
		WS:            handlers.NewWSHandler(tokens, accountRepo, conversationService, hub, logger),
	})

	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
