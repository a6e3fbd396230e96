package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/admin-console/internal/api/http"
	"github.com/spec-kit/admin-console/internal/api/http/handlers"
	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/events"
	"github.com/spec-kit/admin-console/internal/observability"
	"github.com/spec-kit/admin-console/internal/permission"
	"github.com/spec-kit/admin-console/internal/persistence"
	"github.com/spec-kit/admin-console/internal/repository"
	"github.com/spec-kit/admin-console/internal/service"
	"github.com/spec-kit/admin-console/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Covers the missing/short signing secret: the process refuses
		// to start rather than run with a weak key.
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
	roleRepo := repository.NewRoleRepository(pool)

	claimStore := permission.NewStore(roleRepo)
	resolver := permission.NewResolver(roleRepo)
	tokenMgr := auth.NewTokenManager(cfg.JWT)
	throttle := service.NewLoginThrottle(redis.Client, cfg.Login)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(userRepo, resolver, tokenMgr, throttle)
	roleService := service.NewRoleService(roleRepo, claimStore, dispatcher)
	userService := service.NewUserService(userRepo, roleRepo, dispatcher, cfg.Login.BcryptCost)

	if err := service.SeedDemoAdmin(ctx, cfg.Demo, cfg.Login.BcryptCost, userRepo, roleRepo, claimStore, logger); err != nil {
		logger.Fatal("failed to seed demo admin", zap.Error(err))
	}

	authMiddleware := auth.NewMiddleware(tokenMgr)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(),
		Auth:           handlers.NewAuthHandler(authService),
		Roles:          handlers.NewRolesHandler(roleService),
		Users:          handlers.NewUsersHandler(userService),
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
