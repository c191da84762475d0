package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gig-marketplace-api/internal/config"
	"gig-marketplace-api/internal/controller"
	"gig-marketplace-api/internal/repo"
	"gig-marketplace-api/internal/service"
	"gig-marketplace-api/pkg/http_server"
	"gig-marketplace-api/pkg/logger"
	"gig-marketplace-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
)

func runMigrations(postgresDB *postgres.Postgres, databaseName string) {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		logger.Fatalf("creating migration driver: %v", err)
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://migrations", databaseName, driver)
	if err != nil {
		logger.Fatalf("preparing migrations: %v", err)
	}

	if err := migrations.Up(); err != nil {
		if err == migrate.ErrNoChange {
			logger.Info().Msg("no change made by migration scripts")
		} else {
			logger.Fatalf("applying migrations: %v", err)
		}
	}
}

// startReconciler runs one settlement sweep at startup, then keeps
// sweeping on a ticker until ctx is canceled.
func startReconciler(ctx context.Context, bids service.Bid, interval time.Duration) {
	sweep := func() {
		if err := bids.SettleUnfinishedHires(ctx); err != nil {
			logger.Error().Err(err).Msg("settling unfinished hires failed")
		}
	}
	sweep()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweep()
			}
		}
	}()
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("loading config: %v", err)
	}
	logger.Init(cfg.LogLevel)

	logger.Info().Msg("connecting database")
	postgresDB, err := postgres.NewDB(cfg.PostgresConn)
	if err != nil {
		logger.Fatalf("connecting to db: %v", err)
	}
	defer postgresDB.Close()

	logger.Info().Msg("running migrations")
	runMigrations(postgresDB, cfg.PostgresDatabase)

	repositories := repo.NewRepositories(postgresDB)
	services := service.NewServices(repositories)

	handler := echo.New()
	handler.Use(logger.RequestLogger(), logger.Recovery())
	controller.SetupRoutesHandlers(handler, services, cfg.JWTSecret)

	reconcileCtx, stopReconciler := context.WithCancel(context.Background())
	defer stopReconciler()
	startReconciler(reconcileCtx, services.Bid, cfg.ReconcileInterval)

	logger.Info().Str("address", cfg.ServerAddress).Msg("starting server")
	httpServer := http_server.New(handler, cfg.ServerAddress)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		logger.Info().Str("signal", s.String()).Msg("got signal")
	case err = <-httpServer.Notify():
		logger.Error().Err(err).Msg("server stopped")
	}

	logger.Info().Msg("shutting down")
	stopReconciler()
	if err := httpServer.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	} else {
		logger.Info().Msg("successful shutdown")
	}
}
