package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"mealroute/cmd"
	httpadapter "mealroute/internal/adapters/in/http"
	"mealroute/internal/adapters/out/postgres/migrations"
	"mealroute/internal/jobs"
	"mealroute/internal/metrics"

	"go.uber.org/zap"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := cmd.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err = run(cfg, logger); err != nil {
		logger.Fatal("Service stopped with error", zap.Error(err))
	}
}

func run(cfg cmd.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := migrations.Up(cfg.DatabaseURL()); err != nil {
		return err
	}
	logger.Info("Database schema is up to date")

	gormDB, err := gorm.Open(gorm_postgres.Open(cfg.DatabaseURL()), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	app, err := cmd.NewCompositionRoot(cfg, gormDB)
	if err != nil {
		return err
	}

	m := metrics.New(true)

	createOrder := app.CreateCreateOrderCommandHandler()
	confirmOrder := app.CreateConfirmOrderCommandHandler()
	markReady := app.CreateMarkOrderReadyCommandHandler()
	startDelivery := app.CreateStartDeliveryCommandHandler()
	completeDelivery := app.CreateCompleteDeliveryCommandHandler()
	cancelOrder := app.CreateCancelOrderCommandHandler()
	rebuildRoute := app.CreateRebuildRouteCommandHandler()
	getStats := app.CreateGetDeliveryStatsQueryHandler()

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:      &createOrder,
		ConfirmOrder:     &confirmOrder,
		MarkOrderReady:   &markReady,
		StartDelivery:    &startDelivery,
		CompleteDelivery: &completeDelivery,
		CancelOrder:      &cancelOrder,
		RebuildRoute:     &rebuildRoute,
		GetOrder:         app.CreateGetOrderQueryHandler(),
		GetRoute:         app.CreateGetRouteQueryHandler(),
		GetDeliveryStats: getStats,
	}, app.Clock(), m, logger)

	router, err := httpadapter.NewRouter(server, m, logger, httpadapter.RouterConfig{
		RateLimitRPS:   cfg.HTTPRateLimitRPS,
		RateLimitBurst: cfg.HTTPRateLimitBurst,
	})
	if err != nil {
		return err
	}

	jobManager := jobs.NewJobManager(&rebuildRoute, getStats, app.Clock(), m, cfg.RouteSnapshotSchedule, logger)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr()))
		serveErr <- router.Start(cfg.HTTPAddr())
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return router.Shutdown(shutdownCtx)
}
