package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"slotfinder-api/core/cache"
	"slotfinder-api/core/config"
	"slotfinder-api/core/constants"
	"slotfinder-api/core/database"
	"slotfinder-api/core/logger"
	"slotfinder-api/core/middleware"
	"slotfinder-api/core/tasks"
	"slotfinder-api/modules/availability"
	availabilityService "slotfinder-api/modules/availability/service"
	"slotfinder-api/modules/profile"
	"slotfinder-api/modules/scheduling"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run boots the API: config, logging, postgres, redis, module wiring, the
// optional background worker, then the HTTP listener. Blocks until SIGINT or
// SIGTERM, then drains gracefully.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Server.LogLevel, cfg.Server.LogFormat)

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return err
	}

	redisCache, err := cache.NewRedisCache(cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	mw := middleware.NewMiddleware()
	e.Use(mw.RequestIDMiddleware())

	profileSvc := profile.Init(e, &db, mw)
	provider := availability.Init(cfg.Graph, redisCache)
	scheduling.Init(e, provider, profileSvc, mw)

	var worker *tasks.Worker
	if cfg.Worker.Enabled {
		worker = tasks.NewWorker(cfg.Redis, cfg.Worker.Concurrency)

		warmHandler := availabilityService.NewAvailabilityWarmHandler(provider, profileSvc)
		worker.RegisterHandler(constants.TaskTypeAvailabilityWarm, warmHandler.ProcessTask)

		if err := worker.RegisterPeriodic(constants.AvailabilityWarmCronSpec, constants.TaskTypeAvailabilityWarm); err != nil {
			return fmt.Errorf("failed to register availability warm task: %w", err)
		}
		if err := worker.Start(); err != nil {
			return fmt.Errorf("failed to start background worker: %w", err)
		}
		logger.Info("Background worker started", "concurrency", cfg.Worker.Concurrency)
	}

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("Starting server", "addr", addr)
		errCh <- e.Start(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if worker != nil {
			worker.Shutdown()
		}
		return err
	case sig := <-quit:
		logger.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownGracePeriod)
	defer cancel()

	if worker != nil {
		worker.Shutdown()
	}
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
		return err
	}

	logger.Info("Server stopped")
	return nil
}
