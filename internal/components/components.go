package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"lifeline/internal/api"
	"lifeline/internal/config"
	"lifeline/internal/redis"
	"lifeline/internal/service"
	"lifeline/internal/storage/postgres"
	"lifeline/internal/workers"
	"lifeline/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	Notifier   *service.EventNotifier
	Refresher  *workers.CacheRefresher
	Sweeper    *workers.ReservationSweeper
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("initializing postgres")
	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init postgres", slog.Any("error", err))
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	logger.Info("initializing redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	eventQueue := redis.NewEventQueue(redisClient.Client, "dispatch:events")
	hospitalCache := redis.NewHospitalCache(redisClient)

	geo := service.NewGeo(cfg.Dispatch.SlackKm, cfg.Dispatch.AvgSpeedKmh)

	var geocoder service.Geocoder = service.NoopGeocoder{}
	if cfg.Geocode.BaseURL != "" {
		geocoder = service.NewHTTPGeocoder(cfg.Geocode.BaseURL, logger)
	}

	dispatchSvc := service.NewDispatchService(service.DispatchDeps{
		Ambulances:        storage.Ambulances(),
		Hospitals:         storage.Hospitals(),
		Accidents:         storage.Accidents(),
		Casualties:        storage.Casualties(),
		Reservations:      storage.Reservations(),
		Events:            eventQueue,
		Geocoder:          geocoder,
		Geo:               geo,
		Logger:            logger,
		StrictReservation: cfg.Dispatch.StrictReservation,
	})
	bloodSvc := service.NewBloodService(
		storage.Hospitals(),
		storage.BloodRequests(),
		storage.Reservations(),
		eventQueue,
		geo,
		logger,
	)
	registrySvc := service.NewRegistryService(storage.Hospitals(), hospitalCache, geo, logger)

	svc := service.NewService(dispatchSvc, bloodSvc, registrySvc)

	httpServer := api.NewServer(cfg, logger, svc, storage, redisClient)
	logger.Info("initialized server")

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Postgres:   storage,
		Redis:      redisClient,
		Notifier:   service.NewEventNotifier(logger, cfg.Notify, eventQueue),
		Refresher:  workers.NewCacheRefresher(storage.Hospitals(), hospitalCache, logger),
		Sweeper:    workers.NewReservationSweeper(storage.Reservations(), storage.Hospitals(), logger),
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("component shutdown started")

	c.Sweeper.Stop()
	c.Postgres.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("all components stopped",
		slog.Duration("latency", time.Since(start)))
}
