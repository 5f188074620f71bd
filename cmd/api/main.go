package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"

	"github.com/taxi24/location-service/configs"
	"github.com/taxi24/location-service/internal/application/port/outbound"
	"github.com/taxi24/location-service/internal/application/usecase/location"
	"github.com/taxi24/location-service/internal/infra/database"
	"github.com/taxi24/location-service/internal/infra/event"
	"github.com/taxi24/location-service/internal/infra/web/handler"
	"github.com/taxi24/location-service/internal/infra/web/middleware"
	"github.com/taxi24/location-service/pkg/events"
	"github.com/taxi24/location-service/pkg/logger"
	"github.com/taxi24/location-service/pkg/metrics"
	"github.com/taxi24/location-service/pkg/otel"
)

const serviceName = "driver-location-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config, err := configs.LoadConfig(".")
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(serviceName, config.IsProduction())

	if config.OtelCollectorAddr != "" {
		shutdown, err := otel.InitProvider(ctx, serviceName, config.OtelCollectorAddr)
		if err != nil {
			log.Error(ctx, "failed to init tracing", logger.WithError(err))
		} else {
			defer shutdown()
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: config.RedisHost + ":" + config.RedisPort,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error(ctx, "redis unreachable", logger.WithError(err))
		panic(err)
	}

	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewPrometheusMetrics(reg, serviceName)

	repoOpts := []database.RepositoryOption{}
	if !config.StrictUnknownDriver {
		repoOpts = append(repoOpts, database.WithLenientUnknown())
	}
	if config.LocationStaleAfter > 0 {
		repoOpts = append(repoOpts, database.WithStaleAfter(config.LocationStaleAfter))
	}

	var locationRepo outbound.LocationRepository = database.NewRedisLocationRepository(rdb, log, repoOpts...)
	if config.BreakerEnabled {
		locationRepo = database.NewBreakerLocationRepository(locationRepo, log)
	}

	dispatcher := event.NewDispatcher()
	dispatcher.Register(event.LocationUpdatedName, event.NewLocationUpdatedLogHandler(log))

	updateUC := &location.UpdateMetricsDecorator{
		Next: location.NewUpdateLocationUseCase(locationRepo,
			func() events.Event { return event.NewLocationUpdated() }, dispatcher),
		Metrics: appMetrics,
	}
	nearestUC := &location.NearestMetricsDecorator{
		Next:    location.NewNearestDriversUseCase(locationRepo, log),
		Metrics: appMetrics,
	}
	getUC := location.NewGetLocationUseCase(locationRepo)
	availabilityUC := location.NewUpdateAvailabilityUseCase(locationRepo)
	statusUC := location.NewUpdateStatusUseCase(locationRepo)
	removeUC := &location.RemoveMetricsDecorator{
		Next:    location.NewRemoveDriverUseCase(locationRepo),
		Metrics: appMetrics,
	}

	locationHandler := handler.NewDriverLocationHandler(
		updateUC, nearestUC, getUC, availabilityUC, statusUC, removeUC, log)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: config.RateLimitRPS,
		Burst:             config.RateLimitBurst,
		CleanupInterval:   time.Minute,
		ClientTimeout:     3 * time.Minute,
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.MetricsWrapper(appMetrics))
	r.Use(rateLimiter.Handler(log))

	r.Mount("/driver-location", locationHandler.Routes())
	r.Handle("/healthz", handler.NewHealthHandler(serviceName, handler.WithRedis(rdb)))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:    ":" + config.WebServerPort,
		Handler: r,
	}

	go func() {
		log.Info(ctx, "server listening", logger.String("port", config.WebServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server failed", logger.WithError(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutCtx); err != nil {
		log.Error(shutCtx, "graceful shutdown failed", logger.WithError(err))
	}
	log.Info(shutCtx, "server stopped")
}
