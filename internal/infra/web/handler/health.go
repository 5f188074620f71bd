package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/redis/go-redis/v9"
)

type healthOptions struct {
	checks []*health.Config
}

type HealthOption func(*healthOptions)

// WithRedis registers the location store check. The service cannot do
// anything useful without it, so the check is not skippable.
func WithRedis(rdb *redis.Client) HealthOption {
	return func(o *healthOptions) {
		if rdb == nil {
			return
		}
		o.checks = append(o.checks, &health.Config{
			Name:      "redis",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
		})
	}
}

// WithPostgres registers the driver roster check, used by deployments
// that co-host the seeder. The roster being down does not stop the
// serving path, so it only degrades the report.
func WithPostgres(db *sql.DB) HealthOption {
	return func(o *healthOptions) {
		if db == nil {
			return
		}
		o.checks = append(o.checks, &health.Config{
			Name:      "postgres",
			Timeout:   5 * time.Second,
			SkipOnErr: true,
			Check: func(ctx context.Context) error {
				return db.PingContext(ctx)
			},
		})
	}
}

func NewHealthHandler(serviceName string, opts ...HealthOption) http.Handler {
	options := &healthOptions{
		checks: make([]*health.Config, 0),
	}
	for _, opt := range opts {
		opt(options)
	}

	h, _ := health.New(health.WithComponent(health.Component{
		Name:    serviceName,
		Version: "1.0.0",
	}))

	for _, check := range options.checks {
		h.Register(*check)
	}

	return h.Handler()
}
