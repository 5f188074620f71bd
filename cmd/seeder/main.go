package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/taxi24/location-service/configs"
	"github.com/taxi24/location-service/internal/infra/database"
	"github.com/taxi24/location-service/internal/infra/seed"
	"github.com/taxi24/location-service/internal/infra/storage"
	"github.com/taxi24/location-service/pkg/logger"
)

const serviceName = "driver-location-seeder"

// The seeder bootstraps the location index from the driver roster,
// typically once per environment after the roster itself is seeded.
func main() {
	ctx := context.Background()

	config, err := configs.LoadConfig(".")
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(serviceName, config.IsProduction())

	rdb := redis.NewClient(&redis.Options{
		Addr: config.RedisHost + ":" + config.RedisPort,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error(ctx, "redis unreachable", logger.WithError(err))
		os.Exit(1)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)
	db, err := sql.Open(config.DBDriver, dsn)
	if err != nil {
		log.Error(ctx, "failed to open roster database", logger.WithError(err))
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Error(ctx, "roster database unreachable", logger.WithError(err))
		os.Exit(1)
	}

	seeder := seed.NewSeeder(
		database.NewDriverRosterRepository(db),
		database.NewRedisLocationRepository(rdb, log),
		storage.NewRedisAdapter(rdb),
		log,
		config.SeedCenterLat,
		config.SeedCenterLng,
	)

	if err := seeder.Run(ctx); err != nil {
		log.Error(ctx, "seeding failed", logger.WithError(err))
		os.Exit(1)
	}
	log.Info(ctx, "seeding completed")
}
