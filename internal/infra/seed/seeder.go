package seed

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taxi24/location-service/internal/application/port/outbound"
	"github.com/taxi24/location-service/internal/domain/entity"
	"github.com/taxi24/location-service/pkg/logger"
)

const (
	lockKey = "seed:driver_locations:lock"
	lockTTL = 5 * time.Minute

	// ringRadiusDeg spreads seeded drivers on a ring around the center
	// point, roughly one kilometer across.
	ringRadiusDeg = 0.01

	maxConcurrentUpserts = 8
)

// LocationStore is the slice of the location repository the seeder
// needs: wipe the index and write fresh records.
type LocationStore interface {
	Purge(ctx context.Context) error
	Upsert(ctx context.Context, loc *entity.DriverLocation) error
}

// Locker guards against two seeder instances repopulating the index at
// the same time.
type Locker interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
}

type Seeder struct {
	roster    outbound.DriverRoster
	store     LocationStore
	locker    Locker
	logger    logger.Logger
	centerLat float64
	centerLng float64
}

func NewSeeder(roster outbound.DriverRoster, store LocationStore, locker Locker, log logger.Logger, centerLat, centerLng float64) *Seeder {
	return &Seeder{
		roster:    roster,
		store:     store,
		locker:    locker,
		logger:    log,
		centerLat: centerLat,
		centerLng: centerLng,
	}
}

// Run repopulates the location index from the driver roster: drivers
// are placed evenly on a ring around the configured center, logged in
// and free. A concurrent run holding the lock makes Run a no-op.
func (s *Seeder) Run(ctx context.Context) error {
	acquired, err := s.locker.SetNX(ctx, lockKey, time.Now().UTC().String(), lockTTL)
	if err != nil {
		return fmt.Errorf("acquire seed lock: %w", err)
	}
	if !acquired {
		s.logger.Warn(ctx, "seed lock already held, skipping")
		return nil
	}
	defer func() {
		if err := s.locker.Del(context.Background(), lockKey); err != nil {
			s.logger.Error(ctx, "failed to release seed lock", logger.WithError(err))
		}
	}()

	drivers, err := s.roster.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("load driver roster: %w", err)
	}
	if len(drivers) == 0 {
		s.logger.Warn(ctx, "no active drivers in roster, nothing to seed")
		return nil
	}

	if err := s.store.Purge(ctx); err != nil {
		return fmt.Errorf("purge location index: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentUpserts)
	for i, d := range drivers {
		angle := float64(i) * 2 * math.Pi / float64(len(drivers))
		lat := s.centerLat + ringRadiusDeg*math.Cos(angle)
		lng := s.centerLng + ringRadiusDeg*math.Sin(angle)
		driver := d

		g.Go(func() error {
			loc, err := entity.NewDriverLocation(driver.ID, lat, lng, driver.Active, true)
			if err != nil {
				return fmt.Errorf("seed driver %q: %w", driver.ID, err)
			}
			return s.store.Upsert(gctx, loc)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info(ctx, "driver locations seeded",
		logger.Int("drivers", len(drivers)),
		logger.Float64("center_lat", s.centerLat),
		logger.Float64("center_lng", s.centerLng),
	)
	return nil
}
