package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taxi24/location-service/internal/domain/entity"
	"github.com/taxi24/location-service/pkg/logger"
)

const (
	// driverLocationsKey is the hash holding the full per-driver record.
	driverLocationsKey = "driver_locations"
	// driversGeoKey is the geo set holding driver coordinates.
	driversGeoKey = "drivers"
)

// RedisLocationRepository keeps each driver in two representations: the
// attribute blob in a hash and the coordinates in a geo set. Upsert and
// Remove write both in one MULTI/EXEC pipeline so a single update cannot
// leave one side behind.
type RedisLocationRepository struct {
	client        *redis.Client
	logger        logger.Logger
	strictUnknown bool
	staleAfter    time.Duration
}

type RepositoryOption func(*RedisLocationRepository)

// WithLenientUnknown restores the historical behavior where availability
// and status updates against an unknown driver id are silent no-ops
// instead of ErrDriverNotFound.
func WithLenientUnknown() RepositoryOption {
	return func(r *RedisLocationRepository) { r.strictUnknown = false }
}

// WithStaleAfter treats records not refreshed within d as gone: Get
// reports not-found and Nearest skips them. Zero disables the cutoff.
func WithStaleAfter(d time.Duration) RepositoryOption {
	return func(r *RedisLocationRepository) { r.staleAfter = d }
}

func NewRedisLocationRepository(client *redis.Client, log logger.Logger, opts ...RepositoryOption) *RedisLocationRepository {
	r := &RedisLocationRepository{client: client, logger: log, strictUnknown: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisLocationRepository) Upsert(ctx context.Context, loc *entity.DriverLocation) error {
	payload, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("marshal driver location: %w", err)
	}

	r.logger.Debug(ctx, "Redis location upsert",
		logger.String("driver_id", loc.DriverID),
		logger.Float64("lat", loc.Latitude),
		logger.Float64("lng", loc.Longitude),
		logger.Bool("is_free", loc.IsFree),
	)

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, driverLocationsKey, loc.DriverID, payload)
	pipe.GeoAdd(ctx, driversGeoKey, &redis.GeoLocation{
		Name:      loc.DriverID,
		Longitude: loc.Longitude,
		Latitude:  loc.Latitude,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error(ctx, "Redis upsert pipeline failed", logger.WithError(err))
		return storeErr("upsert", err)
	}
	return nil
}

// Get merges the hash record with the freshest coordinates known to the
// geo set. The geo set wins on coordinates, which self-heals drift when
// a past write landed on only one representation.
func (r *RedisLocationRepository) Get(ctx context.Context, driverID string) (*entity.DriverLocation, error) {
	raw, err := r.client.HGet(ctx, driverLocationsKey, driverID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, entity.ErrDriverNotFound
	}
	if err != nil {
		r.logger.Error(ctx, "Redis HGET failed", logger.WithError(err))
		return nil, storeErr("get", err)
	}

	var loc entity.DriverLocation
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		return nil, fmt.Errorf("unmarshal driver location %q: %w", driverID, err)
	}

	if r.isStale(&loc) {
		return nil, entity.ErrDriverNotFound
	}

	pos, err := r.client.GeoPos(ctx, driversGeoKey, driverID).Result()
	if err != nil {
		r.logger.Error(ctx, "Redis GEOPOS failed", logger.WithError(err))
		return nil, storeErr("get", err)
	}
	if len(pos) > 0 && pos[0] != nil {
		loc.Longitude = pos[0].Longitude
		loc.Latitude = pos[0].Latitude
	}

	return &loc, nil
}

func (r *RedisLocationRepository) SetAvailability(ctx context.Context, driverID string, isFree bool) error {
	return r.patch(ctx, driverID, func(loc *entity.DriverLocation) {
		loc.IsFree = isFree
	})
}

func (r *RedisLocationRepository) SetStatus(ctx context.Context, driverID string, isActive, isFree bool) error {
	return r.patch(ctx, driverID, func(loc *entity.DriverLocation) {
		loc.IsActive = isActive
		loc.IsFree = isFree
	})
}

// patch is a read-modify-write of the attribute blob only; coordinates
// stay untouched. Two racing patches resolve last-write-wins.
func (r *RedisLocationRepository) patch(ctx context.Context, driverID string, mutate func(*entity.DriverLocation)) error {
	loc, err := r.Get(ctx, driverID)
	if errors.Is(err, entity.ErrDriverNotFound) {
		if r.strictUnknown {
			return entity.ErrDriverNotFound
		}
		return nil
	}
	if err != nil {
		return err
	}

	mutate(loc)
	loc.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("marshal driver location: %w", err)
	}
	if err := r.client.HSet(ctx, driverLocationsKey, driverID, payload).Err(); err != nil {
		r.logger.Error(ctx, "Redis HSET failed", logger.WithError(err))
		return storeErr("patch", err)
	}
	return nil
}

// Remove deletes both representations and is idempotent; removing an
// unknown id is not an error.
func (r *RedisLocationRepository) Remove(ctx context.Context, driverID string) error {
	pipe := r.client.TxPipeline()
	pipe.HDel(ctx, driverLocationsKey, driverID)
	pipe.ZRem(ctx, driversGeoKey, driverID)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error(ctx, "Redis remove pipeline failed", logger.WithError(err))
		return storeErr("remove", err)
	}
	return nil
}

func (r *RedisLocationRepository) Nearest(ctx context.Context, lon, lat, radiusKm float64, limit int, onlyAvailable bool) ([]*entity.DriverLocation, error) {
	r.logger.Debug(ctx, "Redis GeoSearch query",
		logger.Float64("lat", lat),
		logger.Float64("lng", lon),
		logger.Float64("radius_km", radiusKm),
		logger.Int("limit", limit),
	)

	cmd := r.client.GeoSearchLocation(ctx, driversGeoKey,
		&redis.GeoSearchLocationQuery{
			GeoSearchQuery: redis.GeoSearchQuery{
				Longitude:  lon,
				Latitude:   lat,
				Radius:     radiusKm,
				RadiusUnit: "km",
				Sort:       "ASC",
				Count:      limit,
			},
			WithCoord: true,
		},
	)
	results, err := cmd.Result()
	if err != nil {
		r.logger.Error(ctx, "Redis GeoSearch failed", logger.WithError(err))
		return nil, storeErr("nearest", err)
	}

	// Availability is filtered after the limited radius query, so the
	// result can hold fewer than limit drivers even when closer busy
	// drivers were found. See LocationRepository for why this stays.
	locations := make([]*entity.DriverLocation, 0, len(results))
	for _, res := range results {
		loc, err := r.Get(ctx, res.Name)
		if errors.Is(err, entity.ErrDriverNotFound) {
			// Geo member without a blob (or expired): drifted state,
			// skip it rather than fail the query.
			continue
		}
		if err != nil {
			return nil, err
		}
		if onlyAvailable && !loc.IsFree {
			continue
		}
		locations = append(locations, loc)
	}

	return locations, nil
}

func (r *RedisLocationRepository) isStale(loc *entity.DriverLocation) bool {
	return r.staleAfter > 0 && time.Since(loc.UpdatedAt) > r.staleAfter
}

// Purge drops both representations wholesale. Used by the seeder before
// repopulating the index.
func (r *RedisLocationRepository) Purge(ctx context.Context) error {
	if err := r.client.Del(ctx, driverLocationsKey, driversGeoKey).Err(); err != nil {
		return storeErr("purge", err)
	}
	return nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", entity.ErrStoreUnavailable, op, err)
}
