package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"github.com/taxi24/location-service/internal/application/port/outbound"
	"github.com/taxi24/location-service/internal/domain/entity"
	"github.com/taxi24/location-service/pkg/logger"
)

// BreakerLocationRepository is an opt-in decorator that sheds load on the
// location store once it starts failing. It fails fast while open and
// performs no retries, so the caller-visible contract is unchanged: a
// rejected call surfaces as ErrStoreUnavailable.
type BreakerLocationRepository struct {
	next outbound.LocationRepository
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerLocationRepository(next outbound.LocationRepository, log logger.Logger) *BreakerLocationRepository {
	settings := gobreaker.Settings{
		Name:        "location-store",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && counts.TotalFailures*2 >= counts.Requests
		},
		// Only store failures should trip the breaker; a not-found
		// answer is a healthy store doing its job.
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, entity.ErrStoreUnavailable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn(context.Background(), "Circuit breaker state change",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	}
	return &BreakerLocationRepository{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *BreakerLocationRepository) exec(fn func() (interface{}, error)) (interface{}, error) {
	out, err := b.cb.Execute(fn)
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return out, err
}

func (b *BreakerLocationRepository) Upsert(ctx context.Context, loc *entity.DriverLocation) error {
	_, err := b.exec(func() (interface{}, error) {
		return nil, b.next.Upsert(ctx, loc)
	})
	return err
}

func (b *BreakerLocationRepository) Get(ctx context.Context, driverID string) (*entity.DriverLocation, error) {
	out, err := b.exec(func() (interface{}, error) {
		return b.next.Get(ctx, driverID)
	})
	if err != nil {
		return nil, err
	}
	return out.(*entity.DriverLocation), nil
}

func (b *BreakerLocationRepository) SetAvailability(ctx context.Context, driverID string, isFree bool) error {
	_, err := b.exec(func() (interface{}, error) {
		return nil, b.next.SetAvailability(ctx, driverID, isFree)
	})
	return err
}

func (b *BreakerLocationRepository) SetStatus(ctx context.Context, driverID string, isActive, isFree bool) error {
	_, err := b.exec(func() (interface{}, error) {
		return nil, b.next.SetStatus(ctx, driverID, isActive, isFree)
	})
	return err
}

func (b *BreakerLocationRepository) Remove(ctx context.Context, driverID string) error {
	_, err := b.exec(func() (interface{}, error) {
		return nil, b.next.Remove(ctx, driverID)
	})
	return err
}

func (b *BreakerLocationRepository) Nearest(ctx context.Context, lon, lat, radiusKm float64, limit int, onlyAvailable bool) ([]*entity.DriverLocation, error) {
	out, err := b.exec(func() (interface{}, error) {
		return b.next.Nearest(ctx, lon, lat, radiusKm, limit, onlyAvailable)
	})
	if err != nil {
		return nil, err
	}
	return out.([]*entity.DriverLocation), nil
}
