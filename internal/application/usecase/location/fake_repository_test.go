package location

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taxi24/location-service/internal/domain/entity"
	"github.com/taxi24/location-service/pkg/events"
	"github.com/taxi24/location-service/pkg/geo"
	"github.com/taxi24/location-service/pkg/logger"
)

// fakeLocationRepository reproduces the store contract in memory,
// including the order-then-filter Nearest semantics: sort by distance,
// cap at limit, only then drop unavailable drivers.
type fakeLocationRepository struct {
	mu      sync.Mutex
	records map[string]entity.DriverLocation
	lenient bool
	failAll bool
}

func newFakeRepository() *fakeLocationRepository {
	return &fakeLocationRepository{records: make(map[string]entity.DriverLocation)}
}

func (f *fakeLocationRepository) Upsert(_ context.Context, loc *entity.DriverLocation) error {
	if f.failAll {
		return entity.ErrStoreUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[loc.DriverID] = *loc
	return nil
}

func (f *fakeLocationRepository) Get(_ context.Context, driverID string) (*entity.DriverLocation, error) {
	if f.failAll {
		return nil, entity.ErrStoreUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	loc, ok := f.records[driverID]
	if !ok {
		return nil, entity.ErrDriverNotFound
	}
	return &loc, nil
}

func (f *fakeLocationRepository) SetAvailability(ctx context.Context, driverID string, isFree bool) error {
	return f.patch(ctx, driverID, func(loc *entity.DriverLocation) {
		loc.IsFree = isFree
	})
}

func (f *fakeLocationRepository) SetStatus(ctx context.Context, driverID string, isActive, isFree bool) error {
	return f.patch(ctx, driverID, func(loc *entity.DriverLocation) {
		loc.IsActive = isActive
		loc.IsFree = isFree
	})
}

func (f *fakeLocationRepository) patch(_ context.Context, driverID string, mutate func(*entity.DriverLocation)) error {
	if f.failAll {
		return entity.ErrStoreUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	loc, ok := f.records[driverID]
	if !ok {
		if f.lenient {
			return nil
		}
		return entity.ErrDriverNotFound
	}
	mutate(&loc)
	loc.UpdatedAt = time.Now().UTC()
	f.records[driverID] = loc
	return nil
}

func (f *fakeLocationRepository) Remove(_ context.Context, driverID string) error {
	if f.failAll {
		return entity.ErrStoreUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, driverID)
	return nil
}

func (f *fakeLocationRepository) Nearest(_ context.Context, lon, lat, radiusKm float64, limit int, onlyAvailable bool) ([]*entity.DriverLocation, error) {
	if f.failAll {
		return nil, entity.ErrStoreUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	type candidate struct {
		loc      entity.DriverLocation
		distance float64
	}
	var candidates []candidate
	for _, loc := range f.records {
		d, err := geo.DistanceKm(lat, lon, loc.Latitude, loc.Longitude)
		if err != nil {
			return nil, err
		}
		if d <= radiusKm {
			candidates = append(candidates, candidate{loc: loc, distance: d})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	var out []*entity.DriverLocation
	for _, c := range candidates {
		if onlyAvailable && !c.loc.IsFree {
			continue
		}
		loc := c.loc
		out = append(out, &loc)
	}
	return out, nil
}

// fakeEvent and fakeDispatcher capture the update fan-out without the
// real dispatcher.
type fakeEvent struct {
	payload interface{}
}

func (e *fakeEvent) GetName() string                { return "driver_location.updated" }
func (e *fakeEvent) GetDateTime() time.Time         { return time.Time{} }
func (e *fakeEvent) GetPayload() interface{}        { return e.payload }
func (e *fakeEvent) SetPayload(payload interface{}) { e.payload = payload }

type fakeDispatcher struct {
	dispatched []events.Event
}

func (d *fakeDispatcher) Register(string, events.EventHandler) {}
func (d *fakeDispatcher) Clear()                               {}
func (d *fakeDispatcher) Dispatch(_ context.Context, ev events.Event) {
	d.dispatched = append(d.dispatched, ev)
}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...logger.Field) {}
func (nopLogger) Info(context.Context, string, ...logger.Field)  {}
func (nopLogger) Warn(context.Context, string, ...logger.Field)  {}
func (nopLogger) Error(context.Context, string, ...logger.Field) {}
func (n nopLogger) With(...logger.Field) logger.Logger           { return n }
