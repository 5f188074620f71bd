package seed

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxi24/location-service/internal/application/port/outbound"
	"github.com/taxi24/location-service/internal/domain/entity"
	"github.com/taxi24/location-service/pkg/logger"
)

type fakeRoster struct {
	drivers []outbound.RosterDriver
	err     error
}

func (f *fakeRoster) ListActive(context.Context) ([]outbound.RosterDriver, error) {
	return f.drivers, f.err
}

type fakeStore struct {
	mu      sync.Mutex
	purged  bool
	records map[string]entity.DriverLocation
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]entity.DriverLocation)}
}

func (f *fakeStore) Purge(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purged = true
	f.records = make(map[string]entity.DriverLocation)
	return nil
}

func (f *fakeStore) Upsert(_ context.Context, loc *entity.DriverLocation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[loc.DriverID] = *loc
	return nil
}

type fakeLocker struct {
	held     bool
	acquired int
	released int
}

func (f *fakeLocker) SetNX(context.Context, string, interface{}, time.Duration) (bool, error) {
	if f.held {
		return false, nil
	}
	f.held = true
	f.acquired++
	return true, nil
}

func (f *fakeLocker) Del(context.Context, string) error {
	f.held = false
	f.released++
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...logger.Field) {}
func (nopLogger) Info(context.Context, string, ...logger.Field)  {}
func (nopLogger) Warn(context.Context, string, ...logger.Field)  {}
func (nopLogger) Error(context.Context, string, ...logger.Field) {}
func (n nopLogger) With(...logger.Field) logger.Logger           { return n }

func TestSeeder_PopulatesIndexFromRoster(t *testing.T) {
	roster := &fakeRoster{drivers: []outbound.RosterDriver{
		{ID: "driver-1", Active: true},
		{ID: "driver-2", Active: true},
		{ID: "driver-3", Active: true},
	}}
	store := newFakeStore()
	locker := &fakeLocker{}
	s := NewSeeder(roster, store, locker, nopLogger{}, 40.4168, -3.7038)

	err := s.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, store.purged)
	assert.Len(t, store.records, 3)
	for _, loc := range store.records {
		assert.True(t, loc.IsFree)
		assert.InDelta(t, 40.4168, loc.Latitude, 0.011)
		assert.InDelta(t, -3.7038, loc.Longitude, 0.011)
	}
	assert.Equal(t, 1, locker.released)
}

func TestSeeder_EmptyRosterSeedsNothing(t *testing.T) {
	store := newFakeStore()
	s := NewSeeder(&fakeRoster{}, store, &fakeLocker{}, nopLogger{}, 40.4168, -3.7038)

	err := s.Run(context.Background())

	require.NoError(t, err)
	assert.False(t, store.purged)
	assert.Empty(t, store.records)
}

func TestSeeder_SkipsWhenLockHeld(t *testing.T) {
	roster := &fakeRoster{drivers: []outbound.RosterDriver{{ID: "driver-1", Active: true}}}
	store := newFakeStore()
	locker := &fakeLocker{held: true}
	s := NewSeeder(roster, store, locker, nopLogger{}, 40.4168, -3.7038)

	err := s.Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, store.records)
	assert.Equal(t, 0, locker.released)
}
