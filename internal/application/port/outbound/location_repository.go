package outbound

import (
	"context"

	"github.com/taxi24/location-service/internal/domain/entity"
)

// LocationRepository is the location store contract: one logical
// DriverLocation per driver id, queryable both by id and by proximity.
//
// Nearest returns records within radiusKm of (lon, lat), ascending by
// distance, capped at limit BEFORE the availability filter is applied.
// A radius query therefore never inspects more than limit candidates,
// and with onlyAvailable the final count can fall below limit even when
// enough free drivers exist inside the radius. This mirrors the dispatch
// semantics the matching layer was built against; do not reorder the
// filter without revisiting that layer.
type LocationRepository interface {
	Upsert(ctx context.Context, loc *entity.DriverLocation) error
	Get(ctx context.Context, driverID string) (*entity.DriverLocation, error)
	SetAvailability(ctx context.Context, driverID string, isFree bool) error
	SetStatus(ctx context.Context, driverID string, isActive, isFree bool) error
	Remove(ctx context.Context, driverID string) error
	Nearest(ctx context.Context, lon, lat, radiusKm float64, limit int, onlyAvailable bool) ([]*entity.DriverLocation, error)
}
