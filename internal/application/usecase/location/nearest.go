package location

import (
	"context"

	"github.com/taxi24/location-service/internal/application/port/outbound"
	"github.com/taxi24/location-service/internal/domain/entity"
	"github.com/taxi24/location-service/pkg/geo"
	"github.com/taxi24/location-service/pkg/logger"
)

const (
	// MaxSearchRadiusKm caps every proximity query. Not configurable at
	// the interface level.
	MaxSearchRadiusKm = 100.0

	// DefaultNearestLimit is applied by the web layer when the caller
	// does not supply a limit.
	DefaultNearestLimit = 3
)

type NearestUseCaseImpl struct {
	Repo   outbound.LocationRepository
	Logger logger.Logger
}

func NewNearestDriversUseCase(repo outbound.LocationRepository, log logger.Logger) *NearestUseCaseImpl {
	return &NearestUseCaseImpl{Repo: repo, Logger: log}
}

// Execute returns up to input.Limit drivers within MaxSearchRadiusKm of
// the query point, ascending by distance, enriched with distance and a
// coarse ETA. An empty result is not an error.
func (uc *NearestUseCaseImpl) Execute(ctx context.Context, input NearestInput) ([]NearestOutput, error) {
	if err := entity.ValidateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}
	if input.Limit <= 0 {
		return nil, entity.ErrLimitMustBePos
	}

	uc.Logger.Info(ctx, "searching nearest drivers",
		logger.Float64("lng", input.Longitude),
		logger.Float64("lat", input.Latitude),
		logger.Int("limit", input.Limit),
		logger.Bool("only_available", input.OnlyAvailable),
	)

	locations, err := uc.Repo.Nearest(ctx, input.Longitude, input.Latitude, MaxSearchRadiusKm, input.Limit, input.OnlyAvailable)
	if err != nil {
		return nil, err
	}

	out := make([]NearestOutput, 0, len(locations))
	for _, loc := range locations {
		distance, err := geo.DistanceKm(input.Latitude, input.Longitude, loc.Latitude, loc.Longitude)
		if err != nil {
			return nil, err
		}
		eta, err := geo.ETAMinutes(distance, geo.DefaultAvgSpeedKmh)
		if err != nil {
			return nil, err
		}
		out = append(out, NearestOutput{
			LocationOutput: LocationOutput{
				DriverID:  loc.DriverID,
				Latitude:  loc.Latitude,
				Longitude: loc.Longitude,
				IsActive:  loc.IsActive,
				IsFree:    loc.IsFree,
				UpdatedAt: loc.UpdatedAt,
			},
			DistanceKm: distance,
			EtaMinutes: eta,
		})
	}

	uc.Logger.Info(ctx, "nearest drivers found", logger.Int("count", len(out)))
	return out, nil
}
