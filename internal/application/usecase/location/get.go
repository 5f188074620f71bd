package location

import (
	"context"

	"github.com/taxi24/location-service/internal/application/port/outbound"
	"github.com/taxi24/location-service/internal/domain/entity"
)

type GetUseCaseImpl struct {
	Repo outbound.LocationRepository
}

func NewGetLocationUseCase(repo outbound.LocationRepository) *GetUseCaseImpl {
	return &GetUseCaseImpl{Repo: repo}
}

func (uc *GetUseCaseImpl) Execute(ctx context.Context, driverID string) (LocationOutput, error) {
	if driverID == "" {
		return LocationOutput{}, entity.ErrDriverIDRequired
	}

	loc, err := uc.Repo.Get(ctx, driverID)
	if err != nil {
		return LocationOutput{}, err
	}

	return LocationOutput{
		DriverID:  loc.DriverID,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		IsActive:  loc.IsActive,
		IsFree:    loc.IsFree,
		UpdatedAt: loc.UpdatedAt,
	}, nil
}
