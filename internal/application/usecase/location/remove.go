package location

import (
	"context"

	"github.com/taxi24/location-service/internal/application/port/outbound"
	"github.com/taxi24/location-service/internal/domain/entity"
)

// RemoveUseCaseImpl deletes a driver from the index entirely, used on
// logout or deactivation. Removing an unknown driver succeeds.
type RemoveUseCaseImpl struct {
	Repo outbound.LocationRepository
}

func NewRemoveDriverUseCase(repo outbound.LocationRepository) *RemoveUseCaseImpl {
	return &RemoveUseCaseImpl{Repo: repo}
}

func (uc *RemoveUseCaseImpl) Execute(ctx context.Context, driverID string) error {
	if driverID == "" {
		return entity.ErrDriverIDRequired
	}
	return uc.Repo.Remove(ctx, driverID)
}
