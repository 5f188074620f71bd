package location

import (
	"context"

	"github.com/taxi24/location-service/internal/application/port/outbound"
	"github.com/taxi24/location-service/internal/domain/entity"
)

// AvailabilityUseCaseImpl toggles only the trip-availability flag; the
// driver's coordinates and logged-in status stay untouched.
type AvailabilityUseCaseImpl struct {
	Repo outbound.LocationRepository
}

func NewUpdateAvailabilityUseCase(repo outbound.LocationRepository) *AvailabilityUseCaseImpl {
	return &AvailabilityUseCaseImpl{Repo: repo}
}

func (uc *AvailabilityUseCaseImpl) Execute(ctx context.Context, input AvailabilityInput) error {
	if input.DriverID == "" {
		return entity.ErrDriverIDRequired
	}
	return uc.Repo.SetAvailability(ctx, input.DriverID, input.IsAvailable)
}
