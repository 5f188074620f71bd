package location

import (
	"context"

	"github.com/taxi24/location-service/internal/application/port/outbound"
	"github.com/taxi24/location-service/internal/domain/entity"
)

type StatusUseCaseImpl struct {
	Repo outbound.LocationRepository
}

func NewUpdateStatusUseCase(repo outbound.LocationRepository) *StatusUseCaseImpl {
	return &StatusUseCaseImpl{Repo: repo}
}

func (uc *StatusUseCaseImpl) Execute(ctx context.Context, input StatusInput) error {
	if input.DriverID == "" {
		return entity.ErrDriverIDRequired
	}
	return uc.Repo.SetStatus(ctx, input.DriverID, input.IsActive, input.IsFree)
}
