package location

import (
	"context"
)

type UpdateUseCase interface {
	Execute(ctx context.Context, input UpdateInput) error
}

type NearestUseCase interface {
	Execute(ctx context.Context, input NearestInput) ([]NearestOutput, error)
}

type GetUseCase interface {
	Execute(ctx context.Context, driverID string) (LocationOutput, error)
}

type AvailabilityUseCase interface {
	Execute(ctx context.Context, input AvailabilityInput) error
}

type StatusUseCase interface {
	Execute(ctx context.Context, input StatusInput) error
}

type RemoveUseCase interface {
	Execute(ctx context.Context, driverID string) error
}
