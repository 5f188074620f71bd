package location

import (
	"context"

	"github.com/taxi24/location-service/internal/application/port/outbound"
	"github.com/taxi24/location-service/internal/domain/entity"
	"github.com/taxi24/location-service/pkg/events"
)

// UpdateUseCaseImpl records a driver position ping. A driver sending a
// ping is by definition logged in, so IsActive is always forced true;
// the record is created on first ping, no separate registration exists.
type UpdateUseCaseImpl struct {
	Repo outbound.LocationRepository
	// NewEvent builds a fresh event per execution; concurrent pings
	// must not share one mutable payload.
	NewEvent        func() events.Event
	EventDispatcher events.EventDispatcher
}

func NewUpdateLocationUseCase(repo outbound.LocationRepository, newEvent func() events.Event, dispatcher events.EventDispatcher) *UpdateUseCaseImpl {
	return &UpdateUseCaseImpl{
		Repo:            repo,
		NewEvent:        newEvent,
		EventDispatcher: dispatcher,
	}
}

func (uc *UpdateUseCaseImpl) Execute(ctx context.Context, input UpdateInput) error {
	loc, err := entity.NewDriverLocation(input.DriverID, input.Latitude, input.Longitude, true, input.IsAvailable)
	if err != nil {
		return err
	}

	if err := uc.Repo.Upsert(ctx, loc); err != nil {
		return err
	}

	// The write is durable at this point; the in-process fan-out is
	// observational only and never fails the update.
	ev := uc.NewEvent()
	ev.SetPayload(LocationOutput{
		DriverID:  loc.DriverID,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		IsActive:  loc.IsActive,
		IsFree:    loc.IsFree,
		UpdatedAt: loc.UpdatedAt,
	})
	uc.EventDispatcher.Dispatch(ctx, ev)

	return nil
}
