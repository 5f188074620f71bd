package event

import (
	"context"
	"time"

	"github.com/taxi24/location-service/pkg/events"
	"github.com/taxi24/location-service/pkg/logger"
)

const LocationUpdatedName = "driver_location.updated"

// LocationUpdated is published after every successful location upsert.
type LocationUpdated struct {
	dateTime time.Time
	payload  interface{}
}

func NewLocationUpdated() *LocationUpdated {
	return &LocationUpdated{dateTime: time.Now().UTC()}
}

func (e *LocationUpdated) GetName() string                { return LocationUpdatedName }
func (e *LocationUpdated) GetDateTime() time.Time         { return e.dateTime }
func (e *LocationUpdated) GetPayload() interface{}        { return e.payload }
func (e *LocationUpdated) SetPayload(payload interface{}) { e.payload = payload }

// LocationUpdatedLogHandler mirrors the audit behavior of the trip
// dispatch side: every position ping leaves a log line.
type LocationUpdatedLogHandler struct {
	log logger.Logger
}

func NewLocationUpdatedLogHandler(log logger.Logger) *LocationUpdatedLogHandler {
	return &LocationUpdatedLogHandler{log: log}
}

func (h *LocationUpdatedLogHandler) Handle(ctx context.Context, ev events.Event) {
	h.log.Info(ctx, "driver location updated",
		logger.String("event", ev.GetName()),
		logger.Any("payload", ev.GetPayload()),
	)
}
