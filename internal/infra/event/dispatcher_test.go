package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taxi24/location-service/pkg/events"
)

type recordingHandler struct {
	seen []events.Event
}

func (h *recordingHandler) Handle(_ context.Context, ev events.Event) {
	h.seen = append(h.seen, ev)
}

func TestDispatcher_DispatchReachesRegisteredHandlers(t *testing.T) {
	d := NewDispatcher()
	first := &recordingHandler{}
	second := &recordingHandler{}
	d.Register(LocationUpdatedName, first)
	d.Register(LocationUpdatedName, second)

	ev := NewLocationUpdated()
	ev.SetPayload("payload")
	d.Dispatch(context.Background(), ev)

	assert.Len(t, first.seen, 1)
	assert.Len(t, second.seen, 1)
	assert.Equal(t, "payload", first.seen[0].GetPayload())
}

func TestDispatcher_UnregisteredEventIsIgnored(t *testing.T) {
	d := NewDispatcher()
	h := &recordingHandler{}
	d.Register("other.event", h)

	d.Dispatch(context.Background(), NewLocationUpdated())

	assert.Empty(t, h.seen)
}

func TestDispatcher_ClearDropsHandlers(t *testing.T) {
	d := NewDispatcher()
	h := &recordingHandler{}
	d.Register(LocationUpdatedName, h)
	d.Clear()

	d.Dispatch(context.Background(), NewLocationUpdated())

	assert.Empty(t, h.seen)
}
