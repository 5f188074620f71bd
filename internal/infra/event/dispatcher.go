package event

import (
	"context"
	"sync"

	"github.com/taxi24/location-service/pkg/events"
)

// Dispatcher is a synchronous in-process fan-out: handlers run on the
// caller's goroutine, in registration order. It replaces a broker for
// the location subsystem, whose events are observational only.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]events.EventHandler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]events.EventHandler)}
}

func (d *Dispatcher) Register(eventName string, handler events.EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventName] = append(d.handlers[eventName], handler)
}

func (d *Dispatcher) Dispatch(ctx context.Context, ev events.Event) {
	d.mu.RLock()
	registered := d.handlers[ev.GetName()]
	d.mu.RUnlock()

	for _, h := range registered {
		h.Handle(ctx, ev)
	}
}

func (d *Dispatcher) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = make(map[string][]events.EventHandler)
}
