package events

import (
	"context"
	"time"
)

type Event interface {
	GetName() string
	GetDateTime() time.Time
	GetPayload() interface{}
	SetPayload(payload interface{})
}

type EventHandler interface {
	Handle(ctx context.Context, event Event)
}

type EventDispatcher interface {
	Register(eventName string, handler EventHandler)
	Dispatch(ctx context.Context, event Event)
	Clear()
}
