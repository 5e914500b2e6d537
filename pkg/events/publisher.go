package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Topic is the in-process bus topic carrying every activity event.
const Topic = "activity"

// Publisher emits activity events. Implementations never fail the caller.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Sink is an external destination such as NATS JetStream.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// ErrorReporter receives publishing failures.
type ErrorReporter func(event Event, err error)

// Envelope is the wire form of an event on the bus and on external sinks.
type Envelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt string                 `json:"occurred_at"`
}

func Marshal(event Event) ([]byte, error) {
	return json.Marshal(Envelope{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

// BusPublisher fans an event out to the watermill bus and optional sinks.
type BusPublisher struct {
	bus     message.Publisher
	sinks   []Sink
	onError ErrorReporter
}

func NewBusPublisher(bus message.Publisher, onError ErrorReporter, sinks ...Sink) *BusPublisher {
	if onError == nil {
		onError = func(Event, error) {}
	}
	filtered := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	return &BusPublisher{bus: bus, sinks: filtered, onError: onError}
}

func (p *BusPublisher) Publish(ctx context.Context, event Event) {
	if p.bus != nil {
		payload, err := Marshal(event)
		if err != nil {
			p.onError(event, fmt.Errorf("marshal event: %w", err))
		} else {
			msg := message.NewMessage(watermill.NewUUID(), payload)
			msg.Metadata.Set("type", event.EventType())
			if err := p.bus.Publish(Topic, msg); err != nil {
				p.onError(event, fmt.Errorf("publish to bus: %w", err))
			}
		}
	}

	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			p.onError(event, err)
		}
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}
