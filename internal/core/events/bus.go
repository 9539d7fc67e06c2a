// Package events provides the in-process pub/sub bus used for registration
// and contact-message notifications. Delivery is best-effort: handlers run in
// their own goroutines and a failing handler never affects the publisher.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Event interface {
	EventType() string
	EventID() string
	OccurredAt() time.Time
	Payload() interface{}
}

type BaseEvent struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) EventID() string {
	return e.ID
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

func (e BaseEvent) Payload() interface{} {
	return e.Data
}

// Handler consumes a single event. Returned errors are logged, never retried.
type Handler func(ctx context.Context, event Event) error

type EventBus struct {
	mu       sync.RWMutex
	subs     map[string][]Handler
	inflight sync.WaitGroup
	logger   *slog.Logger
}

func NewEventBus(logger *slog.Logger) *EventBus {
	return &EventBus{
		subs:   make(map[string][]Handler),
		logger: logger,
	}
}

func (b *EventBus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	b.subs[eventType] = append(b.subs[eventType], handler)
	total := len(b.subs[eventType])
	b.mu.Unlock()

	b.logger.Info("event handler registered",
		"event_type", eventType,
		"total_handlers", total)
}

// Publish fans the event out to every subscriber of its type. Each handler
// runs in its own goroutine; a panic or error in one handler stays there.
func (b *EventBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	subs := b.subs[event.EventType()]
	b.mu.RUnlock()

	if len(subs) == 0 {
		b.logger.Debug("no handlers for event type", "event_type", event.EventType())
		return nil
	}

	b.logger.Info("publishing event",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"handlers_count", len(subs))

	for _, handler := range subs {
		b.inflight.Add(1)
		go b.dispatch(ctx, event, handler)
	}
	return nil
}

func (b *EventBus) dispatch(ctx context.Context, event Event, handler Handler) {
	defer b.inflight.Done()
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error("event handler panicked",
				"event_type", event.EventType(),
				"event_id", event.EventID(),
				"panic", rec)
		}
	}()

	if err := handler(ctx, event); err != nil {
		b.logger.Error("event handler failed",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"error", err)
	}
}

// Drain blocks until every handler started so far has returned, or until the
// context expires. Called on shutdown so pending notifications are not lost.
func (b *EventBus) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
