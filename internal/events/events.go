// Package events dispatches analytics events after account operations.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/database-playground/account-eraser/internal/metrics"
	"github.com/database-playground/account-eraser/internal/workers"
	"github.com/posthog/posthog-go"
)

// EventService is the service for triggering events.
type EventService struct {
	handlers []EventHandler
	worker   *workers.Worker
}

// NewEventService creates a new EventService.
//
// posthogClient may be nil, in which case events are only counted.
func NewEventService(posthogClient posthog.Client) *EventService {
	var handlers []EventHandler
	if posthogClient != nil {
		handlers = append(handlers, NewPostHogHandler(posthogClient))
	}

	return NewEventServiceWithHandlers(workers.Global, handlers...)
}

// NewEventServiceWithHandlers creates an EventService dispatching on worker.
func NewEventServiceWithHandlers(worker *workers.Worker, handlers ...EventHandler) *EventService {
	return &EventService{
		handlers: handlers,
		worker:   worker,
	}
}

// Event is the event to be triggered.
type Event struct {
	Type        EventType
	UserID      string
	Payload     map[string]any
	TriggeredAt time.Time
}

// EventHandler is the handler for the event.
//
// You can think it as the callback of the event.
type EventHandler interface {
	HandleEvent(ctx context.Context, event Event) error
}

// TriggerEvent triggers an event in the background.
//
// The event outlives the request that triggered it, so ctx is only used for
// its values.
func (s *EventService) TriggerEvent(ctx context.Context, event Event) {
	if event.TriggeredAt.IsZero() {
		event.TriggeredAt = time.Now()
	}

	detached := context.WithoutCancel(ctx)
	s.worker.Go(func() {
		if err := s.triggerEvent(detached, event); err != nil {
			slog.Error("failed to trigger event", "error", err, "event_type", event.Type)
		}
	})
}

// triggerEvent triggers an event synchronously.
func (s *EventService) triggerEvent(ctx context.Context, event Event) error {
	metrics.RecordEvent(string(event.Type))

	for _, handler := range s.handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			return err
		}
	}

	return nil
}
