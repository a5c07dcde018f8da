package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/posthog/posthog-go"
)

// PostHogHandler forwards events to PostHog.
type PostHogHandler struct {
	client posthog.Client
}

// NewPostHogHandler creates a PostHogHandler.
func NewPostHogHandler(client posthog.Client) *PostHogHandler {
	return &PostHogHandler{client: client}
}

func (h *PostHogHandler) HandleEvent(_ context.Context, event Event) error {
	properties := posthog.NewProperties()
	for key, value := range event.Payload {
		properties.Set(key, value)
	}

	slog.Debug("sending event to PostHog", "event_type", event.Type, "user_id", event.UserID)

	err := h.client.Enqueue(posthog.Capture{
		DistinctId: event.UserID,
		Event:      string(event.Type),
		Timestamp:  event.TriggeredAt,
		Properties: properties,
	})
	if err != nil {
		return fmt.Errorf("enqueue posthog event: %w", err)
	}

	return nil
}

var _ EventHandler = (*PostHogHandler)(nil)
