package changefeed

import (
	"context"
	"log/slog"

	"neighborhood/internal/domain/entity"
	"neighborhood/internal/domain/service"
)

// memoryFeed delivers events to subscribers of the same process only.
type memoryFeed struct {
	hub *hub
}

// NewMemoryFeed returns a single-process change feed.
func NewMemoryFeed(logger *slog.Logger) service.ChangeFeed {
	return &memoryFeed{hub: newHub(logger)}
}

func (f *memoryFeed) Publish(ctx context.Context, event entity.ChangeEvent) error {
	f.hub.dispatch(ctx, event)

	return nil
}

func (f *memoryFeed) Subscribe(collection string, filter entity.ChangeFilter, handler service.ChangeHandler) (service.Subscription, error) {
	return f.hub.add(collection, filter, handler), nil
}

func (f *memoryFeed) Close() error {
	f.hub.clear()

	return nil
}
