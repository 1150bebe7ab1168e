package service

import (
	"context"

	"neighborhood/internal/domain/entity"
)

// ChangeHandler receives change events for a subscribed collection. Events may be
// duplicated or arrive out of order.
type ChangeHandler func(ctx context.Context, event entity.ChangeEvent)

// Subscription is a live registration on a ChangeFeed.
type Subscription interface {
	// Unsubscribe stops delivery. It is safe to call more than once.
	Unsubscribe()
}

// ChangeFeed carries "row changed" notifications between writers and live views.
type ChangeFeed interface {
	// Publish announces a change. Delivery is best effort.
	Publish(ctx context.Context, event entity.ChangeEvent) error

	// Subscribe registers a handler for changes to a collection matching the filter.
	Subscribe(collection string, filter entity.ChangeFilter, handler ChangeHandler) (Subscription, error)

	// Close stops the transport and drops every subscription.
	Close() error
}
