// Package changefeed carries "row changed" notifications between writers and live views.
package changefeed

import (
	"context"
	"log/slog"
	"sync"

	"neighborhood/internal/domain/entity"
	"neighborhood/internal/domain/service"
)

// hub fans events out to the subscriptions registered in this process.
type hub struct {
	logger *slog.Logger

	mu   sync.RWMutex
	next uint64
	subs map[uint64]*subscription
}

type subscription struct {
	id         uint64
	collection string
	filter     entity.ChangeFilter
	handler    service.ChangeHandler
	hub        *hub
	once       sync.Once
}

func newHub(logger *slog.Logger) *hub {
	return &hub{
		logger: logger,
		subs:   make(map[uint64]*subscription),
	}
}

func (h *hub) add(collection string, filter entity.ChangeFilter, handler service.ChangeHandler) *subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.next++
	sub := &subscription{
		id:         h.next,
		collection: collection,
		filter:     filter,
		handler:    handler,
		hub:        h,
	}
	h.subs[sub.id] = sub

	return sub
}

func (h *hub) remove(id uint64) {
	h.mu.Lock()
	delete(h.subs, id)
	h.mu.Unlock()
}

func (h *hub) clear() {
	h.mu.Lock()
	h.subs = make(map[uint64]*subscription)
	h.mu.Unlock()
}

func (h *hub) size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs)
}

// dispatch calls every matching handler synchronously. Handlers must not block.
func (h *hub) dispatch(ctx context.Context, event entity.ChangeEvent) {
	h.mu.RLock()
	matched := make([]*subscription, 0, len(h.subs))
	for _, sub := range h.subs {
		if sub.collection == event.Collection && sub.filter.Matches(event.Type) {
			matched = append(matched, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range matched {
		h.invoke(ctx, sub, event)
	}
}

func (h *hub) invoke(ctx context.Context, sub *subscription, event entity.ChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.ErrorContext(ctx, "Change handler panicked",
				slog.String("collection", event.Collection),
				slog.Any("panic", r),
			)
		}
	}()

	sub.handler(ctx, event)
}

// Unsubscribe removes the subscription from its hub.
func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.remove(s.id)
	})
}
