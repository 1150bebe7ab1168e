package changefeed

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"neighborhood/internal/domain/entity"
	"neighborhood/internal/domain/service"

	"github.com/pkg/errors"
)

// transport moves encoded events through an external broker.
type transport interface {
	name() string
	publish(ctx context.Context, data []byte) error
	// receive blocks, passing every payload to deliver, until ctx ends.
	receive(ctx context.Context, deliver func(ctx context.Context, data []byte)) error
	close() error
}

// transportFeed publishes through a broker and dispatches what the broker delivers back,
// so that every API instance sees every change.
type transportFeed struct {
	hub       *hub
	transport transport
	logger    *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func newTransportFeed(t transport, logger *slog.Logger) *transportFeed {
	ctx, cancel := context.WithCancel(context.Background())
	f := &transportFeed{
		hub:       newHub(logger),
		transport: t,
		logger:    logger,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	go f.run(ctx)

	return f
}

func (f *transportFeed) run(ctx context.Context) {
	defer close(f.done)

	err := f.transport.receive(ctx, f.deliver)
	if err != nil && ctx.Err() == nil {
		f.logger.Error("Change feed receiver stopped",
			slog.String("transport", f.transport.name()),
			slog.Any("error", err),
		)
	}
}

func (f *transportFeed) deliver(ctx context.Context, data []byte) {
	var event entity.ChangeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		f.logger.Warn("Dropping malformed change event",
			slog.String("transport", f.transport.name()),
			slog.Any("error", err),
		)

		return
	}

	f.hub.dispatch(ctx, event)
}

func (f *transportFeed) Publish(ctx context.Context, event entity.ChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := f.transport.publish(ctx, data); err != nil {
		return errors.Wrapf(err, "publish change event via %s", f.transport.name())
	}

	return nil
}

func (f *transportFeed) Subscribe(collection string, filter entity.ChangeFilter, handler service.ChangeHandler) (service.Subscription, error) {
	return f.hub.add(collection, filter, handler), nil
}

func (f *transportFeed) Close() error {
	var err error
	f.once.Do(func() {
		f.cancel()
		f.hub.clear()
		err = f.transport.close()
		<-f.done
	})

	return err
}
