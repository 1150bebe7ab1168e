package changefeed

import (
	"context"
	"log/slog"

	"neighborhood/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type redisTransport struct {
	client  *redis.Client
	channel string
	sub     *redis.PubSub
}

// NewRedisFeed returns a change feed over a redis PUBLISH/SUBSCRIBE channel.
// The subscription is confirmed before returning so no publish after it is missed.
func NewRedisFeed(ctx context.Context, client *redis.Client, channel string, logger *slog.Logger) (service.ChangeFeed, error) {
	if client == nil {
		return nil, errors.New("redis change feed requires redis to be enabled")
	}
	if channel == "" {
		return nil, errors.New("redis change feed requires a channel")
	}

	sub := client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()

		return nil, errors.Wrapf(err, "subscribe to %s", channel)
	}

	return newTransportFeed(&redisTransport{client: client, channel: channel, sub: sub}, logger), nil
}

func (t *redisTransport) name() string { return "redis" }

func (t *redisTransport) publish(ctx context.Context, data []byte) error {
	return t.client.Publish(ctx, t.channel, data).Err()
}

func (t *redisTransport) receive(ctx context.Context, deliver func(ctx context.Context, data []byte)) error {
	ch := t.sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			deliver(ctx, []byte(msg.Payload))
		}
	}
}

func (t *redisTransport) close() error {
	return t.sub.Close()
}
