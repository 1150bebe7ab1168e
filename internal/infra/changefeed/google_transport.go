package changefeed

import (
	"context"
	"fmt"
	"log/slog"

	"neighborhood/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

type googleTransport struct {
	client     *pubsub.Client
	publisher  *pubsub.Publisher
	subscriber *pubsub.Subscriber
}

// NewGoogleFeed returns a change feed over a Google Cloud Pub/Sub topic. Each API
// instance needs its own subscription to see every change.
func NewGoogleFeed(ctx context.Context, projectID, topicID, subscriptionID string, logger *slog.Logger) (service.ChangeFeed, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topicPath}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "failed to get topic %s", topicID)
	}

	logger.Info("Google Pub/Sub change feed initialized",
		slog.String("project_id", projectID),
		slog.String("topic_id", topicID),
		slog.String("subscription_id", subscriptionID),
	)

	return newTransportFeed(&googleTransport{
		client:     client,
		publisher:  client.Publisher(topicID),
		subscriber: client.Subscriber(subscriptionID),
	}, logger), nil
}

func (t *googleTransport) name() string { return "google" }

func (t *googleTransport) publish(ctx context.Context, data []byte) error {
	result := t.publisher.Publish(ctx, &pubsub.Message{Data: data})
	_, err := result.Get(ctx)

	return err
}

func (t *googleTransport) receive(ctx context.Context, deliver func(ctx context.Context, data []byte)) error {
	return t.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		deliver(ctx, msg.Data)
		msg.Ack()
	})
}

func (t *googleTransport) close() error {
	t.publisher.Stop()

	return errors.WithStack(t.client.Close())
}
