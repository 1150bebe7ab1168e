package changefeed

import (
	"context"
	"log/slog"

	"neighborhood/config"
	"neighborhood/internal/domain/constants"
	"neighborhood/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params holds dependencies for the ChangeFeed, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
	Redis  *redis.Client `optional:"true"`
}

// New creates the ChangeFeed selected by changeFeed.provider.
func New(params Params) (service.ChangeFeed, error) {
	cfg := params.Config.ChangeFeed
	logger := params.Logger

	var (
		feed service.ChangeFeed
		err  error
	)

	switch cfg.Provider {
	case constants.ChangeFeedProviderMemory, "":
		logger.Info("Using in-process change feed")
		feed = NewMemoryFeed(logger)

	case constants.ChangeFeedProviderRedis:
		feed, err = NewRedisFeed(params.Ctx, params.Redis, cfg.Channel, logger)

	case constants.ChangeFeedProviderGoogle:
		if cfg.ProjectID == "" || cfg.TopicID == "" || cfg.SubscriptionID == "" {
			return nil, errors.New("project, topic and subscription IDs are required for the google provider")
		}
		feed, err = NewGoogleFeed(params.Ctx, cfg.ProjectID, cfg.TopicID, cfg.SubscriptionID, logger)

	case constants.ChangeFeedProviderKafka:
		feed, err = NewKafkaFeed(cfg.Brokers, cfg.Topic, cfg.GroupID, logger)

	default:
		return nil, errors.Errorf("unknown change feed provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing change feed", slog.String("provider", cfg.Provider))

			return feed.Close()
		},
	})

	return feed, nil
}

// Module provides the change feed FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
