package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"neighborhood/config"
	"neighborhood/internal/domain/entity"
	"neighborhood/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const profileKeyPrefix = "profile:header:"

// ProfileCacheParams holds dependencies for the profile cache.
type ProfileCacheParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Redis  *redis.Client `optional:"true"`
}

// NewProfileCache returns the redis cache when redis is enabled and an in-process map otherwise.
func NewProfileCache(params ProfileCacheParams) service.ProfileCache {
	if params.Redis == nil {
		return NewMemoryProfileCache()
	}

	return NewRedisProfileCache(params.Redis, params.Config.Redis.ProfileCacheTTL)
}

type redisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProfileCache stores header profiles as JSON with a TTL.
func NewRedisProfileCache(client *redis.Client, ttl time.Duration) service.ProfileCache {
	return &redisProfileCache{client: client, ttl: ttl}
}

func (c *redisProfileCache) Get(ctx context.Context, userID uuid.UUID) (*entity.HeaderProfile, error) {
	data, err := c.client.Get(ctx, profileKeyPrefix+userID.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, service.ErrCacheMiss
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var profile entity.HeaderProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, errors.WithStack(err)
	}

	return &profile, nil
}

func (c *redisProfileCache) Set(ctx context.Context, profile *entity.HeaderProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.client.Set(ctx, profileKeyPrefix+profile.UserID.String(), data, c.ttl).Err())
}

func (c *redisProfileCache) Delete(ctx context.Context, userID uuid.UUID) error {
	return errors.WithStack(c.client.Del(ctx, profileKeyPrefix+userID.String()).Err())
}

type memoryProfileCache struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]entity.HeaderProfile
}

// NewMemoryProfileCache keeps header profiles in process memory.
func NewMemoryProfileCache() service.ProfileCache {
	return &memoryProfileCache{profiles: make(map[uuid.UUID]entity.HeaderProfile)}
}

func (c *memoryProfileCache) Get(_ context.Context, userID uuid.UUID) (*entity.HeaderProfile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.profiles[userID]
	if !ok {
		return nil, service.ErrCacheMiss
	}

	return &p, nil
}

func (c *memoryProfileCache) Set(_ context.Context, profile *entity.HeaderProfile) error {
	c.mu.Lock()
	c.profiles[profile.UserID] = *profile
	c.mu.Unlock()

	return nil
}

func (c *memoryProfileCache) Delete(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	delete(c.profiles, userID)
	c.mu.Unlock()

	return nil
}
