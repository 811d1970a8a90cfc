package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parkpal/parkpal-backend/config"
)

// RateLimiterInterface defines the contract for rate limiting operations.
type RateLimiterInterface interface {
	CheckLimit(ctx context.Context, key string, limit int, duration time.Duration) (bool, time.Duration, error)
	AllowChat(ctx context.Context, clientID string) (bool, time.Duration, error)
}

// RateLimitService provides fixed-window rate limiting backed by Redis. The
// chat endpoint is the only rate-limited surface; the completion provider
// bills per token, so a single client must not be able to drain the quota.
type RateLimitService struct {
	redis     *redis.Client
	keyPrefix string
	cfg       config.RateLimitConfig
}

var _ RateLimiterInterface = (*RateLimitService)(nil)

func NewRateLimitService(redisClient *redis.Client, cfg config.RateLimitConfig) *RateLimitService {
	return &RateLimitService{
		redis:     redisClient,
		keyPrefix: "rate_limit:",
		cfg:       cfg,
	}
}

// CheckLimit counts one request against key. It returns whether the request
// is allowed and, when denied, how long until the window resets.
func (s *RateLimitService) CheckLimit(ctx context.Context, key string, limit int, duration time.Duration) (bool, time.Duration, error) {
	rKey := s.keyPrefix + key

	pipe := s.redis.Pipeline()
	incr := pipe.Incr(ctx, rKey)
	pipe.Expire(ctx, rKey, duration)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	if incr.Val() > int64(limit) {
		ttl, err := s.redis.TTL(ctx, rKey).Result()
		if err != nil {
			return false, 0, err
		}
		return false, ttl, nil
	}
	return true, 0, nil
}

// AllowChat applies the configured chat limit for one client.
func (s *RateLimitService) AllowChat(ctx context.Context, clientID string) (bool, time.Duration, error) {
	window := time.Duration(s.cfg.WindowSeconds) * time.Second
	return s.CheckLimit(ctx, "chat:"+clientID, s.cfg.ChatRequestsPerMinute, window)
}
