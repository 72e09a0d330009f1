package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/personacore/sentinel/pkg/common"
	"github.com/personacore/sentinel/pkg/domain/profile"
	"github.com/personacore/sentinel/pkg/types"
)

const (
	ProfileKeyPattern = "safety:profile:%s"
	SummaryKeyPattern = "safety:summary:%s"
)

// Cache fronts the safety-profile store with a short-TTL redis layer. It is
// strictly an optimization: every method's error is recoverable by falling
// through to the database.
type Cache struct {
	client *redis.Client
}

func NewCache(config common.CacheConfig) (*Cache, error) {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	}
	if config.TLS {
		options.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402
		}
	}
	client := redis.NewClient(options)

	return &Cache{client: client}, nil
}

// NewCacheWithClient is used by tests with a redismock client.
func NewCacheWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Client() *redis.Client {
	return c.client
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *Cache) GetProfile(ctx context.Context, userID string) (*profile.SafetyProfile, error) {
	raw, err := c.Get(ctx, fmt.Sprintf(ProfileKeyPattern, userID))
	if err != nil {
		return nil, err
	}
	var p profile.SafetyProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached profile: %w", err)
	}
	return &p, nil
}

func (c *Cache) SaveProfile(ctx context.Context, p *profile.SafetyProfile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return c.Set(ctx, fmt.Sprintf(ProfileKeyPattern, p.UserID.String()), string(raw), common.ProfileCacheTTL)
}

func (c *Cache) InvalidateProfile(ctx context.Context, userID string) error {
	if err := c.Delete(ctx, fmt.Sprintf(ProfileKeyPattern, userID)); err != nil {
		return err
	}
	return c.Delete(ctx, fmt.Sprintf(SummaryKeyPattern, userID))
}

func (c *Cache) GetSummary(ctx context.Context, userID string) (*types.BehaviorSummary, error) {
	raw, err := c.Get(ctx, fmt.Sprintf(SummaryKeyPattern, userID))
	if err != nil {
		return nil, err
	}
	var s types.BehaviorSummary
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached summary: %w", err)
	}
	return &s, nil
}

func (c *Cache) SaveSummary(ctx context.Context, s *types.BehaviorSummary) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	return c.Set(ctx, fmt.Sprintf(SummaryKeyPattern, s.UserID.String()), string(raw), common.SummaryCacheTTL)
}
