package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bioaura/platform/backend-go/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	viewKeyPrefix     = "bioaura:view"
	viewScanBatchSize = 100
)

// ViewParams are the request parameters that shape a view payload. Two
// requests with equal normalized params share one cache entry.
type ViewParams struct {
	Days     int
	Limit    int
	Region   string
	State    string
	Category string
}

// ViewCache stores rendered view payloads keyed by view name and a hash of
// the normalized request parameters.
type ViewCache interface {
	Get(ctx context.Context, view string, params ViewParams, out any) (bool, error)
	Set(ctx context.Context, view string, params ViewParams, value any) error
	InvalidateView(ctx context.Context, view string) error
	InvalidateAll(ctx context.Context) error
}

type redisViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopViewCache struct{}

func NewViewCache(cfg config.CacheConfig) (ViewCache, error) {
	if !cfg.Enabled {
		return &noopViewCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisViewCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopViewCache() ViewCache {
	return &noopViewCache{}
}

func (c *redisViewCache) Get(ctx context.Context, view string, params ViewParams, out any) (bool, error) {
	key := buildViewKey(view, params)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return false, fmt.Errorf("decode %s view cache: %w", view, err)
	}
	return true, nil
}

func (c *redisViewCache) Set(ctx context.Context, view string, params ViewParams, value any) error {
	key := buildViewKey(view, params)
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s view cache: %w", view, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisViewCache) InvalidateView(ctx context.Context, view string) error {
	return deleteKeysWithPrefix(ctx, c.client, viewKeyPrefix+":"+view, viewScanBatchSize)
}

func (c *redisViewCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, viewKeyPrefix, viewScanBatchSize)
}

func (n *noopViewCache) Get(ctx context.Context, view string, params ViewParams, out any) (bool, error) {
	return false, nil
}

func (n *noopViewCache) Set(ctx context.Context, view string, params ViewParams, value any) error {
	return nil
}

func (n *noopViewCache) InvalidateView(ctx context.Context, view string) error {
	return nil
}

func (n *noopViewCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildViewKey(view string, params ViewParams) string {
	return fmt.Sprintf("%s:%s:%s", viewKeyPrefix, view, viewParamsHash(params))
}

func viewParamsHash(params ViewParams) string {
	parts := []string{}

	if params.Days > 0 {
		parts = append(parts, fmt.Sprintf("days=%d", params.Days))
	}
	if params.Limit > 0 {
		parts = append(parts, fmt.Sprintf("limit=%d", params.Limit))
	}
	if region := strings.ToLower(strings.TrimSpace(params.Region)); region != "" {
		parts = append(parts, "region="+region)
	}
	if state := strings.ToLower(strings.TrimSpace(params.State)); state != "" {
		parts = append(parts, "state="+state)
	}
	if category := strings.ToLower(strings.TrimSpace(params.Category)); category != "" {
		parts = append(parts, "category="+category)
	}

	if len(parts) == 0 {
		return "default"
	}

	sort.Strings(parts)
	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
