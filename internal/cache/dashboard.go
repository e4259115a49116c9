package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/davidmesa/ventrack/internal/config"
	"github.com/davidmesa/ventrack/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	snapshotKeyPrefix  = "dashboard:snapshot"
	scanBatchSize      = 100
	defaultSnapshotTTL = time.Minute
)

// DashboardCache caches computed dashboard snapshots per date window.
// Writes to either ledger invalidate every cached window.
type DashboardCache interface {
	GetSnapshot(ctx context.Context, rng domain.DateRange) (*domain.DashboardSnapshot, bool, error)
	SetSnapshot(ctx context.Context, rng domain.DateRange, snapshot *domain.DashboardSnapshot) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

// NewDashboardCache returns a redis-backed cache, or a noop cache when
// caching is disabled in config.
func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.SnapshotTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}

	return &redisDashboardCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) GetSnapshot(ctx context.Context, rng domain.DateRange) (*domain.DashboardSnapshot, bool, error) {
	key := buildSnapshotKey(rng)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var snapshot domain.DashboardSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, false, fmt.Errorf("decode dashboard snapshot cache: %w", err)
	}

	return &snapshot, true, nil
}

func (c *redisDashboardCache) SetSnapshot(ctx context.Context, rng domain.DateRange, snapshot *domain.DashboardSnapshot) error {
	key := buildSnapshotKey(rng)
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode dashboard snapshot cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, snapshotKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopDashboardCache) GetSnapshot(ctx context.Context, rng domain.DateRange) (*domain.DashboardSnapshot, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) SetSnapshot(ctx context.Context, rng domain.DateRange, snapshot *domain.DashboardSnapshot) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func buildSnapshotKey(rng domain.DateRange) string {
	if rng.From == nil && rng.To == nil {
		return snapshotKeyPrefix + ":default"
	}

	raw := "from="
	if rng.From != nil {
		raw += rng.From.String()
	}
	raw += "|to="
	if rng.To != nil {
		raw += rng.To.String()
	}

	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", snapshotKeyPrefix, hex.EncodeToString(hash[:]))
}
