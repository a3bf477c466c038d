package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/hotelops/hms-backend/internal/config"
	"github.com/hotelops/hms-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	reportKeyPrefix  = "report:pl"
	scanBatchSize    = 100
	defaultReportTTL = time.Minute
)

// PLReportCache is a cache-aside layer for generated P&L reports.
// Memoization is a performance optimization only: the costing engine is
// referentially transparent, so a miss simply recomputes.
type PLReportCache interface {
	GetReport(ctx context.Context, filter domain.ReportFilter) (*domain.PLReport, bool, error)
	SetReport(ctx context.Context, filter domain.ReportFilter, report *domain.PLReport) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewPLReportCache(cfg config.CacheConfig) (PLReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
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

	ttl := time.Duration(cfg.ReportTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultReportTTL
	}

	return &redisReportCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopPLReportCache() PLReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetReport(ctx context.Context, filter domain.ReportFilter) (*domain.PLReport, bool, error) {
	key := buildReportKey(filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.PLReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode pl report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisReportCache) SetReport(ctx context.Context, filter domain.ReportFilter, report *domain.PLReport) error {
	key := buildReportKey(filter)
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode pl report cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, reportKeyPrefix+"*", scanBatchSize).Result()
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

func (n *noopReportCache) GetReport(ctx context.Context, filter domain.ReportFilter) (*domain.PLReport, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetReport(ctx context.Context, filter domain.ReportFilter, report *domain.PLReport) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
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

func buildReportKey(filter domain.ReportFilter) string {
	parts := []string{
		"start=" + filter.StartDate.Format("2006-01-02"),
		"end=" + filter.EndDate.Format("2006-01-02"),
	}
	if filter.Department != "" {
		parts = append(parts, "department="+filter.Department)
	}
	if filter.OrderType != "" {
		parts = append(parts, "order_type="+filter.OrderType)
	}
	if filter.Status != "" {
		parts = append(parts, "status="+filter.Status)
	}

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", reportKeyPrefix, hex.EncodeToString(hash[:]))
}
