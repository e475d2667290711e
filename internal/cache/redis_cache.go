package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/pkg/models"
	"github.com/redis/go-redis/v9"
)

// DefaultAveragesTTL bounds how long computed averages are served from cache
const DefaultAveragesTTL = 6 * time.Hour

// ErrMiss is returned when a key is not cached
var ErrMiss = errors.New("cache miss")

// AveragesCache stores computed player and team averages
type AveragesCache interface {
	GetPlayerAverages(ctx context.Context, name string) (*models.PlayerAverages, error)
	SetPlayerAverages(ctx context.Context, name string, avg models.PlayerAverages) error
	GetTeamAverages(ctx context.Context) ([]models.Record, error)
	SetTeamAverages(ctx context.Context, averages []models.Record) error
}

// RedisCache implements AveragesCache on Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a cache on an existing client
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultAveragesTTL
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// PlayerAveragesKey is the cache key for a player; names are case-insensitive
func PlayerAveragesKey(name string) string {
	return fmt.Sprintf("player:%s:averages", strings.ToLower(strings.TrimSpace(name)))
}

const teamAveragesKey = "teams:averages"

// GetPlayerAverages reads cached averages for name
func (c *RedisCache) GetPlayerAverages(ctx context.Context, name string) (*models.PlayerAverages, error) {
	data, err := c.client.Get(ctx, PlayerAveragesKey(name)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("reading player averages: %w", err)
	}

	var avg models.PlayerAverages
	if err := json.Unmarshal(data, &avg); err != nil {
		return nil, fmt.Errorf("unmarshaling player averages: %w", err)
	}

	return &avg, nil
}

// SetPlayerAverages stores averages for name
func (c *RedisCache) SetPlayerAverages(ctx context.Context, name string, avg models.PlayerAverages) error {
	data, err := json.Marshal(avg)
	if err != nil {
		return fmt.Errorf("marshaling player averages: %w", err)
	}

	return c.client.Set(ctx, PlayerAveragesKey(name), data, c.ttl).Err()
}

// GetTeamAverages reads cached team averages
func (c *RedisCache) GetTeamAverages(ctx context.Context) ([]models.Record, error) {
	data, err := c.client.Get(ctx, teamAveragesKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("reading team averages: %w", err)
	}

	var averages []models.Record
	if err := json.Unmarshal(data, &averages); err != nil {
		return nil, fmt.Errorf("unmarshaling team averages: %w", err)
	}

	return averages, nil
}

// SetTeamAverages stores team averages
func (c *RedisCache) SetTeamAverages(ctx context.Context, averages []models.Record) error {
	data, err := json.Marshal(averages)
	if err != nil {
		return fmt.Errorf("marshaling team averages: %w", err)
	}

	return c.client.Set(ctx, teamAveragesKey, data, c.ttl).Err()
}

// Noop is an AveragesCache that never stores anything
type Noop struct{}

// GetPlayerAverages always misses
func (Noop) GetPlayerAverages(ctx context.Context, name string) (*models.PlayerAverages, error) {
	return nil, ErrMiss
}

// SetPlayerAverages discards the value
func (Noop) SetPlayerAverages(ctx context.Context, name string, avg models.PlayerAverages) error {
	return nil
}

// GetTeamAverages always misses
func (Noop) GetTeamAverages(ctx context.Context) ([]models.Record, error) {
	return nil, ErrMiss
}

// SetTeamAverages discards the value
func (Noop) SetTeamAverages(ctx context.Context, averages []models.Record) error {
	return nil
}
