package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// GameStats is the cached aggregate of a game's reviews.
type GameStats struct {
	AverageRating float64
	TotalReviews  int64
}

// StatsCache holds computed game statistics in Redis. A nil *StatsCache is a
// valid no-op cache so the API runs without Redis.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache connects to redisURL (redis://[:password@]host:port/db) and verifies the connection.
func NewStatsCache(redisURL, password string, ttl time.Duration) (*StatsCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewStatsCacheFromClient(rdb, ttl), nil
}

// NewStatsCacheFromClient wraps an existing client.
func NewStatsCacheFromClient(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

func statsKey(gameID int64) string {
	return fmt.Sprintf("stats:game:%d", gameID)
}

// bumped by every invalidation; Set only writes when it is unchanged
func versionKey(gameID int64) string {
	return fmt.Sprintf("stats:game:%d:v", gameID)
}

var errStaleStats = errors.New("stats version changed")

// Get returns (nil, nil) on a cache miss.
func (c *StatsCache) Get(ctx context.Context, gameID int64) (*GameStats, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	fields, err := c.client.HGetAll(ctx, statsKey(gameID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil // Not found
	}

	avg, err := strconv.ParseFloat(fields["average_rating"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid average_rating for game %d: %w", gameID, err)
	}
	total, err := strconv.ParseInt(fields["total_reviews"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid total_reviews for game %d: %w", gameID, err)
	}
	return &GameStats{AverageRating: avg, TotalReviews: total}, nil
}

// Version returns the invalidation counter of a game, 0 if it was never invalidated.
func (c *StatsCache) Version(ctx context.Context, gameID int64) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	v, err := c.client.Get(ctx, versionKey(gameID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}
	return v, nil
}

// Set stores stats computed while the game was at version. The write is
// dropped when an invalidation happened in between.
func (c *StatsCache) Set(ctx context.Context, gameID, version int64, stats GameStats) error {
	if c == nil || c.client == nil {
		return nil
	}
	key, vkey := statsKey(gameID), versionKey(gameID)

	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleStats
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, map[string]any{
				"average_rating": strconv.FormatFloat(stats.AverageRating, 'f', -1, 64),
				"total_reviews":  stats.TotalReviews,
			})
			pipe.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, vkey)

	if errors.Is(err, errStaleStats) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Invalidate drops the cached stats of a game and bumps its version.
func (c *StatsCache) Invalidate(ctx context.Context, gameID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(gameID))
		pipe.Del(ctx, statsKey(gameID))
		return nil
	})
	return err
}

func (c *StatsCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
