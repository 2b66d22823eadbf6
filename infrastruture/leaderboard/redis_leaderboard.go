// Package leaderboard keeps the best step counts of finished runs in a Redis sorted set.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-depths/domain"
	"github.com/beka-birhanu/vinom-depths/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const lockKeyFmt = "%s:%s:record_lock"

// RedisLeaderboard is a sorted set scored by steps, lowest first.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	key    string
	ttl    time.Duration
}

// NewRedisLeaderboard initializes a RedisLeaderboard stored under key. A ttl of
// zero keeps the set forever.
func NewRedisLeaderboard(client *redis.Client, key string, ttlSeconds int) i.Leaderboard {
	board := &RedisLeaderboard{
		client: client,
		key:    key,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board
}

// Record stores steps for player unless the stored score is already lower or equal.
// The read-compare-write runs under a per-player distributed lock.
func (l *RedisLeaderboard) Record(ctx context.Context, player string, steps int) error {
	mutex := l.locker.NewMutex(fmt.Sprintf(lockKeyFmt, l.key, player))
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	best, err := l.client.ZScore(ctx, l.key, player).Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return err
	case best <= float64(steps):
		return nil
	}

	if err := l.client.ZAdd(ctx, l.key, redis.Z{Score: float64(steps), Member: player}).Err(); err != nil {
		return err
	}

	// Set expiration only if it's not already set
	if l.ttl > 0 {
		ttl, err := l.client.TTL(ctx, l.key).Result()
		if err == nil && ttl == -1 {
			_ = l.client.Expire(ctx, l.key, l.ttl).Err()
		}
	}
	return nil
}

// Top returns up to n scores, fewest steps first.
func (l *RedisLeaderboard) Top(ctx context.Context, n int64) ([]dmn.Score, error) {
	if n <= 0 {
		return []dmn.Score{}, nil
	}

	entries, err := l.client.ZRangeWithScores(ctx, l.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]dmn.Score, 0, len(entries))
	for _, e := range entries {
		player, ok := e.Member.(string)
		if !ok {
			continue
		}
		scores = append(scores, dmn.Score{Player: player, Steps: int(e.Score)})
	}
	return scores, nil
}
