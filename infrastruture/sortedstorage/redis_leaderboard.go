package sortedstorage

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

var _ i.Leaderboard = &RedisLeaderboard{}

// RedisLeaderboard keeps each player's best score in a Redis sorted set with TTL support.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	key    string
	ttl    time.Duration
}

// NewRedisLeaderboard initializes a RedisLeaderboard stored under key with the provided Redis client and TTL.
func NewRedisLeaderboard(client *redis.Client, key string, ttlSeconds int) *RedisLeaderboard {
	board := &RedisLeaderboard{
		client: client,
		key:    key,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board
}

// Submit stores score for player if it beats the player's previous best.
func (rl *RedisLeaderboard) Submit(ctx context.Context, player string, score int) error {
	mutex := rl.locker.NewMutex(rl.key + ":" + player + ":lock")
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	best, err := rl.client.ZScore(ctx, rl.key, player).Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return err
	case best >= float64(score):
		return nil
	}

	if err := rl.client.ZAdd(ctx, rl.key, redis.Z{Score: float64(score), Member: player}).Err(); err != nil {
		return err
	}

	// Set expiration only if it's not already set
	ttl, err := rl.client.TTL(ctx, rl.key).Result()
	if err == nil && ttl == -1 {
		_ = rl.client.Expire(ctx, rl.key, rl.ttl).Err()
	}

	return nil
}

// Top returns up to n players with the highest scores first.
func (rl *RedisLeaderboard) Top(ctx context.Context, n int64) ([]dmn.Score, error) {
	if n <= 0 {
		return []dmn.Score{}, nil
	}

	entries, err := rl.client.ZRevRangeWithScores(ctx, rl.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]dmn.Score, 0, len(entries))
	for _, e := range entries {
		player, _ := e.Member.(string)
		scores = append(scores, dmn.Score{Player: player, Points: int(e.Score)})
	}
	return scores, nil
}

// Count returns the number of players on the leaderboard.
func (rl *RedisLeaderboard) Count(ctx context.Context) (int64, error) {
	return rl.client.ZCard(ctx, rl.key).Result()
}
