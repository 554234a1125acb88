// Package leaderboard maintains the rating-ordered index of restaurants.
// Every restaurant has exactly one entry; the score mirrors the directory
// record's rounded average. Ordering among equal scores is whatever the
// sorted set yields and callers must not depend on it.
package leaderboard

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"platehub/pkg/store"
)

type Board struct {
	RDB *redis.Client
}

func NewBoard(rdb *redis.Client) *Board {
	return &Board{RDB: rdb}
}

// Upsert inserts the restaurant or moves it to match score.
func (b *Board) Upsert(ctx context.Context, restaurantID string, score float64) error {
	err := b.RDB.ZAdd(ctx, store.RestaurantsByRatingKey, redis.Z{
		Score:  score,
		Member: restaurantID,
	}).Err()
	if err != nil {
		return fmt.Errorf("zadd leaderboard: %w", err)
	}
	return nil
}

// UpsertTx queues the same write on a caller-owned pipeline so it can be
// committed atomically alongside the directory's average update.
func (b *Board) UpsertTx(ctx context.Context, pipe redis.Pipeliner, restaurantID string, score float64) {
	pipe.ZAdd(ctx, store.RestaurantsByRatingKey, redis.Z{
		Score:  score,
		Member: restaurantID,
	})
}

// RangeDesc returns restaurant ids ranked highest score first. start/stop
// are inclusive zero-based ranks; a start past the end yields an empty
// slice.
func (b *Board) RangeDesc(ctx context.Context, start, stop int64) ([]string, error) {
	ids, err := b.RDB.ZRevRange(ctx, store.RestaurantsByRatingKey, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("zrevrange leaderboard: %w", err)
	}
	return ids, nil
}

// Score reports the current score for one restaurant. The bool is false
// when the restaurant has no entry.
func (b *Board) Score(ctx context.Context, restaurantID string) (float64, bool, error) {
	score, err := b.RDB.ZScore(ctx, store.RestaurantsByRatingKey, restaurantID).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("zscore leaderboard: %w", err)
	}
	return score, true, nil
}
