package cuisines

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"platehub/pkg/store"
)

// Repo keeps cuisine membership in three set families: the global set of
// known cuisine names, one set of restaurant ids per cuisine, and one set
// of cuisine names per restaurant. All writes are SADD, so registering the
// same pair twice is a no-op.
type Repo struct {
	RDB *redis.Client
}

func NewRepo(rdb *redis.Client) *Repo {
	return &Repo{RDB: rdb}
}

// Register records restaurantID under each cuisine. Called once, at
// restaurant creation; there is no unregister in the current flows.
func (r *Repo) Register(ctx context.Context, restaurantID string, cuisines []string) error {
	if len(cuisines) == 0 {
		return nil
	}
	pipe := r.RDB.Pipeline()
	for _, cuisine := range cuisines {
		pipe.SAdd(ctx, store.CuisinesKey(), cuisine)
		pipe.SAdd(ctx, store.CuisineKey(cuisine), restaurantID)
		pipe.SAdd(ctx, store.RestaurantCuisinesKey(restaurantID), cuisine)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("register cuisines: %w", err)
	}
	return nil
}

func (r *Repo) ListCuisines(ctx context.Context) ([]string, error) {
	names, err := r.RDB.SMembers(ctx, store.CuisinesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list cuisines: %w", err)
	}
	return names, nil
}

func (r *Repo) ListRestaurantsByCuisine(ctx context.Context, cuisine string) ([]string, error) {
	ids, err := r.RDB.SMembers(ctx, store.CuisineKey(cuisine)).Result()
	if err != nil {
		return nil, fmt.Errorf("list restaurants by cuisine: %w", err)
	}
	return ids, nil
}

func (r *Repo) ListCuisinesOf(ctx context.Context, restaurantID string) ([]string, error) {
	names, err := r.RDB.SMembers(ctx, store.RestaurantCuisinesKey(restaurantID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list cuisines of restaurant: %w", err)
	}
	return names, nil
}
