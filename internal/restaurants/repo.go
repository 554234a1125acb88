package restaurants

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"platehub/pkg/models"
	"platehub/pkg/store"
)

var ErrNotFound = errors.New("restaurant not found")

// Repo owns the directory record: one hash per restaurant holding
// identity, the running rating total, the rounded average and the view
// counter. The total/average fields are written only through the review
// coordinator's pipeline; everything else is written here.
type Repo struct {
	RDB *redis.Client
}

func NewRepo(rdb *redis.Client) *Repo {
	return &Repo{RDB: rdb}
}

// Create allocates an id and stores the directory record with zeroed
// rating state. Feeding the bloom filter is best-effort: a missing
// probabilistic module only disables the guard's fast path.
func (r *Repo) Create(ctx context.Context, name, location string) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{
		ID:       uuid.NewString(),
		Name:     name,
		Location: location,
	}

	err := r.RDB.HSet(ctx, store.RestaurantKey(restaurant.ID),
		"id", restaurant.ID,
		"name", restaurant.Name,
		"location", restaurant.Location,
		"total_stars", 0,
		"avg_stars", 0,
		"view_count", 0,
	).Err()
	if err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	_ = r.RDB.BFAdd(ctx, store.BloomKey, restaurant.ID).Err()

	return restaurant, nil
}

// Get fetches the record and registers one view. The increment and the
// read run in a single pipeline so concurrent calls each count exactly
// once and read their own increment.
func (r *Repo) Get(ctx context.Context, id string) (*models.Restaurant, error) {
	pipe := r.RDB.Pipeline()
	pipe.HIncrBy(ctx, store.RestaurantKey(id), "view_count", 1)
	getCmd := pipe.HGetAll(ctx, store.RestaurantKey(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("get restaurant: %w", err)
	}

	fields, err := getCmd.Result()
	if err != nil {
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	// The increment manufactures a view_count field even on a missing
	// record, so absence is judged by the id field. The guard keeps this
	// path from running for unknown ids in the HTTP flow.
	if fields["id"] == "" {
		return nil, ErrNotFound
	}

	var restaurant models.Restaurant
	if err := getCmd.Scan(&restaurant); err != nil {
		return nil, fmt.Errorf("scan restaurant: %w", err)
	}
	return &restaurant, nil
}

// GetByIDs fetches directory records in the given order, skipping ids
// with no record. View counts are not touched; only Get counts a view.
func (r *Repo) GetByIDs(ctx context.Context, ids []string) ([]models.Restaurant, error) {
	if len(ids) == 0 {
		return []models.Restaurant{}, nil
	}

	pipe := r.RDB.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, pipe.HGetAll(ctx, store.RestaurantKey(id)))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("get restaurants: %w", err)
	}

	out := make([]models.Restaurant, 0, len(ids))
	for _, cmd := range cmds {
		fields, err := cmd.Result()
		if err != nil || len(fields) == 0 {
			continue
		}
		var restaurant models.Restaurant
		if err := cmd.Scan(&restaurant); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		out = append(out, restaurant)
	}
	return out, nil
}

// Exists is the existence guard's query. The bloom filter answers
// definite misses without touching the directory key; any filter error
// (module absent, filter not seeded) is inconclusive and falls through
// to EXISTS.
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	if maybe, err := r.RDB.BFExists(ctx, store.BloomKey, id).Result(); err == nil && !maybe {
		return false, nil
	}

	n, err := r.RDB.Exists(ctx, store.RestaurantKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("restaurant exists: %w", err)
	}
	return n > 0, nil
}

// ApplyReviewTx queues the rating contribution on the coordinator's
// pipeline. The returned FloatCmd resolves to the post-increment total,
// which together with the ledger push's length gives the coordinator a
// consistent (total, count) pair.
func (r *Repo) ApplyReviewTx(ctx context.Context, pipe redis.Pipeliner, id string, rating int) *redis.FloatCmd {
	return pipe.HIncrByFloat(ctx, store.RestaurantKey(id), "total_stars", float64(rating))
}

// SetAverageTx queues the rounded-average write; committed in the same
// batch as the leaderboard upsert so the two never diverge.
func (r *Repo) SetAverageTx(ctx context.Context, pipe redis.Pipeliner, id string, avg float64) {
	pipe.HSet(ctx, store.RestaurantKey(id), "avg_stars", avg)
}
