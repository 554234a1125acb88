package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"platehub/pkg/models"
	"platehub/pkg/store"
)

var ErrReviewNotFound = errors.New("review not found")

// Ledger owns the per-restaurant review sequence and the detail record
// per review. The sequence is newest-first: ids are pushed to the front
// and never reordered.
type Ledger struct {
	RDB *redis.Client
}

func NewLedger(rdb *redis.Client) *Ledger {
	return &Ledger{RDB: rdb}
}

// AppendTx queues the ledger push and the detail-record write on the
// coordinator's pipeline. The returned IntCmd resolves to the ledger
// length after the push, which is the review count for this restaurant.
func (l *Ledger) AppendTx(ctx context.Context, pipe redis.Pipeliner, review models.Review) *redis.IntCmd {
	pipe.HSet(ctx, store.ReviewDetailsKey(review.ID),
		"id", review.ID,
		"restaurant_id", review.RestaurantID,
		"rating", review.Rating,
		"comment", review.Comment,
		"timestamp", review.Timestamp,
	)
	return pipe.LPush(ctx, store.ReviewsKey(review.RestaurantID), review.ID)
}

// Page returns up to end-start+1 reviews newest first. A start past the
// ledger length yields an empty slice, not an error.
func (l *Ledger) Page(ctx context.Context, restaurantID string, start, end int64) ([]models.Review, error) {
	ids, err := l.RDB.LRange(ctx, store.ReviewsKey(restaurantID), start, end).Result()
	if err != nil {
		return nil, fmt.Errorf("page reviews: %w", err)
	}
	if len(ids) == 0 {
		return []models.Review{}, nil
	}

	pipe := l.RDB.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, pipe.HGetAll(ctx, store.ReviewDetailsKey(id)))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("page review details: %w", err)
	}

	out := make([]models.Review, 0, len(ids))
	for _, cmd := range cmds {
		fields, err := cmd.Result()
		if err != nil || len(fields) == 0 {
			// A ledger id whose detail record was already deleted; the
			// remove path tolerates that half-state, so the page does too.
			continue
		}
		var review models.Review
		if err := cmd.Scan(&review); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, review)
	}
	return out, nil
}

// Remove deletes every ledger occurrence of reviewID and its detail
// record. It reports ErrReviewNotFound only when both finds nothing, so
// a prior partial failure that removed one side can still be cleaned up.
func (l *Ledger) Remove(ctx context.Context, restaurantID, reviewID string) error {
	pipe := l.RDB.Pipeline()
	remCmd := pipe.LRem(ctx, store.ReviewsKey(restaurantID), 0, reviewID)
	delCmd := pipe.Del(ctx, store.ReviewDetailsKey(reviewID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("remove review: %w", err)
	}

	if remCmd.Val() == 0 && delCmd.Val() == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// Len reports the current ledger length for one restaurant.
func (l *Ledger) Len(ctx context.Context, restaurantID string) (int64, error) {
	n, err := l.RDB.LLen(ctx, store.ReviewsKey(restaurantID)).Result()
	if err != nil {
		return 0, fmt.Errorf("ledger length: %w", err)
	}
	return n, nil
}
