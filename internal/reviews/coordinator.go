package reviews

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"platehub/internal/leaderboard"
	"platehub/internal/restaurants"
	"platehub/pkg/models"
)

// Stage tracks how far a submission got, so a partially applied
// submission is observable rather than silent.
type Stage int

const (
	StageValidated Stage = iota
	StageLedgerAppended
	StageTotalsUpdated
	StageLeaderboardSynced
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageValidated:
		return "validated"
	case StageLedgerAppended:
		return "ledger_appended"
	case StageTotalsUpdated:
		return "totals_updated"
	case StageLeaderboardSynced:
		return "leaderboard_synced"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Coordinator is the only writer of a restaurant's rating state. A
// submission runs as two MULTI/EXEC batches: the ledger push, detail
// record and total increment commit together, then the rounded average
// lands on the directory record and the leaderboard together. The
// (total, count) pair for the average is taken from the first batch's
// own return values, never re-read, so concurrent submissions each
// compute from a consistent pair.
//
// A failure between the batches is not rolled back; the ledger and total
// are then ahead of the stored average until the next submission, and
// the returned Stage says so. Review deletion never runs through the
// coordinator: removing a review leaves total, average and leaderboard
// score untouched, matching the service's long-standing behavior.
type Coordinator struct {
	RDB       *redis.Client
	Directory *restaurants.Repo
	Ledger    *Ledger
	Board     *leaderboard.Board
}

func NewCoordinator(rdb *redis.Client, directory *restaurants.Repo, ledger *Ledger, board *leaderboard.Board) *Coordinator {
	return &Coordinator{RDB: rdb, Directory: directory, Ledger: ledger, Board: board}
}

type SubmitResult struct {
	Review  models.Review
	Count   int64
	Total   float64
	Average float64
	Stage   Stage
}

// Submit applies one review. The caller must have passed the existence
// guard already; Submit itself creates state unconditionally.
func (co *Coordinator) Submit(ctx context.Context, restaurantID string, rating int, comment string) (*SubmitResult, error) {
	res := &SubmitResult{
		Stage: StageValidated,
		Review: models.Review{
			ID:           uuid.NewString(),
			RestaurantID: restaurantID,
			Rating:       rating,
			Comment:      comment,
			Timestamp:    time.Now().UnixMilli(),
		},
	}

	batch := co.RDB.TxPipeline()
	pushCmd := co.Ledger.AppendTx(ctx, batch, res.Review)
	totalCmd := co.Directory.ApplyReviewTx(ctx, batch, restaurantID, rating)
	if _, err := batch.Exec(ctx); err != nil {
		return res, fmt.Errorf("append review batch: %w", err)
	}
	// One batch carries both writes, so the two stages advance together.
	res.Stage = StageLedgerAppended
	res.Stage = StageTotalsUpdated

	res.Count = pushCmd.Val()
	res.Total = totalCmd.Val()
	res.Average = round1(res.Total / float64(res.Count))

	sync := co.RDB.TxPipeline()
	co.Board.UpsertTx(ctx, sync, restaurantID, res.Average)
	co.Directory.SetAverageTx(ctx, sync, restaurantID, res.Average)
	if _, err := sync.Exec(ctx); err != nil {
		return res, fmt.Errorf("sync rating batch: %w", err)
	}
	res.Stage = StageLeaderboardSynced
	res.Stage = StageDone

	return res, nil
}

// round1 rounds to one decimal for presentation; the stored total keeps
// full precision.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
