package reviews

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"platehub/internal/leaderboard"
	"platehub/internal/restaurants"
	"platehub/pkg/store"
)

func newTestCoordinator(t *testing.T) (*Coordinator, *restaurants.Repo, *leaderboard.Board) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	directory := restaurants.NewRepo(rdb)
	board := leaderboard.NewBoard(rdb)
	ledger := NewLedger(rdb)
	return NewCoordinator(rdb, directory, ledger, board), directory, board
}

func createRestaurant(t *testing.T, co *Coordinator, directory *restaurants.Repo, board *leaderboard.Board, name, location string) string {
	t.Helper()
	ctx := context.Background()
	created, err := directory.Create(ctx, name, location)
	if err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	if err := board.Upsert(ctx, created.ID, 0); err != nil {
		t.Fatalf("seed leaderboard: %v", err)
	}
	return created.ID
}

func storedRating(t *testing.T, co *Coordinator, id string) (total float64, avg float64) {
	t.Helper()
	fields, err := co.RDB.HMGet(context.Background(), store.RestaurantKey(id), "total_stars", "avg_stars").Result()
	if err != nil {
		t.Fatalf("hmget: %v", err)
	}
	total, _ = strconv.ParseFloat(fields[0].(string), 64)
	avg, _ = strconv.ParseFloat(fields[1].(string), 64)
	return total, avg
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("running average scenario", func(t *testing.T) {
		co, directory, board := newTestCoordinator(t)
		id := createRestaurant(t, co, directory, board, "Pasta House", "Rome")

		if score, ok, _ := board.Score(ctx, id); !ok || score != 0 {
			t.Fatalf("expected initial score 0, got %v ok=%v", score, ok)
		}

		res, err := co.Submit(ctx, id, 4, "great pasta")
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if res.Stage != StageDone {
			t.Errorf("expected stage done, got %s", res.Stage)
		}
		if res.Count != 1 || res.Total != 4 || res.Average != 4.0 {
			t.Errorf("after first review: count=%d total=%v avg=%v", res.Count, res.Total, res.Average)
		}

		res, err = co.Submit(ctx, id, 2, "crowded")
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if res.Count != 2 || res.Total != 6 || res.Average != 3.0 {
			t.Errorf("after second review: count=%d total=%v avg=%v", res.Count, res.Total, res.Average)
		}

		total, avg := storedRating(t, co, id)
		if total != 6 || avg != 3.0 {
			t.Errorf("stored rating state: total=%v avg=%v", total, avg)
		}
		score, ok, _ := board.Score(ctx, id)
		if !ok || score != 3.0 {
			t.Errorf("expected leaderboard score 3.0, got %v", score)
		}
	})

	t.Run("average is rounded to one decimal", func(t *testing.T) {
		co, directory, board := newTestCoordinator(t)
		id := createRestaurant(t, co, directory, board, "r", "l")

		for _, rating := range []int{5, 5, 4} {
			if _, err := co.Submit(ctx, id, rating, ""); err != nil {
				t.Fatalf("submit: %v", err)
			}
		}

		// 14/3 = 4.666... presented as 4.7 while the total keeps full precision.
		total, avg := storedRating(t, co, id)
		if total != 14 || avg != 4.7 {
			t.Errorf("expected total=14 avg=4.7, got total=%v avg=%v", total, avg)
		}
	})

	t.Run("concurrent submissions lose nothing", func(t *testing.T) {
		co, directory, board := newTestCoordinator(t)
		id := createRestaurant(t, co, directory, board, "r", "l")

		const n = 25
		ratings := make([]int, n)
		wantTotal := 0
		for i := range ratings {
			ratings[i] = i%5 + 1
			wantTotal += ratings[i]
		}

		var wg sync.WaitGroup
		for _, rating := range ratings {
			wg.Add(1)
			go func(rating int) {
				defer wg.Done()
				if _, err := co.Submit(ctx, id, rating, ""); err != nil {
					t.Errorf("submit: %v", err)
				}
			}(rating)
		}
		wg.Wait()

		count, err := co.Ledger.Len(ctx, id)
		if err != nil {
			t.Fatalf("ledger length: %v", err)
		}
		if count != n {
			t.Errorf("expected %d ledger entries, got %d", n, count)
		}

		total, avg := storedRating(t, co, id)
		if total != float64(wantTotal) {
			t.Errorf("expected total %d, got %v", wantTotal, total)
		}

		// The stored average and the leaderboard score are written in one
		// batch, so they can never diverge even under interleaving.
		score, ok, _ := board.Score(ctx, id)
		if !ok || score != avg {
			t.Errorf("leaderboard score %v diverged from stored average %v", score, avg)
		}
	})

	t.Run("deletion does not reconcile the average", func(t *testing.T) {
		co, directory, board := newTestCoordinator(t)
		id := createRestaurant(t, co, directory, board, "Pasta House", "Rome")

		_, _ = co.Submit(ctx, id, 4, "")
		res, _ := co.Submit(ctx, id, 2, "")

		if err := co.Ledger.Remove(ctx, id, res.Review.ID); err != nil {
			t.Fatalf("remove: %v", err)
		}

		count, _ := co.Ledger.Len(ctx, id)
		if count != 1 {
			t.Errorf("expected ledger length 1 after delete, got %d", count)
		}
		_, avg := storedRating(t, co, id)
		if avg != 3.0 {
			t.Errorf("expected average to stay 3.0 after delete, got %v", avg)
		}
		score, _, _ := board.Score(ctx, id)
		if score != 3.0 {
			t.Errorf("expected leaderboard score to stay 3.0 after delete, got %v", score)
		}
	})

	t.Run("stages are ordered and named", func(t *testing.T) {
		want := map[Stage]string{
			StageValidated:         "validated",
			StageLedgerAppended:    "ledger_appended",
			StageTotalsUpdated:     "totals_updated",
			StageLeaderboardSynced: "leaderboard_synced",
			StageDone:              "done",
		}
		prev := Stage(-1)
		for _, stage := range []Stage{StageValidated, StageLedgerAppended, StageTotalsUpdated, StageLeaderboardSynced, StageDone} {
			if stage <= prev {
				t.Errorf("stage %s out of order", stage)
			}
			if stage.String() != want[stage] {
				t.Errorf("expected %s, got %s", want[stage], stage)
			}
			prev = stage
		}

		co, directory, board := newTestCoordinator(t)
		id := createRestaurant(t, co, directory, board, "r", "l")
		res, err := co.Submit(ctx, id, 5, "")
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if res.Stage != StageDone {
			t.Errorf("expected a completed submission to report done, got %s", res.Stage)
		}
	})

	t.Run("submissions to different restaurants are independent", func(t *testing.T) {
		co, directory, board := newTestCoordinator(t)
		a := createRestaurant(t, co, directory, board, "A", "x")
		b := createRestaurant(t, co, directory, board, "B", "y")

		_, _ = co.Submit(ctx, a, 5, "")
		_, _ = co.Submit(ctx, b, 1, "")

		_, avgA := storedRating(t, co, a)
		_, avgB := storedRating(t, co, b)
		if avgA != 5.0 || avgB != 1.0 {
			t.Errorf("expected independent averages 5.0/1.0, got %v/%v", avgA, avgB)
		}
	})
}
