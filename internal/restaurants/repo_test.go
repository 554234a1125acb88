package restaurants

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRepo(rdb)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.Create(ctx, "Pasta House", "Rome")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Pasta House" || got.Location != "Rome" {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.TotalStars != 0 || got.AvgStars != 0 {
		t.Errorf("expected zeroed rating state, got total=%v avg=%v", got.TotalStars, got.AvgStars)
	}
}

func TestCreateIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		r, err := repo.Create(ctx, "r", "l")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[r.ID] {
			t.Fatalf("duplicate id %s", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("each get counts exactly one view", func(t *testing.T) {
		repo := newTestRepo(t)
		created, _ := repo.Create(ctx, "r", "l")

		const n = 20
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := repo.Get(ctx, created.ID); err != nil {
					t.Errorf("get: %v", err)
				}
			}()
		}
		wg.Wait()

		got, err := repo.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ViewCount != n+1 {
			t.Errorf("expected view count %d, got %d", n+1, got.ViewCount)
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		repo := newTestRepo(t)
		if _, err := repo.Get(ctx, "nope"); err != ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestGetByIDs(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	a, _ := repo.Create(ctx, "A", "x")
	b, _ := repo.Create(ctx, "B", "y")

	t.Run("preserves the given order", func(t *testing.T) {
		items, err := repo.GetByIDs(ctx, []string{b.ID, a.ID})
		if err != nil {
			t.Fatalf("getByIDs: %v", err)
		}
		if len(items) != 2 || items[0].Name != "B" || items[1].Name != "A" {
			t.Errorf("unexpected order: %+v", items)
		}
	})

	t.Run("skips missing records", func(t *testing.T) {
		items, err := repo.GetByIDs(ctx, []string{a.ID, "ghost"})
		if err != nil {
			t.Fatalf("getByIDs: %v", err)
		}
		if len(items) != 1 || items[0].Name != "A" {
			t.Errorf("expected only A, got %+v", items)
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		items, err := repo.GetByIDs(ctx, nil)
		if err != nil {
			t.Fatalf("getByIDs: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected no items, got %+v", items)
		}
	})
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, _ := repo.Create(ctx, "r", "l")

	ok, err := repo.Exists(ctx, created.ID)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !ok {
		t.Error("expected created restaurant to exist")
	}

	ok, err = repo.Exists(ctx, "ghost")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if ok {
		t.Error("expected unknown id to not exist")
	}
}
