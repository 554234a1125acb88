// Package search manages the secondary full-text index over restaurant
// hashes and the existence bloom filter. Both require redis modules; the
// rest of the service degrades cleanly when they are absent.
package search

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"platehub/pkg/store"
)

const (
	bloomErrorRate = 0.0001
	bloomCapacity  = 1_000_000
)

type Admin struct {
	RDB *redis.Client
}

func NewAdmin(rdb *redis.Client) *Admin {
	return &Admin{RDB: rdb}
}

// CreateIndex drops any existing restaurant index and builds a fresh one
// over the restaurant hash prefix: id and name as text, the rounded
// average as a sortable numeric.
func (a *Admin) CreateIndex(ctx context.Context) error {
	// Ignore the drop error: on a fresh instance there is no index yet.
	_ = a.RDB.FTDropIndex(ctx, store.IndexKey).Err()

	err := a.RDB.FTCreate(ctx, store.IndexKey,
		&redis.FTCreateOptions{
			OnHash: true,
			Prefix: []interface{}{store.KeyName("restaurants")},
		},
		&redis.FieldSchema{FieldName: "id", As: "id", FieldType: redis.SearchFieldTypeText},
		&redis.FieldSchema{FieldName: "name", As: "name", FieldType: redis.SearchFieldTypeText},
		&redis.FieldSchema{FieldName: "avg_stars", As: "avg_stars", FieldType: redis.SearchFieldTypeNumeric, Sortable: true},
	).Err()
	if err != nil {
		return fmt.Errorf("create search index: %w", err)
	}
	return nil
}

// ReserveBloom recreates the existence filter the guard consults.
func (a *Admin) ReserveBloom(ctx context.Context) error {
	if err := a.RDB.Del(ctx, store.BloomKey).Err(); err != nil {
		return fmt.Errorf("drop bloom filter: %w", err)
	}
	if err := a.RDB.BFReserve(ctx, store.BloomKey, bloomErrorRate, bloomCapacity).Err(); err != nil {
		return fmt.Errorf("reserve bloom filter: %w", err)
	}
	return nil
}
