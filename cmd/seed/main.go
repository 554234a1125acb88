// Seed prepares the optional store-side structures the API degrades
// without: the full-text index over restaurant records and the existence
// bloom filter. Run it once against an instance with the search and
// bloom modules loaded.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"platehub/internal/search"
	"platehub/pkg/store"
)

func main() {
	skipIndex := flag.Bool("skip-index", false, "do not (re)create the search index")
	skipBloom := flag.Bool("skip-bloom", false, "do not (re)reserve the bloom filter")
	flag.Parse()

	rdb := store.MustOpen(store.DefaultConfig())
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin := search.NewAdmin(rdb)

	if !*skipIndex {
		if err := admin.CreateIndex(ctx); err != nil {
			log.Fatalf("create index failed: %v", err)
		}
		log.Println("search index created")
	}

	if !*skipBloom {
		if err := admin.ReserveBloom(ctx); err != nil {
			log.Fatalf("reserve bloom filter failed: %v", err)
		}
		log.Println("bloom filter reserved")
	}
}
