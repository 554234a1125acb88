package store

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

func DefaultConfig() Config {
	addr := os.Getenv("PLATEHUB_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	return Config{
		Addr:     addr,
		Password: os.Getenv("PLATEHUB_REDIS_PASSWORD"),
	}
}

func Open(cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		// The client only parses FT.* replies on RESP2; on RESP3 those
		// commands refuse to run.
		Protocol: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

func MustOpen(cfg Config) *redis.Client {
	client, err := Open(cfg)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	return client
}
