package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"eventhub/config"
)

const (
	redisConnectAttempts = 10
	redisBackoffFloor    = 500 * time.Millisecond
	redisBackoffCeiling  = 10 * time.Second
)

// InitRedis connects to the broker, retrying the initial ping with
// exponential backoff up to a capped ceiling. Once connected, the
// client itself re-dials dropped connections using the retry backoff
// configured below.
func InitRedis(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.RedisAddr,
		Password:        cfg.RedisPassword,
		DB:              cfg.RedisDB,
		MaxRetries:      5,
		MinRetryBackoff: redisBackoffFloor,
		MaxRetryBackoff: redisBackoffCeiling,
	})

	backoff := redisBackoffFloor
	var err error
	for attempt := 1; attempt <= redisConnectAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = rdb.Ping(ctx).Err()
		cancel()
		if err == nil {
			log.Printf("✅ Redis connected at %s", cfg.RedisAddr)
			return rdb, nil
		}
		log.Printf("⚠️ Redis ping failed (attempt %d/%d): %v — retrying in %s", attempt, redisConnectAttempts, err, backoff)
		time.Sleep(backoff)
		backoff *= 2
		if backoff > redisBackoffCeiling {
			backoff = redisBackoffCeiling
		}
	}
	_ = rdb.Close()
	return nil, fmt.Errorf("redis unreachable at %s after %d attempts: %w", cfg.RedisAddr, redisConnectAttempts, err)
}
