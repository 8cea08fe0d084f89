package rdx

import (
	"log"
	"os"
	"time"

	"waydown/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHget(hash, field string) (string, error) {
	return Conn.HGet(globals.Ctx, hash, field).Result()
}

func RdxHdel(hash, field string) (int64, error) {
	return Conn.HDel(globals.Ctx, hash, field).Result()
}

// IncrLikeCount bumps the write-behind counter for an entity; the flush worker
// reconciles it into mongo.
func IncrLikeCount(entityType, entityID string, delta int64) (int64, error) {
	key := "like:count:" + entityType + ":" + entityID
	n, err := Conn.IncrBy(globals.Ctx, key, delta).Result()
	if err != nil {
		return 0, err
	}
	if err := Conn.Expire(globals.Ctx, key, time.Minute).Err(); err != nil {
		log.Printf("Failed to set TTL on %s: %v", key, err)
	}
	return n, nil
}
