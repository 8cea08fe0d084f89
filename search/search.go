package search

import (
	"context"
	"fmt"
	"log"
	"strings"

	"waydown/db"
	"waydown/models"
	"waydown/rdx"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

func autocompleteKey(entityType string) string {
	return "autocomplete:" + entityType
}

// IndexDatainRedis keeps the redis autocomplete sets in sync with mongo. The
// indexing worker feeds it every event published on the bus.
func IndexDatainRedis(ctx context.Context, event models.Index) error {
	switch event.EntityType {
	case "spot":
		return indexSpot(ctx, event)
	case "user":
		return indexUser(ctx, event)
	case "post":
		// Posts are searched in mongo directly, nothing to index.
		return nil
	default:
		return nil
	}
}

func indexSpot(ctx context.Context, event models.Index) error {
	key := autocompleteKey("spots")

	if event.Method == "DELETE" {
		return removeByID(ctx, key, event.EntityId)
	}

	var spot models.Spot
	err := db.SpotsCollection.FindOne(ctx, bson.M{"spotid": event.EntityId}).Decode(&spot)
	if err != nil {
		return fmt.Errorf("index spot %s: %w", event.EntityId, err)
	}

	// Rejected and pending spots must not surface in suggestions.
	if spot.Status != models.SpotApproved {
		return removeByID(ctx, key, event.EntityId)
	}

	member := event.EntityId + "|" + strings.ToLower(spot.Name)
	if err := removeByID(ctx, key, event.EntityId); err != nil {
		log.Printf("[indexSpot] stale member cleanup failed: %v", err)
	}
	return rdx.Conn.ZAdd(ctx, key, redis.Z{Score: 0, Member: member}).Err()
}

func indexUser(ctx context.Context, event models.Index) error {
	key := autocompleteKey("users")

	if event.Method == "DELETE" {
		return removeByID(ctx, key, event.EntityId)
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": event.EntityId}).Decode(&user)
	if err != nil {
		return fmt.Errorf("index user %s: %w", event.EntityId, err)
	}

	member := event.EntityId + "|" + strings.ToLower(user.Username)
	if err := removeByID(ctx, key, event.EntityId); err != nil {
		log.Printf("[indexUser] stale member cleanup failed: %v", err)
	}
	return rdx.Conn.ZAdd(ctx, key, redis.Z{Score: 0, Member: member}).Err()
}

// removeByID drops every member of a zset whose ID prefix matches.
func removeByID(ctx context.Context, key, id string) error {
	members, err := rdx.Conn.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return err
	}
	for _, m := range members {
		if strings.HasPrefix(m, id+"|") {
			if err := rdx.Conn.ZRem(ctx, key, m).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Suggest returns up to limit id/name pairs whose name starts with the query.
func Suggest(ctx context.Context, entityType, query string, limit int64) ([]map[string]string, error) {
	key := autocompleteKey(entityType)
	query = strings.ToLower(strings.TrimSpace(query))

	members, err := rdx.Conn.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("autocomplete fetch: %w", err)
	}

	suggestions := []map[string]string{}
	for _, member := range members {
		parts := strings.SplitN(member, "|", 2)
		if len(parts) != 2 {
			continue
		}
		if query != "" && !strings.HasPrefix(parts[1], query) {
			continue
		}
		suggestions = append(suggestions, map[string]string{
			"id":   parts[0],
			"name": parts[1],
		})
		if int64(len(suggestions)) >= limit {
			break
		}
	}
	return suggestions, nil
}
