package rdx

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"waydown/db"
	"waydown/globals"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FlushRedisLikes reconciles the write-behind like counters into MongoDB.
// Keys hold deltas since the last flush, so the update is an $inc. The loop
// runs until ctx is cancelled, draining once more on the way out so deltas
// pending at shutdown still reach mongo.
func FlushRedisLikes(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			flushLikeCounters()
			return
		case <-ticker.C:
			flushLikeCounters()
		}
	}
}

func flushLikeCounters() {
	keys, err := Conn.Keys(globals.Ctx, "like:count:*:*").Result()
	if err != nil {
		log.Println("Redis scan error:", err)
		return
	}

	for _, key := range keys {
		parts := strings.Split(key, ":")
		if len(parts) != 4 {
			log.Println("Invalid Redis like key format:", key)
			continue
		}
		entityType := parts[2]
		entityID := parts[3]

		countStr, err := Conn.Get(globals.Ctx, key).Result()
		if err != nil {
			continue
		}
		delta, err := strconv.ParseInt(countStr, 10, 64)
		if err != nil {
			log.Println("Failed to parse like count:", countStr)
			continue
		}
		if delta == 0 {
			Conn.Del(globals.Ctx, key)
			continue
		}

		var targetCollection *mongo.Collection
		var keyField string
		switch entityType {
		case "spot":
			targetCollection = db.SpotsCollection
			keyField = "spotid"
		case "post":
			targetCollection = db.PostsCollection
			keyField = "postid"
		case "comment":
			targetCollection = db.CommentsCollection
			keyField = "commentid"
		default:
			log.Println("Unknown entity type:", entityType)
			continue
		}

		_, err = targetCollection.UpdateOne(globals.Ctx,
			bson.M{keyField: entityID},
			bson.M{"$inc": bson.M{"likes": delta}},
		)
		if err != nil {
			log.Println("MongoDB update error for", entityType, entityID, ":", err)
			continue
		}

		if err := Conn.Del(globals.Ctx, key).Err(); err != nil {
			log.Println("Failed to delete Redis key:", key)
		}
	}
}
