package mq

import (
	"context"
	"encoding/json"
	"log"

	"waydown/models"
	"waydown/rdx"
	"waydown/search"
)

// StartIndexingWorker drains the indexing channel and keeps the redis search
// indexes in sync. Runs until ctx is cancelled.
func StartIndexingWorker(ctx context.Context) {
	sub := rdx.Conn.Subscribe(ctx, IndexChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event models.Index
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[IndexingWorker] bad payload: %v", err)
				continue
			}

			if err := search.IndexDatainRedis(ctx, event); err != nil {
				log.Printf("[IndexingWorker] index %s/%s failed: %v",
					event.EntityType, event.EntityId, err)
			}
		}
	}
}
