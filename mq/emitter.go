package mq

import (
	"context"
	"encoding/json"
	"log"

	"waydown/models"
	"waydown/rdx"
)

const (
	IndexChannel  = "indexing-events"
	NotifyChannel = "notify-events"
)

// Emit publishes indexing events to Redis instead of running them inline.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, IndexChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s to Redis: %v", eventName, err)
	}
}

// EmitEvent publishes a realtime notification onto the bus. The notify worker
// persists it and fans it out to websocket rooms.
func EmitEvent(ctx context.Context, ev models.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[EmitEvent] Failed to marshal event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, NotifyChannel, data).Err(); err != nil {
		log.Printf("[EmitEvent] Failed to publish event to Redis: %v", err)
	}
}
