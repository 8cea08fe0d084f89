package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"waydown/db"
	"waydown/models"
	"waydown/mq"
	"waydown/rdx"
	"waydown/utils"
)

// StartWorker subscribes to the notify bus, persists a Notification for the
// target user, and pushes the event into the websocket room. Runs until ctx
// is cancelled.
func StartWorker(ctx context.Context, hub *Hub) {
	sub := rdx.Conn.Subscribe(ctx, mq.NotifyChannel)
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

			var event models.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("notify: bad event payload: %v", err)
				continue
			}

			if event.TargetID != "" {
				notif := models.Notification{
					NotifID:    "n" + utils.GenerateRandomString(12),
					UserID:     event.TargetID,
					ActorID:    event.ActorID,
					Type:       event.Type,
					EntityType: event.EntityType,
					EntityID:   event.EntityID,
					Message:    event.Message,
					CreatedAt:  time.Now(),
				}
				insCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				if _, err := db.NotificationsCollection.InsertOne(insCtx, notif); err != nil {
					log.Printf("notify: failed to persist notification: %v", err)
				}
				cancel()
			}

			if event.Room != "" {
				if data, err := json.Marshal(event); err == nil {
					hub.Broadcast(event.Room, data)
				}
			}
		}
	}
}
