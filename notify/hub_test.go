package notify

import (
	"encoding/json"
	"testing"
	"time"

	"waydown/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "spot:s123",
	}

	hub.register <- client

	event := models.Event{Type: "like", Room: "spot:s123", ActorID: "u1", EntityType: "spot", EntityID: "s123"}
	data, _ := json.Marshal(event)
	hub.broadcast <- broadcastMsg{Room: "spot:s123", Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubBroadcastDoesNotLeakAcrossRooms(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	inRoom := &Client{Send: make(chan []byte, 1), Room: "user:u1"}
	otherRoom := &Client{Send: make(chan []byte, 1), Room: "user:u2"}

	hub.register <- inRoom
	hub.register <- otherRoom

	hub.broadcast <- broadcastMsg{Room: "user:u1", Data: []byte("ping")}

	select {
	case <-inRoom.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message in target room")
	}

	select {
	case msg := <-otherRoom.Send:
		t.Fatalf("unexpected message in other room: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}

	hub.unregister <- inRoom
	hub.unregister <- otherRoom
}
