package models

import "time"

type Interest struct {
	InterestID string `json:"interestid" bson:"interestid"`
	Name       string `json:"name" bson:"name"`
	Icon       string `json:"icon,omitempty" bson:"icon,omitempty"`
}

type WelcomeSlide struct {
	SlideID   string    `json:"slideid" bson:"slideid"`
	Title     string    `json:"title" bson:"title"`
	Body      string    `json:"body" bson:"body"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`
	Order     int       `json:"order" bson:"order"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type ErrLog struct {
	LogID     string    `json:"logid" bson:"logid"`
	UserID    string    `json:"userid,omitempty" bson:"userid,omitempty"`
	Message   string    `json:"message" bson:"message"`
	Stack     string    `json:"stack,omitempty" bson:"stack,omitempty"`
	Platform  string    `json:"platform,omitempty" bson:"platform,omitempty"`
	AppVer    string    `json:"app_version,omitempty" bson:"app_version,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Index is the payload carried on the redis event bus.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id"`
	ItemType   string `json:"item_type"`
}

// Event is a realtime notification pushed through the bus to websocket rooms.
type Event struct {
	Type       string `json:"type"`
	Room       string `json:"room"`
	ActorID    string `json:"actorid"`
	TargetID   string `json:"targetid,omitempty"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Message    string `json:"message,omitempty"`
}
