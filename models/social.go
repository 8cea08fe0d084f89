package models

import "time"

type Comment struct {
	CommentID  string    `json:"commentid" bson:"commentid"`
	EntityType string    `json:"entity_type" bson:"entity_type"`
	EntityID   string    `json:"entity_id" bson:"entity_id"`
	UserID     string    `json:"userid" bson:"userid"`
	Content    string    `json:"content" bson:"content"`
	Likes      int64     `json:"likes" bson:"likes"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

type Review struct {
	ReviewID  string    `json:"reviewid" bson:"reviewid"`
	SpotID    string    `json:"spotid" bson:"spotid"`
	UserID    string    `json:"userid" bson:"userid"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type ReportStatus string

const (
	ReportOpen      ReportStatus = "open"
	ReportReviewed  ReportStatus = "reviewed"
	ReportDismissed ReportStatus = "dismissed"
)

type Report struct {
	ReportID   string       `json:"reportid" bson:"reportid"`
	EntityType string       `json:"entity_type" bson:"entity_type"`
	EntityID   string       `json:"entity_id" bson:"entity_id"`
	ReportedBy string       `json:"reportedBy" bson:"reportedBy"`
	Reason     string       `json:"reason" bson:"reason"`
	Notes      string       `json:"notes,omitempty" bson:"notes,omitempty"`
	Status     ReportStatus `json:"status" bson:"status"`
	ReviewedBy string       `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	CreatedAt  time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at" bson:"updated_at"`
}

type Notification struct {
	NotifID    string    `json:"notifid" bson:"notifid"`
	UserID     string    `json:"userid" bson:"userid"`
	ActorID    string    `json:"actorid" bson:"actorid"`
	Type       string    `json:"type" bson:"type"`
	EntityType string    `json:"entity_type" bson:"entity_type"`
	EntityID   string    `json:"entity_id" bson:"entity_id"`
	Message    string    `json:"message,omitempty" bson:"message,omitempty"`
	Read       bool      `json:"read" bson:"read"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// UserData records per-user activity (likes, saves, follows) so profile tabs
// can list what a user has interacted with.
type UserData struct {
	UserID     string    `json:"userid" bson:"userid"`
	Action     string    `json:"action" bson:"action"`
	EntityType string    `json:"entity_type" bson:"entity_type"`
	EntityID   string    `json:"entity_id" bson:"entity_id"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
