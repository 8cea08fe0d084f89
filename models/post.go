package models

import "time"

type Post struct {
	PostID       string    `json:"postid" bson:"postid"`
	Content      string    `json:"content" bson:"content"`
	Media        []string  `json:"media,omitempty" bson:"media,omitempty"`
	Tags         []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	SpotID       string    `json:"spotid,omitempty" bson:"spotid,omitempty"`
	CreatedBy    string    `json:"createdBy" bson:"createdBy"`
	Likes        int64     `json:"likes" bson:"likes"`
	CommentCount int64     `json:"comment_count" bson:"comment_count"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
