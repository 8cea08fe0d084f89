package models

import "time"

// GeoPoint is a GeoJSON point, longitude first, as the 2dsphere index expects.
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

func NewGeoPoint(lng, lat float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

type SpotStatus string

const (
	SpotPending  SpotStatus = "pending"
	SpotApproved SpotStatus = "approved"
	SpotRejected SpotStatus = "rejected"
)

type SpotPhoto struct {
	URL   string `json:"url" bson:"url"`
	Thumb string `json:"thumb" bson:"thumb"`
}

type Spot struct {
	SpotID      string      `json:"spotid" bson:"spotid"`
	Name        string      `json:"name" bson:"name"`
	Description string      `json:"description" bson:"description"`
	Category    string      `json:"category" bson:"category"`
	Tags        []string    `json:"tags" bson:"tags"`
	Location    *GeoPoint   `json:"location" bson:"location"`
	Address     string      `json:"address,omitempty" bson:"address,omitempty"`
	City        string      `json:"city,omitempty" bson:"city,omitempty"`
	Country     string      `json:"country,omitempty" bson:"country,omitempty"`
	Photos      []SpotPhoto `json:"photos" bson:"photos"`
	CreatedBy   string      `json:"createdBy" bson:"createdBy"`
	Status      SpotStatus  `json:"status" bson:"status"`
	ModNote     string      `json:"mod_note,omitempty" bson:"mod_note,omitempty"`
	Likes       int64       `json:"likes" bson:"likes"`
	Saves       int64       `json:"saves" bson:"saves"`
	Views       int64       `json:"views" bson:"views"`
	ReviewCount int         `json:"reviewcount" bson:"reviewcount"`
	Rating      float64     `json:"rating" bson:"rating"`
	Distance    float64     `json:"distance,omitempty" bson:"distance,omitempty"`
	Score       float64     `json:"score,omitempty" bson:"score,omitempty"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at"`
}

type TrendingTag struct {
	Tag   string `json:"tag" bson:"_id"`
	Count int32  `json:"count" bson:"count"`
}
