package models

import "time"

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"password,omitempty" bson:"-"`
	PasswordHash  string    `json:"-" bson:"password_hash"`
	Role          []string  `json:"role" bson:"role"`
	Name          string    `json:"name,omitempty" bson:"name,omitempty"`
	Bio           string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Avatar        string    `json:"avatar" bson:"avatar"`
	Interests     []string  `json:"interests" bson:"interests"`
	Location      *GeoPoint `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
	LastLogin     time.Time `json:"last_login" bson:"last_login"`
	EmailVerified bool      `json:"email_verified" bson:"email_verified"`

	FollowersCount int `json:"followerscount" bson:"followerscount"`
	FollowingCount int `json:"followscount" bson:"followscount"`

	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
}

// UserProfileResponse is the public shape returned by profile endpoints.
type UserProfileResponse struct {
	UserID         string    `json:"userid" bson:"userid"`
	Username       string    `json:"username" bson:"username"`
	Name           string    `json:"name,omitempty" bson:"name,omitempty"`
	Bio            string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Avatar         string    `json:"avatar" bson:"avatar"`
	Interests      []string  `json:"interests" bson:"interests"`
	IsFollowing    bool      `json:"is_following" bson:"is_following"`
	FollowersCount int       `json:"followerscount" bson:"followerscount"`
	FollowingCount int       `json:"followscount" bson:"followscount"`
	LastLogin      time.Time `json:"last_login" bson:"last_login"`
}

type UserFollow struct {
	UserID    string   `json:"userid" bson:"userid"`
	Follows   []string `json:"follows,omitempty" bson:"follows,omitempty"`
	Followers []string `json:"followers,omitempty" bson:"followers,omitempty"`
}

type UserSuggest struct {
	UserID      string `json:"userid" bson:"userid"`
	Username    string `json:"username" bson:"username"`
	Bio         string `json:"bio,omitempty" bson:"bio,omitempty"`
	Avatar      string `json:"avatar,omitempty" bson:"avatar,omitempty"`
	IsFollowing bool   `json:"is_following" bson:"-"`
}
