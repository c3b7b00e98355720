package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account stored in MongoDB. Followers and Following are
// sets of user ids kept symmetric by the follow service: A is in B's
// followers exactly when B is in A's following.
type User struct {
	ID         primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Username   string               `json:"username" bson:"username"`
	Email      string               `json:"email" bson:"email"`
	Password   string               `json:"-" bson:"password"` // bcrypt hash, never serialized
	Bio        string               `json:"bio" bson:"bio"`
	ProfilePic string               `json:"profile_pic" bson:"profile_pic"`
	Points     int                  `json:"points" bson:"points"`
	Followers  []primitive.ObjectID `json:"followers" bson:"followers"`
	Following  []primitive.ObjectID `json:"following" bson:"following"`
	CreatedAt  time.Time            `json:"created_at" bson:"created_at"`
}

// RegisterRequest defines the request body for user registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the request body for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile updates
type UpdateProfileRequest struct {
	Username   string `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	Bio        string `json:"bio,omitempty" validate:"omitempty,max=300"`
	ProfilePic string `json:"profile_pic,omitempty" validate:"omitempty,url"`
}

// LeaderboardEntry is a user projected for the leaderboard; the follower set
// is exposed only as its size.
type LeaderboardEntry struct {
	ID            primitive.ObjectID `json:"id"`
	Username      string             `json:"username"`
	Points        int                `json:"points"`
	ProfilePic    string             `json:"profile_pic"`
	FollowerCount int                `json:"follower_count"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}
