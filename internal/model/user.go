package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UsersCollection is the MongoDB collection holding user documents.
const UsersCollection = "users"

// MediaRef points at a file hosted by the media provider.
type MediaRef struct {
	URL      string `bson:"url" json:"url" validate:"required,url"`
	PublicID string `bson:"publicId" json:"publicId" validate:"required"`
}

// User represents a registered listener or creator.
type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name       string               `bson:"name" json:"name"`
	Email      string               `bson:"email" json:"email"`
	Password   string               `bson:"password" json:"-"` // bcrypt hash, never exposed
	Verified   bool                 `bson:"verified" json:"verified"`
	Avatar     *MediaRef            `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Tokens     []string             `bson:"tokens" json:"-"`
	Followers  []primitive.ObjectID `bson:"followers" json:"-"`
	Followings []primitive.ObjectID `bson:"followings" json:"-"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Profile is the shape of the authenticated user returned to its owner.
type Profile struct {
	ID         primitive.ObjectID `json:"id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Verified   bool               `json:"verified"`
	Avatar     string             `json:"avatar,omitempty"`
	Followers  int                `json:"followers"`
	Followings int                `json:"followings"`
}

// ToProfile formats a user document for its owner.
func ToProfile(u *User) Profile {
	p := Profile{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Verified:   u.Verified,
		Followers:  len(u.Followers),
		Followings: len(u.Followings),
	}
	if u.Avatar != nil {
		p.Avatar = u.Avatar.URL
	}
	return p
}

// PublicProfile is what other users can see about a profile.
type PublicProfile struct {
	ID        primitive.ObjectID `json:"id"`
	Name      string             `json:"name"`
	Followers int                `json:"followers"`
	Avatar    string             `json:"avatar,omitempty"`
}

// ToPublicProfile strips private fields from a user document.
func ToPublicProfile(u *User) PublicProfile {
	p := PublicProfile{ID: u.ID, Name: u.Name, Followers: len(u.Followers)}
	if u.Avatar != nil {
		p.Avatar = u.Avatar.URL
	}
	return p
}
