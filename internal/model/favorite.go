package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FavoritesCollection is the MongoDB collection holding favorite lists.
const FavoritesCollection = "favorites"

// Favorite is the single favorite list of a user.
type Favorite struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Owner     primitive.ObjectID   `bson:"owner" json:"owner"`
	Items     []primitive.ObjectID `bson:"items" json:"items"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ToggleStatus is returned by toggle endpoints.
type ToggleStatus string

const (
	StatusAdded    ToggleStatus = "added"
	StatusRemoved  ToggleStatus = "removed"
	StatusFollow   ToggleStatus = "follow"
	StatusUnfollow ToggleStatus = "unfollow"
)
