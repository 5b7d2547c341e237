package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// FollowProfile is the reduced projection of a follower or following.
type FollowProfile struct {
	ID     primitive.ObjectID `bson:"id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
}
