package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AudiosCollection is the MongoDB collection holding audio documents.
const AudiosCollection = "audios"

// AudioCategories lists the genres an audio can be filed under.
var AudioCategories = []string{
	"Arts", "Business", "Education", "Entertainment", "Kids & Family",
	"Music", "News", "Science", "Sports", "Technology", "Travel", "Others",
}

// IsAudioCategory reports whether c is one of AudioCategories.
func IsAudioCategory(c string) bool {
	for _, known := range AudioCategories {
		if known == c {
			return true
		}
	}
	return false
}

// Audio represents an uploaded episode or track.
type Audio struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title" json:"title"`
	About     string               `bson:"about" json:"about"`
	Owner     primitive.ObjectID   `bson:"owner" json:"owner"`
	File      MediaRef             `bson:"file" json:"file"`
	Poster    *MediaRef            `bson:"poster,omitempty" json:"poster,omitempty"`
	Likes     []primitive.ObjectID `bson:"likes" json:"-"`
	Category  string               `bson:"category" json:"category"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// OwnerRef is the reduced projection of a user joined onto another record.
type OwnerRef struct {
	ID   primitive.ObjectID `bson:"id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// AudioSummary is the joined, client-facing shape of an audio.
type AudioSummary struct {
	ID       primitive.ObjectID `bson:"id" json:"id"`
	Title    string             `bson:"title" json:"title"`
	About    string             `bson:"about" json:"about"`
	Category string             `bson:"category" json:"category"`
	File     string             `bson:"file" json:"file"`
	Poster   string             `bson:"poster,omitempty" json:"poster,omitempty"`
	Date     time.Time          `bson:"date" json:"date"`
	Owner    OwnerRef           `bson:"owner" json:"owner"`
}

// ToAudioSummary builds a summary from a document and an already known owner.
func ToAudioSummary(a *Audio, owner OwnerRef) AudioSummary {
	s := AudioSummary{
		ID:       a.ID,
		Title:    a.Title,
		About:    a.About,
		Category: a.Category,
		File:     a.File.URL,
		Date:     a.CreatedAt,
		Owner:    owner,
	}
	if a.Poster != nil {
		s.Poster = a.Poster.URL
	}
	return s
}
