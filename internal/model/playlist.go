package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaylistsCollection is the MongoDB collection holding playlists.
const PlaylistsCollection = "playlists"

// Visibility controls who can see a playlist.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
	// VisibilityAuto marks playlists rebuilt by the daily generator.
	VisibilityAuto Visibility = "auto"
)

// SystemOwner owns auto-generated playlists.
var SystemOwner = primitive.NilObjectID

// Playlist is an ordered list of audios.
type Playlist struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title      string               `bson:"title" json:"title"`
	Owner      primitive.ObjectID   `bson:"owner" json:"owner"`
	Items      []primitive.ObjectID `bson:"items" json:"items"`
	Visibility Visibility           `bson:"visibility" json:"visibility"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PlaylistInfo is the list-view shape of a playlist.
type PlaylistInfo struct {
	ID         primitive.ObjectID `json:"id"`
	Title      string             `json:"title"`
	ItemsCount int                `json:"itemsCount"`
	Visibility Visibility         `json:"visibility"`
}

// ToPlaylistInfo formats a playlist for list endpoints.
func ToPlaylistInfo(p *Playlist) PlaylistInfo {
	return PlaylistInfo{
		ID:         p.ID,
		Title:      p.Title,
		ItemsCount: len(p.Items),
		Visibility: p.Visibility,
	}
}

// PlaylistDetail is a playlist with its items populated.
type PlaylistDetail struct {
	ID     primitive.ObjectID `json:"id"`
	Title  string             `json:"title"`
	Audios []AudioSummary     `json:"audios"`
}
