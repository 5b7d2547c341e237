package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoriesCollection is the MongoDB collection holding play histories.
const HistoriesCollection = "histories"

// HistoryEntry records one play of an audio.
type HistoryEntry struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Audio    primitive.ObjectID `bson:"audio" json:"audio"`
	Progress float64            `bson:"progress" json:"progress"`
	Date     time.Time          `bson:"date" json:"date"`
}

// History is the play history of a user. All is kept newest first.
type History struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner primitive.ObjectID `bson:"owner" json:"owner"`
	Last  HistoryEntry       `bson:"last" json:"last"`
	All   []HistoryEntry     `bson:"all" json:"all"`
}

// HistoryItem is a joined history entry.
type HistoryItem struct {
	ID    primitive.ObjectID `bson:"id" json:"id"`
	Audio primitive.ObjectID `bson:"audioId" json:"audioId"`
	Title string             `bson:"title" json:"title"`
	Date  time.Time          `bson:"date" json:"date"`
}

// HistoryDay groups the plays of a calendar day.
type HistoryDay struct {
	Date   string        `bson:"date" json:"date"`
	Audios []HistoryItem `bson:"audios" json:"audios"`
}
