package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"podify/internal/model"
	"podify/internal/query"
)

// FavoriteRepository defines favorite list persistence operations.
type FavoriteRepository interface {
	Contains(ctx context.Context, owner, audio primitive.ObjectID) (bool, error)
	Add(ctx context.Context, owner, audio primitive.ObjectID) error
	Remove(ctx context.Context, owner, audio primitive.ObjectID) error
	Items(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.AudioSummary, error)
}

type favoriteRepository struct {
	coll *mongo.Collection
}

// NewFavoriteRepository creates a new favorite repository.
func NewFavoriteRepository(db *mongo.Database) FavoriteRepository {
	return &favoriteRepository{coll: db.Collection(model.FavoritesCollection)}
}

func (r *favoriteRepository) Contains(ctx context.Context, owner, audio primitive.ObjectID) (bool, error) {
	n, err := r.coll.CountDocuments(ctx,
		bson.D{{Key: "owner", Value: owner}, {Key: "items", Value: audio}},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Add appends audio to the owner's list, creating the list on first use.
func (r *favoriteRepository) Add(ctx context.Context, owner, audio primitive.ObjectID) error {
	now := time.Now().UTC()
	_, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "owner", Value: owner}},
		bson.D{
			{Key: "$addToSet", Value: bson.D{{Key: "items", Value: audio}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
			{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: now}}},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *favoriteRepository) Remove(ctx context.Context, owner, audio primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "owner", Value: owner}},
		bson.D{
			{Key: "$pull", Value: bson.D{{Key: "items", Value: audio}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
		},
	)
	return err
}

func (r *favoriteRepository) Items(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.AudioSummary, error) {
	if page.OutOfRange() {
		return []model.AudioSummary{}, nil
	}
	return aggregate[model.AudioSummary](ctx, r.coll, query.FavoriteItemsPipeline(owner, page))
}
