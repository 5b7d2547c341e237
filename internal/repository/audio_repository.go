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

// AudioUpdate carries the editable fields of an audio. A nil poster keeps the current one.
type AudioUpdate struct {
	Title    string
	About    string
	Category string
	Poster   *model.MediaRef
}

// AudioRepository defines audio persistence operations.
type AudioRepository interface {
	Create(ctx context.Context, audio *model.Audio) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Audio, error)
	UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, update AudioUpdate) (*model.Audio, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.Audio, error)
	AddLike(ctx context.Context, id, user primitive.ObjectID) error
	RemoveLike(ctx context.Context, id, user primitive.ObjectID) error
	Latest(ctx context.Context, size int64) ([]model.AudioSummary, error)
	Recommended(ctx context.Context, categories []string, size int64) ([]model.AudioSummary, error)
	SampleByCategory(ctx context.Context, pool, size int64) ([]query.CategoryGroup, error)
}

type audioRepository struct {
	coll *mongo.Collection
}

// NewAudioRepository creates a new audio repository.
func NewAudioRepository(db *mongo.Database) AudioRepository {
	return &audioRepository{coll: db.Collection(model.AudiosCollection)}
}

func (r *audioRepository) Create(ctx context.Context, audio *model.Audio) error {
	now := time.Now().UTC()
	audio.ID = primitive.NewObjectID()
	audio.CreatedAt, audio.UpdatedAt = now, now
	if audio.Likes == nil {
		audio.Likes = []primitive.ObjectID{}
	}
	_, err := r.coll.InsertOne(ctx, audio)
	return err
}

func (r *audioRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Audio, error) {
	var audio model.Audio
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&audio); err != nil {
		return nil, err
	}
	return &audio, nil
}

// UpdateOwned edits an audio only if owner uploaded it.
func (r *audioRepository) UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, update AudioUpdate) (*model.Audio, error) {
	set := bson.D{
		{Key: "title", Value: update.Title},
		{Key: "about", Value: update.About},
		{Key: "category", Value: update.Category},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}
	if update.Poster != nil {
		set = append(set, bson.E{Key: "poster", Value: update.Poster})
	}
	filter := bson.D{{Key: "_id", Value: id}, {Key: "owner", Value: owner}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var audio model.Audio
	if err := r.coll.FindOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: set}}, opts).Decode(&audio); err != nil {
		return nil, err
	}
	return &audio, nil
}

func (r *audioRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: id}}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByOwner returns the owner's uploads, newest first.
func (r *audioRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.Audio, error) {
	if page.OutOfRange() {
		return []model.Audio{}, nil
	}
	return find[model.Audio](ctx, r.coll, bson.D{{Key: "owner", Value: owner}}, query.FindOptions(page, "createdAt"))
}

func (r *audioRepository) AddLike(ctx context.Context, id, user primitive.ObjectID) error {
	return r.updateLikes(ctx, id, "$addToSet", user)
}

func (r *audioRepository) RemoveLike(ctx context.Context, id, user primitive.ObjectID) error {
	return r.updateLikes(ctx, id, "$pull", user)
}

func (r *audioRepository) updateLikes(ctx context.Context, id primitive.ObjectID, op string, user primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: op, Value: bson.D{{Key: "likes", Value: user}}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *audioRepository) Latest(ctx context.Context, size int64) ([]model.AudioSummary, error) {
	return aggregate[model.AudioSummary](ctx, r.coll, query.LatestUploadsPipeline(size))
}

func (r *audioRepository) Recommended(ctx context.Context, categories []string, size int64) ([]model.AudioSummary, error) {
	return aggregate[model.AudioSummary](ctx, r.coll, query.RecommendationPipeline(categories, size))
}

func (r *audioRepository) SampleByCategory(ctx context.Context, pool, size int64) ([]query.CategoryGroup, error) {
	return aggregate[query.CategoryGroup](ctx, r.coll, query.AutoPlaylistSamplePipeline(pool, size))
}
