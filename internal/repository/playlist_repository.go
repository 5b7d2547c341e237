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

// PlaylistRepository defines playlist persistence operations.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *model.Playlist) error
	FindOwned(ctx context.Context, id, owner primitive.ObjectID) (*model.Playlist, error)
	FindPublic(ctx context.Context, id primitive.ObjectID) (*model.Playlist, error)
	UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, title string, visibility model.Visibility, item *primitive.ObjectID) (*model.Playlist, error)
	RemoveItem(ctx context.Context, id, owner, item primitive.ObjectID) (bool, error)
	DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (bool, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID, publicOnly bool, page query.Page) ([]model.Playlist, error)
	ListAuto(ctx context.Context) ([]model.Playlist, error)
	Items(ctx context.Context, id primitive.ObjectID, page *query.Page) ([]model.AudioSummary, error)
	UpsertAuto(ctx context.Context, title string, items []primitive.ObjectID) error
}

type playlistRepository struct {
	coll *mongo.Collection
}

// NewPlaylistRepository creates a new playlist repository.
func NewPlaylistRepository(db *mongo.Database) PlaylistRepository {
	return &playlistRepository{coll: db.Collection(model.PlaylistsCollection)}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	now := time.Now().UTC()
	playlist.ID = primitive.NewObjectID()
	playlist.CreatedAt, playlist.UpdatedAt = now, now
	if playlist.Items == nil {
		playlist.Items = []primitive.ObjectID{}
	}
	_, err := r.coll.InsertOne(ctx, playlist)
	return err
}

func (r *playlistRepository) findOne(ctx context.Context, filter bson.D) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := r.coll.FindOne(ctx, filter).Decode(&playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (r *playlistRepository) FindOwned(ctx context.Context, id, owner primitive.ObjectID) (*model.Playlist, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}, {Key: "owner", Value: owner}})
}

// FindPublic finds a playlist anyone may read: a public one or an auto playlist.
func (r *playlistRepository) FindPublic(ctx context.Context, id primitive.ObjectID) (*model.Playlist, error) {
	return r.findOne(ctx, bson.D{
		{Key: "_id", Value: id},
		{Key: "visibility", Value: bson.D{{Key: "$in", Value: bson.A{model.VisibilityPublic, model.VisibilityAuto}}}},
	})
}

// UpdateOwned renames the playlist and changes its visibility. When item is
// set it is appended unless already present.
func (r *playlistRepository) UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, title string, visibility model.Visibility, item *primitive.ObjectID) (*model.Playlist, error) {
	change := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: title},
		{Key: "visibility", Value: visibility},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	if item != nil {
		change = append(change, bson.E{Key: "$addToSet", Value: bson.D{{Key: "items", Value: *item}}})
	}
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "owner", Value: owner},
		{Key: "visibility", Value: bson.D{{Key: "$ne", Value: model.VisibilityAuto}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var playlist model.Playlist
	if err := r.coll.FindOneAndUpdate(ctx, filter, change, opts).Decode(&playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// RemoveItem pulls item from an owned playlist and reports whether the playlist exists.
func (r *playlistRepository) RemoveItem(ctx context.Context, id, owner, item primitive.ObjectID) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}, {Key: "owner", Value: owner}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "items", Value: item}}}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *playlistRepository) DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}, {Key: "owner", Value: owner}})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// ListByOwner lists the owner's playlists, newest first. Auto playlists are
// never included; publicOnly further hides private ones.
func (r *playlistRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID, publicOnly bool, page query.Page) ([]model.Playlist, error) {
	if page.OutOfRange() {
		return []model.Playlist{}, nil
	}
	filter := bson.D{{Key: "owner", Value: owner}}
	if publicOnly {
		filter = append(filter, bson.E{Key: "visibility", Value: model.VisibilityPublic})
	} else {
		filter = append(filter, bson.E{Key: "visibility", Value: bson.D{{Key: "$ne", Value: model.VisibilityAuto}}})
	}
	return find[model.Playlist](ctx, r.coll, filter, query.FindOptions(page, "createdAt"))
}

func (r *playlistRepository) ListAuto(ctx context.Context) ([]model.Playlist, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	return find[model.Playlist](ctx, r.coll, bson.D{{Key: "visibility", Value: model.VisibilityAuto}}, opts)
}

func (r *playlistRepository) Items(ctx context.Context, id primitive.ObjectID, page *query.Page) ([]model.AudioSummary, error) {
	if page != nil && page.OutOfRange() {
		return []model.AudioSummary{}, nil
	}
	return aggregate[model.AudioSummary](ctx, r.coll, query.PlaylistItemsPipeline(id, page))
}

// UpsertAuto replaces the items of the auto playlist titled after a category,
// creating it on first run.
func (r *playlistRepository) UpsertAuto(ctx context.Context, title string, items []primitive.ObjectID) error {
	now := time.Now().UTC()
	_, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "title", Value: title}, {Key: "visibility", Value: model.VisibilityAuto}},
		bson.D{
			{Key: "$set", Value: bson.D{{Key: "items", Value: items}, {Key: "updatedAt", Value: now}}},
			{Key: "$setOnInsert", Value: bson.D{{Key: "owner", Value: model.SystemOwner}, {Key: "createdAt", Value: now}}},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
