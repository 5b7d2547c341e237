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

// Follow list fields of a user document.
const (
	FollowersField  = "followers"
	FollowingsField = "followings"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	SetVerified(ctx context.Context, id primitive.ObjectID) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name string, avatar *model.MediaRef) (*model.User, error)
	AddToken(ctx context.Context, id primitive.ObjectID, token string) error
	RemoveToken(ctx context.Context, id primitive.ObjectID, token string) error
	ClearTokens(ctx context.Context, id primitive.ObjectID) error
	HasFollower(ctx context.Context, id, follower primitive.ObjectID) (bool, error)
	AddToFollowList(ctx context.Context, id primitive.ObjectID, field string, other primitive.ObjectID) error
	RemoveFromFollowList(ctx context.Context, id primitive.ObjectID, field string, other primitive.ObjectID) error
	ListFollows(ctx context.Context, id primitive.ObjectID, field string, page query.Page) ([]model.FollowProfile, error)
}

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository builds a MongoDB-backed repository.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection(model.UsersCollection)}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt, user.UpdatedAt = now, now
	if user.Tokens == nil {
		user.Tokens = []string{}
	}
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.Followings == nil {
		user.Followings = []primitive.ObjectID{}
	}
	_, err := r.coll.InsertOne(ctx, user)
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.D) (*model.User, error) {
	var user model.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SetVerified(ctx context.Context, id primitive.ObjectID) error {
	return r.update(ctx, id, bson.D{{Key: "$set", Value: bson.D{{Key: "verified", Value: true}}}})
}

func (r *userRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return r.update(ctx, id, bson.D{{Key: "$set", Value: bson.D{{Key: "password", Value: hash}}}})
}

// UpdateProfile sets the name and, when given, the avatar, returning the updated user.
func (r *userRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, name string, avatar *model.MediaRef) (*model.User, error) {
	set := bson.D{
		{Key: "name", Value: name},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}
	if avatar != nil {
		set = append(set, bson.E{Key: "avatar", Value: avatar})
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user model.User
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) AddToken(ctx context.Context, id primitive.ObjectID, token string) error {
	return r.update(ctx, id, bson.D{{Key: "$push", Value: bson.D{{Key: "tokens", Value: token}}}})
}

func (r *userRepository) RemoveToken(ctx context.Context, id primitive.ObjectID, token string) error {
	return r.update(ctx, id, bson.D{{Key: "$pull", Value: bson.D{{Key: "tokens", Value: token}}}})
}

func (r *userRepository) ClearTokens(ctx context.Context, id primitive.ObjectID) error {
	return r.update(ctx, id, bson.D{{Key: "$set", Value: bson.D{{Key: "tokens", Value: bson.A{}}}}})
}

func (r *userRepository) HasFollower(ctx context.Context, id, follower primitive.ObjectID) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{
		{Key: "_id", Value: id},
		{Key: FollowersField, Value: follower},
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AddToFollowList appends other to the followers or followings of id. Adding
// an id already present is a no-op.
func (r *userRepository) AddToFollowList(ctx context.Context, id primitive.ObjectID, field string, other primitive.ObjectID) error {
	return r.update(ctx, id, bson.D{{Key: "$addToSet", Value: bson.D{{Key: field, Value: other}}}})
}

func (r *userRepository) RemoveFromFollowList(ctx context.Context, id primitive.ObjectID, field string, other primitive.ObjectID) error {
	return r.update(ctx, id, bson.D{{Key: "$pull", Value: bson.D{{Key: field, Value: other}}}})
}

func (r *userRepository) ListFollows(ctx context.Context, id primitive.ObjectID, field string, page query.Page) ([]model.FollowProfile, error) {
	if page.OutOfRange() {
		return []model.FollowProfile{}, nil
	}
	return aggregate[model.FollowProfile](ctx, r.coll, query.FollowPipeline(id, field, page))
}

// update applies change to the user and reports mongo.ErrNoDocuments when it does not exist.
func (r *userRepository) update(ctx context.Context, id primitive.ObjectID, change bson.D) error {
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, change)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
