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

// HistoryRepository defines play history persistence operations.
type HistoryRepository interface {
	FindSameDayEntry(ctx context.Context, owner, audio primitive.ObjectID, day time.Time) (primitive.ObjectID, bool, error)
	UpdateEntry(ctx context.Context, owner primitive.ObjectID, entry model.HistoryEntry) error
	PushEntry(ctx context.Context, owner primitive.ObjectID, entry model.HistoryEntry) error
	ByDay(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.HistoryDay, error)
	RecentlyPlayed(ctx context.Context, owner primitive.ObjectID, size int64) ([]model.AudioSummary, error)
	RecentCategories(ctx context.Context, owner primitive.ObjectID, since time.Time) ([]string, error)
	DeleteAll(ctx context.Context, owner primitive.ObjectID) error
	RemoveEntries(ctx context.Context, owner primitive.ObjectID, ids []primitive.ObjectID) error
}

type historyRepository struct {
	coll *mongo.Collection
}

// NewHistoryRepository creates a new history repository.
func NewHistoryRepository(db *mongo.Database) HistoryRepository {
	return &historyRepository{coll: db.Collection(model.HistoriesCollection)}
}

// DayBounds returns the UTC calendar day containing t as [start, end).
func DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// FindSameDayEntry returns the id of the entry for audio played on the same
// calendar day as day, if any.
func (r *historyRepository) FindSameDayEntry(ctx context.Context, owner, audio primitive.ObjectID, day time.Time) (primitive.ObjectID, bool, error) {
	start, end := DayBounds(day)
	var rows []struct {
		ID primitive.ObjectID `bson:"id"`
	}
	cursor, err := r.coll.Aggregate(ctx, query.SameDayEntryPipeline(owner, audio, start, end))
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return primitive.NilObjectID, false, err
	}
	if len(rows) == 0 {
		return primitive.NilObjectID, false, nil
	}
	return rows[0].ID, true, nil
}

// UpdateEntry overwrites the progress and date of an existing entry in place
// and makes it the last played entry.
func (r *historyRepository) UpdateEntry(ctx context.Context, owner primitive.ObjectID, entry model.HistoryEntry) error {
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.D{{Key: "elem._id", Value: entry.ID}}},
	})
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "owner", Value: owner}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "all.$[elem].progress", Value: entry.Progress},
			{Key: "all.$[elem].date", Value: entry.Date},
			{Key: "last", Value: entry},
		}}},
		opts,
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PushEntry records a new play at the front of the history, creating the
// history on the first play.
func (r *historyRepository) PushEntry(ctx context.Context, owner primitive.ObjectID, entry model.HistoryEntry) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "owner", Value: owner}},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "all", Value: bson.D{
				{Key: "$each", Value: bson.A{entry}},
				{Key: "$position", Value: 0},
			}}}},
			{Key: "$set", Value: bson.D{{Key: "last", Value: entry}}},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *historyRepository) ByDay(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.HistoryDay, error) {
	if page.OutOfRange() {
		return []model.HistoryDay{}, nil
	}
	return aggregate[model.HistoryDay](ctx, r.coll, query.HistoryByDayPipeline(owner, page))
}

func (r *historyRepository) RecentlyPlayed(ctx context.Context, owner primitive.ObjectID, size int64) ([]model.AudioSummary, error) {
	return aggregate[model.AudioSummary](ctx, r.coll, query.RecentlyPlayedPipeline(owner, size))
}

func (r *historyRepository) RecentCategories(ctx context.Context, owner primitive.ObjectID, since time.Time) ([]string, error) {
	rows, err := aggregate[struct {
		Category string `bson:"_id"`
	}](ctx, r.coll, query.RecentCategoriesPipeline(owner, since))
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.Category)
	}
	return categories, nil
}

func (r *historyRepository) DeleteAll(ctx context.Context, owner primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.D{{Key: "owner", Value: owner}})
	return err
}

// RemoveEntries pulls the given entries. Unknown ids are ignored.
func (r *historyRepository) RemoveEntries(ctx context.Context, owner primitive.ObjectID, ids []primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "owner", Value: owner}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "all", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}},
		}}}}},
	)
	return err
}
