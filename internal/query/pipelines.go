package query

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"podify/internal/model"
)

const (
	// RecommendationSize is the number of audios returned by the recommendation query.
	RecommendationSize = 10
	// RecentlyPlayedSize is the number of audios returned by the recently played query.
	RecentlyPlayedSize = 10
	// LatestUploadsSize is the number of audios returned by the latest uploads query.
	LatestUploadsSize = 10
	// RecommendationWindow bounds how far back played categories are collected.
	RecommendationWindow = 30 * 24 * time.Hour
)

// CategoryGroup is one group of the auto-playlist sample.
type CategoryGroup struct {
	Category string               `bson:"_id"`
	Audios   []primitive.ObjectID `bson:"audios"`
}

// DayKeyFormat normalizes a timestamp to its calendar day (UTC).
const DayKeyFormat = "%Y-%m-%d"

func likesCountStage() bson.D {
	return bson.D{{Key: "$addFields", Value: bson.D{
		{Key: "likesCount", Value: bson.D{{Key: "$size", Value: bson.D{
			{Key: "$ifNull", Value: bson.A{"$likes", bson.A{}}},
		}}}},
	}}}
}

// LatestUploadsPipeline returns the newest audios with their owners.
func LatestUploadsPipeline(size int64) mongo.Pipeline {
	return pipeline(
		[]bson.D{
			{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
			{{Key: "$limit", Value: size}},
		},
		AudioSummaryStages(),
	)
}

// RecentCategoriesPipeline runs against histories and yields one document per
// category the owner played since the given time.
func RecentCategoriesPipeline(owner primitive.ObjectID, since time.Time) mongo.Pipeline {
	return pipeline(
		[]bson.D{
			Match(bson.D{{Key: "owner", Value: owner}}),
			Unwind("all"),
			Match(bson.D{{Key: "all.date", Value: bson.D{{Key: "$gte", Value: since}}}}),
			{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$all.audio"}}}},
		},
		LookupOne(model.AudiosCollection, "_id", "audio", mongo.Pipeline{
			{{Key: "$project", Value: bson.D{{Key: "category", Value: 1}}}},
		}),
		[]bson.D{
			{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$audio.category"}}}},
		},
	)
}

// RecommendationPipeline ranks audios by like count. An empty category set
// means the whole collection is the candidate pool.
func RecommendationPipeline(categories []string, size int64) mongo.Pipeline {
	var stages []bson.D
	if len(categories) > 0 {
		stages = append(stages, Match(bson.D{{Key: "category", Value: bson.D{{Key: "$in", Value: categories}}}}))
	}
	stages = append(stages,
		likesCountStage(),
		bson.D{{Key: "$sort", Value: bson.D{{Key: "likesCount", Value: -1}}}},
		bson.D{{Key: "$limit", Value: size}},
	)
	return pipeline(stages, AudioSummaryStages())
}

// AutoPlaylistSamplePipeline keeps the pool most liked audios, samples size of
// them and groups the sample ids by category.
func AutoPlaylistSamplePipeline(pool, size int64) mongo.Pipeline {
	return mongo.Pipeline{
		likesCountStage(),
		{{Key: "$sort", Value: bson.D{{Key: "likesCount", Value: -1}}}},
		{{Key: "$limit", Value: pool}},
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: size}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "audios", Value: bson.D{{Key: "$push", Value: "$_id"}}},
		}}},
	}
}

// HistoryByDayPipeline pages through the owner's plays and groups them by the
// calendar day of each entry's own date, newest day first. Inside a day the
// plays keep their stored order.
func HistoryByDayPipeline(owner primitive.ObjectID, p Page) mongo.Pipeline {
	return pipeline(
		[]bson.D{
			Match(bson.D{{Key: "owner", Value: owner}}),
			{{Key: "$project", Value: bson.D{{Key: "all", Value: Slice("all", p)}}}},
			Unwind("all"),
		},
		LookupOne(model.AudiosCollection, "all.audio", "audio", mongo.Pipeline{
			{{Key: "$project", Value: bson.D{{Key: "title", Value: 1}}}},
		}),
		[]bson.D{
			{{Key: "$group", Value: bson.D{
				{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
					{Key: "format", Value: DayKeyFormat},
					{Key: "date", Value: "$all.date"},
				}}}},
				{Key: "audios", Value: bson.D{{Key: "$push", Value: bson.D{
					{Key: "id", Value: "$all._id"},
					{Key: "audioId", Value: "$all.audio"},
					{Key: "title", Value: "$audio.title"},
					{Key: "date", Value: "$all.date"},
				}}}},
			}}},
			{{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}}},
			{{Key: "$project", Value: bson.D{
				{Key: "_id", Value: 0},
				{Key: "date", Value: "$_id"},
				{Key: "audios", Value: 1},
			}}},
		},
	)
}

// RecentlyPlayedPipeline returns the audios of the owner's latest plays.
func RecentlyPlayedPipeline(owner primitive.ObjectID, size int64) mongo.Pipeline {
	return pipeline(
		[]bson.D{
			Match(bson.D{{Key: "owner", Value: owner}}),
			{{Key: "$project", Value: bson.D{{Key: "all", Value: bson.D{{Key: "$slice", Value: bson.A{"$all", size}}}}}}},
			Unwind("all"),
		},
		AudioSummaryLookup("all.audio", "audio"),
		[]bson.D{ReplaceRoot("audio")},
	)
}

// SameDayEntryPipeline finds the owner's entry for audio dated within [start, end).
func SameDayEntryPipeline(owner, audio primitive.ObjectID, start, end time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		Match(bson.D{{Key: "owner", Value: owner}}),
		Unwind("all"),
		Match(bson.D{
			{Key: "all.audio", Value: audio},
			{Key: "all.date", Value: bson.D{{Key: "$gte", Value: start}, {Key: "$lt", Value: end}}},
		}),
		{{Key: "$project", Value: bson.D{{Key: "_id", Value: 0}, {Key: "id", Value: "$all._id"}}}},
		{{Key: "$limit", Value: 1}},
	}
}

// FavoriteItemsPipeline pages through the owner's favorites, most recently added first.
func FavoriteItemsPipeline(owner primitive.ObjectID, p Page) mongo.Pipeline {
	return pipeline(
		[]bson.D{
			Match(bson.D{{Key: "owner", Value: owner}}),
			{{Key: "$project", Value: bson.D{{Key: "items", Value: SliceNewestFirst("items", p)}}}},
			Unwind("items"),
		},
		AudioSummaryLookup("items", "audio"),
		[]bson.D{ReplaceRoot("audio")},
	)
}

// PlaylistItemsPipeline populates the items of a playlist in playlist order.
// A nil page returns every item.
func PlaylistItemsPipeline(playlist primitive.ObjectID, p *Page) mongo.Pipeline {
	stages := []bson.D{
		Match(bson.D{{Key: "_id", Value: playlist}}),
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$items"},
			{Key: "includeArrayIndex", Value: "position"},
		}}},
	}
	stages = append(stages, AudioSummaryLookup("items", "audio")...)
	stages = append(stages, bson.D{{Key: "$sort", Value: bson.D{{Key: "position", Value: 1}}}})
	if p != nil {
		stages = append(stages, Paginate(*p)...)
	}
	stages = append(stages, ReplaceRoot("audio"))
	return mongo.Pipeline(stages)
}

// FollowPipeline pages through the followers or followings of a user, most
// recent first, as reduced profiles.
func FollowPipeline(user primitive.ObjectID, field string, p Page) mongo.Pipeline {
	return pipeline(
		[]bson.D{
			Match(bson.D{{Key: "_id", Value: user}}),
			{{Key: "$project", Value: bson.D{{Key: "ids", Value: SliceNewestFirst(field, p)}}}},
			Unwind("ids"),
		},
		LookupOne(model.UsersCollection, "ids", "profile", mongo.Pipeline{ProfileProjection()}),
		[]bson.D{ReplaceRoot("profile")},
	)
}
