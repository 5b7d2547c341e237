package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"podify/internal/model"
)

// Match builds a $match stage.
func Match(filter bson.D) bson.D {
	return bson.D{{Key: "$match", Value: filter}}
}

// Unwind builds a $unwind stage that drops documents whose path is missing or empty.
func Unwind(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: "$" + path}}
}

// ReplaceRoot promotes the embedded document at path to the top level.
func ReplaceRoot(path string) bson.D {
	return bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$" + path}}}}
}

// LookupOne joins the document referenced by localField into as, shaped by
// the sub-pipeline. The trailing $unwind gives inner-join semantics: a
// dangling reference removes the row instead of producing a null.
func LookupOne(from, localField, as string, pipeline mongo.Pipeline) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: from},
			{Key: "localField", Value: localField},
			{Key: "foreignField", Value: "_id"},
			{Key: "pipeline", Value: pipeline},
			{Key: "as", Value: as},
		}}},
		Unwind(as),
	}
}

// OwnerProjection reduces a user to {id, name}.
func OwnerProjection() bson.D {
	return bson.D{{Key: "$project", Value: bson.D{
		{Key: "_id", Value: 0},
		{Key: "id", Value: "$_id"},
		{Key: "name", Value: 1},
	}}}
}

// ProfileProjection reduces a user to {id, name, avatar}.
func ProfileProjection() bson.D {
	return bson.D{{Key: "$project", Value: bson.D{
		{Key: "_id", Value: 0},
		{Key: "id", Value: "$_id"},
		{Key: "name", Value: 1},
		{Key: "avatar", Value: "$avatar.url"},
	}}}
}

// AudioSummaryStages joins the owner of each audio and projects the result
// into the model.AudioSummary shape.
func AudioSummaryStages() []bson.D {
	stages := LookupOne(model.UsersCollection, "owner", "owner", mongo.Pipeline{OwnerProjection()})
	return append(stages, bson.D{{Key: "$project", Value: bson.D{
		{Key: "_id", Value: 0},
		{Key: "id", Value: "$_id"},
		{Key: "title", Value: 1},
		{Key: "about", Value: 1},
		{Key: "category", Value: 1},
		{Key: "file", Value: "$file.url"},
		{Key: "poster", Value: "$poster.url"},
		{Key: "date", Value: "$createdAt"},
		{Key: "owner", Value: 1},
	}}})
}

// AudioSummaryLookup joins the audio referenced by localField as a summary
// under as, dropping rows whose audio or owner no longer exists.
func AudioSummaryLookup(localField, as string) []bson.D {
	return LookupOne(model.AudiosCollection, localField, as, mongo.Pipeline(AudioSummaryStages()))
}

func pipeline(parts ...[]bson.D) mongo.Pipeline {
	var p mongo.Pipeline
	for _, part := range parts {
		p = append(p, part...)
	}
	return p
}
