package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"podify/internal/model"
)

func TestIndexes(t *testing.T) {
	idx := Indexes()

	for _, collection := range []string{
		model.UsersCollection, model.AudiosCollection, model.PlaylistsCollection,
		model.FavoritesCollection, model.HistoriesCollection,
	} {
		assert.NotEmpty(t, idx[collection], collection)
	}

	users := idx[model.UsersCollection]
	require.Len(t, users, 1)
	assert.Equal(t, bson.D{{Key: "email", Value: 1}}, users[0].Keys)
	require.NotNil(t, users[0].Options.Unique)
	assert.True(t, *users[0].Options.Unique)

	var auto bool
	for _, m := range idx[model.PlaylistsCollection] {
		if m.Options != nil && m.Options.PartialFilterExpression != nil {
			auto = true
			assert.Equal(t, bson.D{{Key: "visibility", Value: "auto"}}, m.Options.PartialFilterExpression)
			assert.True(t, *m.Options.Unique)
		}
	}
	assert.True(t, auto, "auto playlists need a unique title index")
}
