package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "podify/internal/errors"
	"podify/internal/model"
	"podify/internal/query"
)

func TestPlaylistService_Create(t *testing.T) {
	owner, audio := primitive.NewObjectID(), primitive.NewObjectID()

	tests := []struct {
		name          string
		item          *primitive.ObjectID
		setupMock     func(*MockPlaylistRepository, *MockAudioRepository)
		expectedItems int
		expectedError error
	}{
		{
			name: "empty playlist",
			setupMock: func(p *MockPlaylistRepository, _ *MockAudioRepository) {
				p.On("Create", mock.Anything, mock.AnythingOfType("*model.Playlist")).Return(nil)
			},
		},
		{
			name: "seeded with audio",
			item: &audio,
			setupMock: func(p *MockPlaylistRepository, a *MockAudioRepository) {
				a.On("Exists", mock.Anything, audio).Return(true, nil)
				p.On("Create", mock.Anything, mock.AnythingOfType("*model.Playlist")).Return(nil)
			},
			expectedItems: 1,
		},
		{
			name: "unknown audio",
			item: &audio,
			setupMock: func(_ *MockPlaylistRepository, a *MockAudioRepository) {
				a.On("Exists", mock.Anything, audio).Return(false, nil)
			},
			expectedError: apperrors.ErrAudioNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			playlists, audios := new(MockPlaylistRepository), new(MockAudioRepository)
			tt.setupMock(playlists, audios)

			playlist, err := NewPlaylistService(playlists, audios).Create(context.Background(), owner, "Mix", model.VisibilityPrivate, tt.item)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				playlists.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, owner, playlist.Owner)
			assert.Equal(t, model.VisibilityPrivate, playlist.Visibility)
			assert.Len(t, playlist.Items, tt.expectedItems)
			playlists.AssertExpectations(t)
		})
	}
}

func TestPlaylistService_UpdateNotOwned(t *testing.T) {
	owner, id := primitive.NewObjectID(), primitive.NewObjectID()
	playlists := new(MockPlaylistRepository)
	playlists.On("UpdateOwned", mock.Anything, id, owner, "Mix", model.VisibilityPublic, (*primitive.ObjectID)(nil)).Return(nil, mongo.ErrNoDocuments)

	_, err := NewPlaylistService(playlists, new(MockAudioRepository)).Update(context.Background(), owner, id, "Mix", model.VisibilityPublic, nil)
	assert.ErrorIs(t, err, apperrors.ErrPlaylistNotFound)
}

func TestPlaylistService_Delete(t *testing.T) {
	owner, id, item := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	playlists := new(MockPlaylistRepository)
	playlists.On("DeleteOwned", mock.Anything, id, owner).Return(false, nil)
	playlists.On("RemoveItem", mock.Anything, id, owner, item).Return(true, nil)
	svc := NewPlaylistService(playlists, new(MockAudioRepository))

	assert.ErrorIs(t, svc.Delete(context.Background(), owner, id), apperrors.ErrPlaylistNotFound)
	assert.NoError(t, svc.RemoveItem(context.Background(), owner, id, item))
}

func TestPlaylistService_Detail(t *testing.T) {
	owner, id := primitive.NewObjectID(), primitive.NewObjectID()

	t.Run("owner sees every item", func(t *testing.T) {
		playlists := new(MockPlaylistRepository)
		playlists.On("FindOwned", mock.Anything, id, owner).Return(&model.Playlist{ID: id, Title: "Mix"}, nil)
		playlists.On("Items", mock.Anything, id, (*query.Page)(nil)).Return([]model.AudioSummary{{Title: "A"}, {Title: "B"}}, nil)

		detail, err := NewPlaylistService(playlists, new(MockAudioRepository)).Detail(context.Background(), owner, id)
		require.NoError(t, err)
		assert.Equal(t, "Mix", detail.Title)
		assert.Equal(t, "A", detail.Audios[0].Title)
	})

	t.Run("other users get not found", func(t *testing.T) {
		playlists := new(MockPlaylistRepository)
		playlists.On("FindOwned", mock.Anything, id, owner).Return(nil, mongo.ErrNoDocuments)

		_, err := NewPlaylistService(playlists, new(MockAudioRepository)).Detail(context.Background(), owner, id)
		assert.ErrorIs(t, err, apperrors.ErrPlaylistNotFound)
	})
}

func TestPlaylistService_Lists(t *testing.T) {
	owner := primitive.NewObjectID()
	page := query.Page{Number: 1, Limit: 20}
	items := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	playlists := new(MockPlaylistRepository)
	playlists.On("ListByOwner", mock.Anything, owner, false, page).Return([]model.Playlist{{Title: "Mine", Items: items, Visibility: model.VisibilityPrivate}}, nil)
	playlists.On("ListByOwner", mock.Anything, owner, true, page).Return([]model.Playlist{}, nil)
	playlists.On("ListAuto", mock.Anything).Return([]model.Playlist{{Title: "Music", Visibility: model.VisibilityAuto}}, nil)
	svc := NewPlaylistService(playlists, new(MockAudioRepository))

	mine, err := svc.ListByProfile(context.Background(), owner, page)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 2, mine[0].ItemsCount)

	public, err := svc.PublicPlaylists(context.Background(), owner, page)
	require.NoError(t, err)
	assert.NotNil(t, public)
	assert.Empty(t, public)

	auto, err := svc.ListAuto(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.VisibilityAuto, auto[0].Visibility)
}

func TestPlaylistService_PublicPlaylistAudios(t *testing.T) {
	id := primitive.NewObjectID()
	page := query.Page{Number: 2, Limit: 5}

	playlists := new(MockPlaylistRepository)
	playlists.On("FindPublic", mock.Anything, id).Return(&model.Playlist{ID: id, Title: "Open"}, nil)
	playlists.On("Items", mock.Anything, id, &page).Return([]model.AudioSummary{}, nil)

	detail, err := NewPlaylistService(playlists, new(MockAudioRepository)).PublicPlaylistAudios(context.Background(), id, page)
	require.NoError(t, err)
	assert.Equal(t, "Open", detail.Title)
	playlists.AssertExpectations(t)
}
