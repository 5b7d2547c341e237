package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apperrors "podify/internal/errors"
	"podify/internal/model"
	"podify/internal/query"
	"podify/internal/repository"
)

// memFavorites keeps favorite lists in memory.
type memFavorites struct {
	lists map[primitive.ObjectID][]primitive.ObjectID
}

func newMemFavorites() *memFavorites {
	return &memFavorites{lists: map[primitive.ObjectID][]primitive.ObjectID{}}
}

func (f *memFavorites) Contains(_ context.Context, owner, audio primitive.ObjectID) (bool, error) {
	for _, id := range f.lists[owner] {
		if id == audio {
			return true, nil
		}
	}
	return false, nil
}

func (f *memFavorites) Add(ctx context.Context, owner, audio primitive.ObjectID) error {
	if ok, _ := f.Contains(ctx, owner, audio); !ok {
		f.lists[owner] = append(f.lists[owner], audio)
	}
	return nil
}

func (f *memFavorites) Remove(_ context.Context, owner, audio primitive.ObjectID) error {
	kept := f.lists[owner][:0]
	for _, id := range f.lists[owner] {
		if id != audio {
			kept = append(kept, id)
		}
	}
	f.lists[owner] = kept
	return nil
}

func (f *memFavorites) Items(context.Context, primitive.ObjectID, query.Page) ([]model.AudioSummary, error) {
	return []model.AudioSummary{}, nil
}

// memAudios tracks like sets; other AudioRepository methods are not used.
type memAudios struct {
	repository.AudioRepository
	likes   map[primitive.ObjectID]map[primitive.ObjectID]bool
	likeErr error
}

func (a *memAudios) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	_, ok := a.likes[id]
	return ok, nil
}

func (a *memAudios) AddLike(_ context.Context, id, user primitive.ObjectID) error {
	if a.likeErr != nil {
		return a.likeErr
	}
	a.likes[id][user] = true
	return nil
}

func (a *memAudios) RemoveLike(_ context.Context, id, user primitive.ObjectID) error {
	if a.likeErr != nil {
		return a.likeErr
	}
	delete(a.likes[id], user)
	return nil
}

func TestFavoriteService_ToggleIsInvolution(t *testing.T) {
	user, audio := primitive.NewObjectID(), primitive.NewObjectID()
	favorites := newMemFavorites()
	audios := &memAudios{likes: map[primitive.ObjectID]map[primitive.ObjectID]bool{audio: {}}}
	svc := NewFavoriteService(favorites, audios, zap.NewNop())
	ctx := context.Background()

	status, err := svc.Toggle(ctx, user, audio)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAdded, status)
	assert.True(t, audios.likes[audio][user])
	fav, _ := svc.IsFavorite(ctx, user, audio)
	assert.True(t, fav)

	status, err = svc.Toggle(ctx, user, audio)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRemoved, status)
	assert.False(t, audios.likes[audio][user])
	fav, _ = svc.IsFavorite(ctx, user, audio)
	assert.False(t, fav)
	assert.Empty(t, favorites.lists[user])
}

func TestFavoriteService_ToggleUnknownAudio(t *testing.T) {
	audios := &memAudios{likes: map[primitive.ObjectID]map[primitive.ObjectID]bool{}}
	svc := NewFavoriteService(newMemFavorites(), audios, zap.NewNop())

	_, err := svc.Toggle(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrAudioNotFound)
}

func TestFavoriteService_ToggleCompensatesFailedLike(t *testing.T) {
	user, audio := primitive.NewObjectID(), primitive.NewObjectID()
	favorites := newMemFavorites()
	audios := &memAudios{
		likes:   map[primitive.ObjectID]map[primitive.ObjectID]bool{audio: {}},
		likeErr: assert.AnError,
	}
	svc := NewFavoriteService(favorites, audios, zap.NewNop())

	_, err := svc.Toggle(context.Background(), user, audio)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, favorites.lists[user], "favorite list is rolled back")

	favorites.lists[user] = []primitive.ObjectID{audio}
	_, err = svc.Toggle(context.Background(), user, audio)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []primitive.ObjectID{audio}, favorites.lists[user], "removal is rolled back")
}

func TestFavoriteService_List(t *testing.T) {
	user := primitive.NewObjectID()
	page := query.Page{Number: 2, Limit: 5}
	audios := new(MockAudioRepository)
	favorites := &mockFavorites{}
	favorites.On("Items", mock.Anything, user, page).Return([]model.AudioSummary{{Title: "Episode"}}, nil)

	list, err := NewFavoriteService(favorites, audios, zap.NewNop()).List(context.Background(), user, page)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	favorites.AssertExpectations(t)
}

type mockFavorites struct {
	mock.Mock
}

func (m *mockFavorites) Contains(ctx context.Context, owner, audio primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, owner, audio)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavorites) Add(ctx context.Context, owner, audio primitive.ObjectID) error {
	return m.Called(ctx, owner, audio).Error(0)
}

func (m *mockFavorites) Remove(ctx context.Context, owner, audio primitive.ObjectID) error {
	return m.Called(ctx, owner, audio).Error(0)
}

func (m *mockFavorites) Items(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.AudioSummary, error) {
	args := m.Called(ctx, owner, page)
	return args.Get(0).([]model.AudioSummary), args.Error(1)
}
