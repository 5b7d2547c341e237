package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"podify/internal/auth"
	"podify/internal/model"
	"podify/internal/query"
	"podify/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) SetVerified(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, name string, avatar *model.MediaRef) (*model.User, error) {
	args := m.Called(ctx, id, name, avatar)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) AddToken(ctx context.Context, id primitive.ObjectID, token string) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *MockUserRepository) RemoveToken(ctx context.Context, id primitive.ObjectID, token string) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *MockUserRepository) ClearTokens(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) HasFollower(ctx context.Context, id, follower primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id, follower)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AddToFollowList(ctx context.Context, id primitive.ObjectID, field string, other primitive.ObjectID) error {
	return m.Called(ctx, id, field, other).Error(0)
}

func (m *MockUserRepository) RemoveFromFollowList(ctx context.Context, id primitive.ObjectID, field string, other primitive.ObjectID) error {
	return m.Called(ctx, id, field, other).Error(0)
}

func (m *MockUserRepository) ListFollows(ctx context.Context, id primitive.ObjectID, field string, page query.Page) ([]model.FollowProfile, error) {
	args := m.Called(ctx, id, field, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FollowProfile), args.Error(1)
}

// MockAudioRepository is a mock implementation of AudioRepository.
type MockAudioRepository struct {
	mock.Mock
}

func (m *MockAudioRepository) Create(ctx context.Context, audio *model.Audio) error {
	return m.Called(ctx, audio).Error(0)
}

func (m *MockAudioRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Audio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Audio), args.Error(1)
}

func (m *MockAudioRepository) UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, update repository.AudioUpdate) (*model.Audio, error) {
	args := m.Called(ctx, id, owner, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Audio), args.Error(1)
}

func (m *MockAudioRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAudioRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.Audio, error) {
	args := m.Called(ctx, owner, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Audio), args.Error(1)
}

func (m *MockAudioRepository) AddLike(ctx context.Context, id, user primitive.ObjectID) error {
	return m.Called(ctx, id, user).Error(0)
}

func (m *MockAudioRepository) RemoveLike(ctx context.Context, id, user primitive.ObjectID) error {
	return m.Called(ctx, id, user).Error(0)
}

func (m *MockAudioRepository) Latest(ctx context.Context, size int64) ([]model.AudioSummary, error) {
	args := m.Called(ctx, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AudioSummary), args.Error(1)
}

func (m *MockAudioRepository) Recommended(ctx context.Context, categories []string, size int64) ([]model.AudioSummary, error) {
	args := m.Called(ctx, categories, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AudioSummary), args.Error(1)
}

func (m *MockAudioRepository) SampleByCategory(ctx context.Context, pool, size int64) ([]query.CategoryGroup, error) {
	args := m.Called(ctx, pool, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]query.CategoryGroup), args.Error(1)
}

// MockPlaylistRepository is a mock implementation of PlaylistRepository.
type MockPlaylistRepository struct {
	mock.Mock
}

func (m *MockPlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	return m.Called(ctx, playlist).Error(0)
}

func (m *MockPlaylistRepository) FindOwned(ctx context.Context, id, owner primitive.ObjectID) (*model.Playlist, error) {
	args := m.Called(ctx, id, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) FindPublic(ctx context.Context, id primitive.ObjectID) (*model.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, title string, visibility model.Visibility, item *primitive.ObjectID) (*model.Playlist, error) {
	args := m.Called(ctx, id, owner, title, visibility, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) RemoveItem(ctx context.Context, id, owner, item primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id, owner, item)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlaylistRepository) DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id, owner)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlaylistRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID, publicOnly bool, page query.Page) ([]model.Playlist, error) {
	args := m.Called(ctx, owner, publicOnly, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) ListAuto(ctx context.Context) ([]model.Playlist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) Items(ctx context.Context, id primitive.ObjectID, page *query.Page) ([]model.AudioSummary, error) {
	args := m.Called(ctx, id, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AudioSummary), args.Error(1)
}

func (m *MockPlaylistRepository) UpsertAuto(ctx context.Context, title string, items []primitive.ObjectID) error {
	return m.Called(ctx, title, items).Error(0)
}

// MockHistoryRepository is a mock implementation of HistoryRepository.
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) FindSameDayEntry(ctx context.Context, owner, audio primitive.ObjectID, day time.Time) (primitive.ObjectID, bool, error) {
	args := m.Called(ctx, owner, audio, day)
	return args.Get(0).(primitive.ObjectID), args.Bool(1), args.Error(2)
}

func (m *MockHistoryRepository) UpdateEntry(ctx context.Context, owner primitive.ObjectID, entry model.HistoryEntry) error {
	return m.Called(ctx, owner, entry).Error(0)
}

func (m *MockHistoryRepository) PushEntry(ctx context.Context, owner primitive.ObjectID, entry model.HistoryEntry) error {
	return m.Called(ctx, owner, entry).Error(0)
}

func (m *MockHistoryRepository) ByDay(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.HistoryDay, error) {
	args := m.Called(ctx, owner, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HistoryDay), args.Error(1)
}

func (m *MockHistoryRepository) RecentlyPlayed(ctx context.Context, owner primitive.ObjectID, size int64) ([]model.AudioSummary, error) {
	args := m.Called(ctx, owner, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AudioSummary), args.Error(1)
}

func (m *MockHistoryRepository) RecentCategories(ctx context.Context, owner primitive.ObjectID, since time.Time) ([]string, error) {
	args := m.Called(ctx, owner, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockHistoryRepository) DeleteAll(ctx context.Context, owner primitive.ObjectID) error {
	return m.Called(ctx, owner).Error(0)
}

func (m *MockHistoryRepository) RemoveEntries(ctx context.Context, owner primitive.ObjectID, ids []primitive.ObjectID) error {
	return m.Called(ctx, owner, ids).Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Store(ctx context.Context, kind auth.TokenKind, userID, token string) error {
	return m.Called(ctx, kind, userID, token).Error(0)
}

func (m *MockTokenStore) Compare(ctx context.Context, kind auth.TokenKind, userID, token string) (bool, error) {
	args := m.Called(ctx, kind, userID, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenStore) Delete(ctx context.Context, kind auth.TokenKind, userID string) error {
	return m.Called(ctx, kind, userID).Error(0)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerification(ctx context.Context, to, name, otp string) error {
	return m.Called(ctx, to, name, otp).Error(0)
}

func (m *MockMailer) SendPasswordResetLink(ctx context.Context, to, link string) error {
	return m.Called(ctx, to, link).Error(0)
}

func (m *MockMailer) SendPasswordChanged(ctx context.Context, to, name, signInURL string) error {
	return m.Called(ctx, to, name, signInURL).Error(0)
}
