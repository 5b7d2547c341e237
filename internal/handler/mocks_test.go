package handler_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"podify/internal/model"
	"podify/internal/query"
	"podify/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, name, email, password string) (*model.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, userID primitive.ObjectID, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}

func (m *MockAuthService) ResendVerification(ctx context.Context, userID primitive.ObjectID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthService) VerifyResetToken(ctx context.Context, userID primitive.ObjectID, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}

func (m *MockAuthService) UpdatePassword(ctx context.Context, userID primitive.ObjectID, token, password string) error {
	return m.Called(ctx, userID, token, password).Error(0)
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Authenticate(ctx context.Context, userID, token string) (*model.User, error) {
	args := m.Called(ctx, userID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) LogOut(ctx context.Context, userID primitive.ObjectID, token string, fromAll bool) error {
	return m.Called(ctx, userID, token, fromAll).Error(0)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, name string, avatar *model.MediaRef) (*model.User, error) {
	args := m.Called(ctx, userID, name, avatar)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockAudioService struct {
	mock.Mock
}

func (m *MockAudioService) Create(ctx context.Context, owner primitive.ObjectID, in service.AudioInput) (*model.Audio, error) {
	args := m.Called(ctx, owner, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Audio), args.Error(1)
}

func (m *MockAudioService) Update(ctx context.Context, id, owner primitive.ObjectID, in service.AudioInput) (*model.Audio, error) {
	args := m.Called(ctx, id, owner, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Audio), args.Error(1)
}

func (m *MockAudioService) Latest(ctx context.Context) ([]model.AudioSummary, error) {
	args := m.Called(ctx)
	return summaries(args.Get(0)), args.Error(1)
}

type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) Toggle(ctx context.Context, user, audio primitive.ObjectID) (model.ToggleStatus, error) {
	args := m.Called(ctx, user, audio)
	return args.Get(0).(model.ToggleStatus), args.Error(1)
}

func (m *MockFavoriteService) List(ctx context.Context, user primitive.ObjectID, page query.Page) ([]model.AudioSummary, error) {
	args := m.Called(ctx, user, page)
	return summaries(args.Get(0)), args.Error(1)
}

func (m *MockFavoriteService) IsFavorite(ctx context.Context, user, audio primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, user, audio)
	return args.Bool(0), args.Error(1)
}

type MockPlaylistService struct {
	mock.Mock
}

func (m *MockPlaylistService) Create(ctx context.Context, owner primitive.ObjectID, title string, visibility model.Visibility, item *primitive.ObjectID) (*model.Playlist, error) {
	args := m.Called(ctx, owner, title, visibility, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *MockPlaylistService) Update(ctx context.Context, owner, id primitive.ObjectID, title string, visibility model.Visibility, item *primitive.ObjectID) (*model.Playlist, error) {
	args := m.Called(ctx, owner, id, title, visibility, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *MockPlaylistService) Delete(ctx context.Context, owner, id primitive.ObjectID) error {
	return m.Called(ctx, owner, id).Error(0)
}

func (m *MockPlaylistService) RemoveItem(ctx context.Context, owner, id, item primitive.ObjectID) error {
	return m.Called(ctx, owner, id, item).Error(0)
}

func (m *MockPlaylistService) ListByProfile(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.PlaylistInfo, error) {
	args := m.Called(ctx, owner, page)
	return infos(args.Get(0)), args.Error(1)
}

func (m *MockPlaylistService) Detail(ctx context.Context, owner, id primitive.ObjectID) (*model.PlaylistDetail, error) {
	args := m.Called(ctx, owner, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlaylistDetail), args.Error(1)
}

func (m *MockPlaylistService) ListAuto(ctx context.Context) ([]model.PlaylistInfo, error) {
	args := m.Called(ctx)
	return infos(args.Get(0)), args.Error(1)
}

func (m *MockPlaylistService) PublicPlaylists(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.PlaylistInfo, error) {
	args := m.Called(ctx, owner, page)
	return infos(args.Get(0)), args.Error(1)
}

func (m *MockPlaylistService) PublicPlaylistAudios(ctx context.Context, id primitive.ObjectID, page query.Page) (*model.PlaylistDetail, error) {
	args := m.Called(ctx, id, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlaylistDetail), args.Error(1)
}

type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) Record(ctx context.Context, owner, audio primitive.ObjectID, progress float64, date time.Time) error {
	return m.Called(ctx, owner, audio, progress, date).Error(0)
}

func (m *MockHistoryService) ByDay(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.HistoryDay, error) {
	args := m.Called(ctx, owner, page)
	days, _ := args.Get(0).([]model.HistoryDay)
	return days, args.Error(1)
}

func (m *MockHistoryService) RecentlyPlayed(ctx context.Context, owner primitive.ObjectID) ([]model.AudioSummary, error) {
	args := m.Called(ctx, owner)
	return summaries(args.Get(0)), args.Error(1)
}

func (m *MockHistoryService) DeleteAll(ctx context.Context, owner primitive.ObjectID) error {
	return m.Called(ctx, owner).Error(0)
}

func (m *MockHistoryService) Remove(ctx context.Context, owner primitive.ObjectID, ids []primitive.ObjectID) error {
	return m.Called(ctx, owner, ids).Error(0)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) ToggleFollow(ctx context.Context, actor, target primitive.ObjectID) (model.ToggleStatus, error) {
	args := m.Called(ctx, actor, target)
	return args.Get(0).(model.ToggleStatus), args.Error(1)
}

func (m *MockProfileService) IsFollowing(ctx context.Context, actor, target primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, actor, target)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileService) Followers(ctx context.Context, user primitive.ObjectID, page query.Page) ([]model.FollowProfile, error) {
	args := m.Called(ctx, user, page)
	profiles, _ := args.Get(0).([]model.FollowProfile)
	return profiles, args.Error(1)
}

func (m *MockProfileService) Followings(ctx context.Context, user primitive.ObjectID, page query.Page) ([]model.FollowProfile, error) {
	args := m.Called(ctx, user, page)
	profiles, _ := args.Get(0).([]model.FollowProfile)
	return profiles, args.Error(1)
}

func (m *MockProfileService) Uploads(ctx context.Context, owner primitive.ObjectID, page query.Page) ([]model.AudioSummary, error) {
	args := m.Called(ctx, owner, page)
	return summaries(args.Get(0)), args.Error(1)
}

func (m *MockProfileService) PublicProfile(ctx context.Context, id primitive.ObjectID) (*model.PublicProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublicProfile), args.Error(1)
}

func (m *MockProfileService) Recommended(ctx context.Context, user *primitive.ObjectID) ([]model.AudioSummary, error) {
	args := m.Called(ctx, user)
	return summaries(args.Get(0)), args.Error(1)
}

func summaries(v interface{}) []model.AudioSummary {
	s, _ := v.([]model.AudioSummary)
	return s
}

func infos(v interface{}) []model.PlaylistInfo {
	s, _ := v.([]model.PlaylistInfo)
	return s
}
