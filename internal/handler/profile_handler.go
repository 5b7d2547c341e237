package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"podify/internal/model"
	"podify/internal/service"
)

// ProfileHandler handles follows and public profile pages.
type ProfileHandler struct {
	profileService  service.ProfileService
	playlistService service.PlaylistService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService, playlistService service.PlaylistService) *ProfileHandler {
	return &ProfileHandler{
		profileService:  profileService,
		playlistService: playlistService,
	}
}

// PublicProfileResponse wraps another user's profile.
type PublicProfileResponse struct {
	Profile *model.PublicProfile `json:"profile"`
}

// FollowersResponse wraps a followers page.
type FollowersResponse struct {
	Followers []model.FollowProfile `json:"followers"`
}

// FollowingsResponse wraps a followings page.
type FollowingsResponse struct {
	Followings []model.FollowProfile `json:"followings"`
}

// UpdateFollower godoc
// @Summary Follow or unfollow a user
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /profile/update-follower/{id} [post]
func (h *ProfileHandler) UpdateFollower(c echo.Context) error {
	target, err := paramID(c, "id")
	if err != nil {
		return err
	}

	status, err := h.profileService.ToggleFollow(c.Request().Context(), CurrentUser(c).ID, target)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: status})
}

// Uploads godoc
// @Summary The caller's uploads
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} AudiosResponse
// @Router /profile/uploads [get]
func (h *ProfileHandler) Uploads(c echo.Context) error {
	return h.uploads(c, CurrentUser(c).ID)
}

// PublicUploads godoc
// @Summary Uploads of a user
// @Tags profile
// @Produce json
// @Param id path string true "User ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} AudiosResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /profile/uploads/{id} [get]
func (h *ProfileHandler) PublicUploads(c echo.Context) error {
	owner, err := paramID(c, "id")
	if err != nil {
		return err
	}
	return h.uploads(c, owner)
}

func (h *ProfileHandler) uploads(c echo.Context, owner primitive.ObjectID) error {
	audios, err := h.profileService.Uploads(c.Request().Context(), owner, pageParams(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, AudiosResponse{Audios: audios})
}

// PublicProfile godoc
// @Summary Public profile of a user
// @Tags profile
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} PublicProfileResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /profile/infos/{id} [get]
func (h *ProfileHandler) PublicProfile(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.profileService.PublicProfile(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, PublicProfileResponse{Profile: profile})
}

// PublicPlaylists godoc
// @Summary Public playlists of a user
// @Tags profile
// @Produce json
// @Param id path string true "User ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} PlaylistsResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /profile/playlists/{id} [get]
func (h *ProfileHandler) PublicPlaylists(c echo.Context) error {
	owner, err := paramID(c, "id")
	if err != nil {
		return err
	}

	playlists, err := h.playlistService.PublicPlaylists(c.Request().Context(), owner, pageParams(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, PlaylistsResponse{Playlists: playlists})
}

// PlaylistAudios godoc
// @Summary Audios of a public playlist
// @Tags profile
// @Produce json
// @Param id path string true "Playlist ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} PlaylistDetailResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /profile/playlists-audios/{id} [get]
func (h *ProfileHandler) PlaylistAudios(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.playlistService.PublicPlaylistAudios(c.Request().Context(), id, pageParams(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, PlaylistDetailResponse{List: detail})
}

// Recommended godoc
// @Summary Recommendations from recent listening, or popular audios when anonymous
// @Tags profile
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {object} AudiosResponse
// @Router /profile/recommended [get]
func (h *ProfileHandler) Recommended(c echo.Context) error {
	var userID *primitive.ObjectID
	if user := CurrentUser(c); user != nil {
		userID = &user.ID
	}

	audios, err := h.profileService.Recommended(c.Request().Context(), userID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, AudiosResponse{Audios: audios})
}

// Followers godoc
// @Summary The caller's followers
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} FollowersResponse
// @Router /profile/followers [get]
func (h *ProfileHandler) Followers(c echo.Context) error {
	return h.followers(c, CurrentUser(c).ID)
}

// FollowersOf godoc
// @Summary Followers of a user
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} FollowersResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /profile/followers/{id} [get]
func (h *ProfileHandler) FollowersOf(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	return h.followers(c, id)
}

func (h *ProfileHandler) followers(c echo.Context, user primitive.ObjectID) error {
	followers, err := h.profileService.Followers(c.Request().Context(), user, pageParams(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, FollowersResponse{Followers: followers})
}

// Followings godoc
// @Summary Users the caller follows
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} FollowingsResponse
// @Router /profile/followings [get]
func (h *ProfileHandler) Followings(c echo.Context) error {
	followings, err := h.profileService.Followings(c.Request().Context(), CurrentUser(c).ID, pageParams(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, FollowingsResponse{Followings: followings})
}

// IsFollowing godoc
// @Summary Whether the caller follows a user
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]bool
// @Failure 422 {object} errors.ErrorResponse
// @Router /profile/is-following/{id} [get]
func (h *ProfileHandler) IsFollowing(c echo.Context) error {
	target, err := paramID(c, "id")
	if err != nil {
		return err
	}

	following, err := h.profileService.IsFollowing(c.Request().Context(), CurrentUser(c).ID, target)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"status": following})
}
