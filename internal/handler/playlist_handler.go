package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "podify/internal/errors"
	"podify/internal/model"
	"podify/internal/service"
)

// PlaylistHandler handles playlist management.
type PlaylistHandler struct {
	playlistService service.PlaylistService
}

// NewPlaylistHandler creates a new playlist handler.
func NewPlaylistHandler(playlistService service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// CreatePlaylistRequest creates a playlist, optionally seeded with one audio.
type CreatePlaylistRequest struct {
	Title      string           `json:"title" validate:"required"`
	ResID      string           `json:"resId" validate:"omitempty,objectid"`
	Visibility model.Visibility `json:"visibility" validate:"required,visibility"`
}

// UpdatePlaylistRequest edits a playlist, optionally adding one audio.
type UpdatePlaylistRequest struct {
	Title      string           `json:"title" validate:"required"`
	Item       string           `json:"item" validate:"omitempty,objectid"`
	Visibility model.Visibility `json:"visibility" validate:"required,visibility"`
}

// PlaylistResponse wraps a single playlist.
type PlaylistResponse struct {
	Playlist *model.Playlist `json:"playlist"`
}

// PlaylistsResponse wraps a playlist listing.
type PlaylistsResponse struct {
	Playlists []model.PlaylistInfo `json:"playlists"`
}

// PlaylistDetailResponse wraps a playlist with its audios.
type PlaylistDetailResponse struct {
	List *model.PlaylistDetail `json:"list"`
}

// Create godoc
// @Summary Create a playlist
// @Tags playlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePlaylistRequest true "Playlist data"
// @Success 201 {object} PlaylistResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /playlist/create [post]
func (h *PlaylistHandler) Create(c echo.Context) error {
	var req CreatePlaylistRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	item, err := optionalID(req.ResID)
	if err != nil {
		return err
	}

	playlist, err := h.playlistService.Create(c.Request().Context(), CurrentUser(c).ID, req.Title, req.Visibility, item)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, PlaylistResponse{Playlist: playlist})
}

// Update godoc
// @Summary Edit an owned playlist
// @Tags playlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Playlist ID"
// @Param request body UpdatePlaylistRequest true "Playlist data"
// @Success 200 {object} PlaylistResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /playlist/{id} [patch]
func (h *PlaylistHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req UpdatePlaylistRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	item, err := optionalID(req.Item)
	if err != nil {
		return err
	}

	playlist, err := h.playlistService.Update(c.Request().Context(), CurrentUser(c).ID, id, req.Title, req.Visibility, item)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, PlaylistResponse{Playlist: playlist})
}

// Delete godoc
// @Summary Delete a playlist (all=yes) or remove one audio from it (resId)
// @Tags playlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Playlist ID"
// @Param all query string false "yes to delete the playlist"
// @Param resId query string false "Audio ID to remove"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /playlist/{id} [delete]
func (h *PlaylistHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	owner := CurrentUser(c).ID

	if c.QueryParam("all") == "yes" {
		if err := h.playlistService.Delete(ctx, owner, id); err != nil {
			return fail(err)
		}
		return c.JSON(http.StatusOK, SuccessResponse{Success: true})
	}

	if c.QueryParam("resId") == "" {
		return fail(apperrors.Validation("either all=yes or resId is required"))
	}
	item, err := parseID(c.QueryParam("resId"))
	if err != nil {
		return err
	}
	if err := h.playlistService.RemoveItem(ctx, owner, id, item); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ByProfile godoc
// @Summary List the caller's playlists
// @Tags playlist
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} PlaylistsResponse
// @Router /playlist/me [get]
func (h *PlaylistHandler) ByProfile(c echo.Context) error {
	playlists, err := h.playlistService.ListByProfile(c.Request().Context(), CurrentUser(c).ID, pageParams(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, PlaylistsResponse{Playlists: playlists})
}

// Detail godoc
// @Summary Audios of an owned playlist
// @Tags playlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Playlist ID"
// @Success 200 {object} PlaylistDetailResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /playlist/{id} [get]
func (h *PlaylistHandler) Detail(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.playlistService.Detail(c.Request().Context(), CurrentUser(c).ID, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, PlaylistDetailResponse{List: detail})
}

// Auto godoc
// @Summary Generated category playlists
// @Tags playlist
// @Produce json
// @Success 200 {object} PlaylistsResponse
// @Router /playlist/auto [get]
func (h *PlaylistHandler) Auto(c echo.Context) error {
	playlists, err := h.playlistService.ListAuto(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, PlaylistsResponse{Playlists: playlists})
}
