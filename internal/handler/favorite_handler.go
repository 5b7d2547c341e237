package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"podify/internal/service"
)

// FavoriteHandler handles the caller's favorites.
type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Toggle godoc
// @Summary Add or remove an audio from favorites
// @Tags favorite
// @Produce json
// @Security BearerAuth
// @Param audioId query string true "Audio ID"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /favorite [post]
func (h *FavoriteHandler) Toggle(c echo.Context) error {
	audioID, err := parseID(c.QueryParam("audioId"))
	if err != nil {
		return err
	}

	status, err := h.favoriteService.Toggle(c.Request().Context(), CurrentUser(c).ID, audioID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: status})
}

// List godoc
// @Summary List favorite audios
// @Tags favorite
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} AudiosResponse
// @Router /favorite [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	audios, err := h.favoriteService.List(c.Request().Context(), CurrentUser(c).ID, pageParams(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, AudiosResponse{Audios: audios})
}

// IsFav godoc
// @Summary Check whether an audio is a favorite
// @Tags favorite
// @Produce json
// @Security BearerAuth
// @Param audioId query string true "Audio ID"
// @Success 200 {object} map[string]bool
// @Failure 422 {object} errors.ErrorResponse
// @Router /favorite/is-favorite [get]
func (h *FavoriteHandler) IsFav(c echo.Context) error {
	audioID, err := parseID(c.QueryParam("audioId"))
	if err != nil {
		return err
	}

	result, err := h.favoriteService.IsFavorite(c.Request().Context(), CurrentUser(c).ID, audioID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"result": result})
}
