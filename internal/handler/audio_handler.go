package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"podify/internal/model"
	"podify/internal/service"
)

// AudioHandler handles audio uploads and listings.
type AudioHandler struct {
	audioService service.AudioService
}

// NewAudioHandler creates a new audio handler.
func NewAudioHandler(audioService service.AudioService) *AudioHandler {
	return &AudioHandler{audioService: audioService}
}

// CreateAudioRequest describes an uploaded audio. File and poster are
// already stored by the media host and referenced by url and public id.
type CreateAudioRequest struct {
	Title    string          `json:"title" validate:"required"`
	About    string          `json:"about" validate:"required"`
	Category string          `json:"category" validate:"required,category"`
	File     *model.MediaRef `json:"file" validate:"required"`
	Poster   *model.MediaRef `json:"poster"`
}

// UpdateAudioRequest edits audio metadata.
type UpdateAudioRequest struct {
	Title    string          `json:"title" validate:"required"`
	About    string          `json:"about" validate:"required"`
	Category string          `json:"category" validate:"required,category"`
	Poster   *model.MediaRef `json:"poster"`
}

// AudioResponse wraps a single audio.
type AudioResponse struct {
	Audio *model.Audio `json:"audio"`
}

// AudiosResponse wraps an audio listing.
type AudiosResponse struct {
	Audios []model.AudioSummary `json:"audios"`
}

// Create godoc
// @Summary Publish an audio
// @Tags audio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAudioRequest true "Audio data"
// @Success 201 {object} AudioResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /audio [post]
func (h *AudioHandler) Create(c echo.Context) error {
	var req CreateAudioRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	audio, err := h.audioService.Create(c.Request().Context(), CurrentUser(c).ID, service.AudioInput{
		Title:    req.Title,
		About:    req.About,
		Category: req.Category,
		File:     *req.File,
		Poster:   req.Poster,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, AudioResponse{Audio: audio})
}

// Update godoc
// @Summary Edit an owned audio
// @Tags audio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Audio ID"
// @Param request body UpdateAudioRequest true "Audio data"
// @Success 200 {object} AudioResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /audio/{id} [patch]
func (h *AudioHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateAudioRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	audio, err := h.audioService.Update(c.Request().Context(), id, CurrentUser(c).ID, service.AudioInput{
		Title:    req.Title,
		About:    req.About,
		Category: req.Category,
		Poster:   req.Poster,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, AudioResponse{Audio: audio})
}

// Latest godoc
// @Summary Newest uploads
// @Tags audio
// @Produce json
// @Success 200 {object} AudiosResponse
// @Router /audio/latest-uploads [get]
func (h *AudioHandler) Latest(c echo.Context) error {
	audios, err := h.audioService.Latest(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, AudiosResponse{Audios: audios})
}
