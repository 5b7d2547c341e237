package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "podify/internal/errors"
	"podify/internal/model"
	"podify/internal/service"
)

// HistoryHandler handles listening history.
type HistoryHandler struct {
	historyService service.HistoryService
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// HistoryRequest records playback progress for an audio.
type HistoryRequest struct {
	Audio    string    `json:"audio" validate:"required,objectid"`
	Progress float64   `json:"progress" validate:"gte=0"`
	Date     time.Time `json:"date" validate:"required"`
}

// HistoriesResponse groups history entries by day.
type HistoriesResponse struct {
	Histories []model.HistoryDay `json:"histories"`
}

// Record godoc
// @Summary Record playback progress
// @Tags history
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body HistoryRequest true "Progress data"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /history [post]
func (h *HistoryHandler) Record(c echo.Context) error {
	var req HistoryRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	audioID, err := parseID(req.Audio)
	if err != nil {
		return err
	}

	if err := h.historyService.Record(c.Request().Context(), CurrentUser(c).ID, audioID, req.Progress, req.Date); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// List godoc
// @Summary Listening history grouped by day
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} HistoriesResponse
// @Router /history [get]
func (h *HistoryHandler) List(c echo.Context) error {
	days, err := h.historyService.ByDay(c.Request().Context(), CurrentUser(c).ID, pageParams(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, HistoriesResponse{Histories: days})
}

// RecentlyPlayed godoc
// @Summary Most recently played audios
// @Tags history
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AudiosResponse
// @Router /history/recently-played [get]
func (h *HistoryHandler) RecentlyPlayed(c echo.Context) error {
	audios, err := h.historyService.RecentlyPlayed(c.Request().Context(), CurrentUser(c).ID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, AudiosResponse{Audios: audios})
}

// Delete godoc
// @Summary Clear the history (all=yes) or remove the listed entries
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param all query string false "yes to clear everything"
// @Param histories query string false "JSON array of entry ids"
// @Success 200 {object} SuccessResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /history [delete]
func (h *HistoryHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	owner := CurrentUser(c).ID

	if c.QueryParam("all") == "yes" {
		if err := h.historyService.DeleteAll(ctx, owner); err != nil {
			return fail(err)
		}
		return c.JSON(http.StatusOK, SuccessResponse{Success: true})
	}

	ids, err := parseHistoryIDs(c.QueryParam("histories"))
	if err != nil {
		return fail(err)
	}
	if err := h.historyService.Remove(ctx, owner, ids); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// parseHistoryIDs decodes a JSON array of entry ids such as ["id1","id2"].
func parseHistoryIDs(raw string) ([]primitive.ObjectID, error) {
	var hexes []string
	if err := json.Unmarshal([]byte(raw), &hexes); err != nil {
		return nil, apperrors.ErrInvalidHistoryIDs
	}
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, apperrors.ErrInvalidHistoryIDs
		}
		ids = append(ids, id)
	}
	return ids, nil
}
