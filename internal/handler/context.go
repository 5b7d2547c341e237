package handler

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "podify/internal/errors"
	"podify/internal/model"
	"podify/internal/query"
)

const (
	currentUserKey  = "currentUser"
	currentTokenKey = "currentToken"
)

// SetSession stores the authenticated user and its bearer token on the request.
func SetSession(c echo.Context, user *model.User, token string) {
	c.Set(currentUserKey, user)
	c.Set(currentTokenKey, token)
}

// CurrentUser returns the authenticated user, or nil on anonymous requests.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(currentUserKey).(*model.User)
	return user
}

func currentToken(c echo.Context) string {
	token, _ := c.Get(currentTokenKey).(string)
	return token
}

// fail converts a service error into the JSON error response.
func fail(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// decode binds the request body and validates it. Both failures are 422.
func decode(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return fail(apperrors.Validation("invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return fail(apperrors.Validation(err.Error()))
	}
	return nil
}

func parseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fail(apperrors.ErrInvalidID)
	}
	return id, nil
}

func paramID(c echo.Context, name string) (primitive.ObjectID, error) {
	return parseID(c.Param(name))
}

func pageParams(c echo.Context) query.Page {
	return query.ParsePage(c.QueryParam("page"), c.QueryParam("limit"))
}

// optionalID parses an id that may be omitted.
func optionalID(raw string) (*primitive.ObjectID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// MessageResponse is returned by operations that only report success.
type MessageResponse struct {
	Message string `json:"message"`
}

// SuccessResponse is returned by write operations without a payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// StatusResponse is returned by toggle operations.
type StatusResponse struct {
	Status model.ToggleStatus `json:"status"`
}
