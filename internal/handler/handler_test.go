package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "podify/internal/errors"
	"podify/internal/handler"
	"podify/internal/model"
	"podify/internal/router"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = router.NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withPathID(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}

func signedIn(c echo.Context) *model.User {
	user := &model.User{ID: primitive.NewObjectID(), Name: "Ann", Email: "ann@example.com", Verified: true}
	handler.SetSession(c, user, "session-token")
	return user
}

func assertHTTPError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, status, he.Code)
	resp, ok := he.Message.(apperrors.ErrorResponse)
	require.True(t, ok, "message should be an ErrorResponse")
	assert.Equal(t, code, resp.Code)
}

func TestCurrentUser_Anonymous(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/", "")
	assert.Nil(t, handler.CurrentUser(c))

	user := signedIn(c)
	assert.Equal(t, user, handler.CurrentUser(c))
}
