package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidID is returned when an identifier is not a valid object id.
	ErrInvalidID = errors.New("invalid id")
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrAudioNotFound is returned when a referenced audio does not exist.
	ErrAudioNotFound = errors.New("audio not found")
	// ErrPlaylistNotFound is returned when a playlist is absent or not visible to the caller.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrEmailTaken is returned when signing up with an email that is already registered.
	ErrEmailTaken = errors.New("email is already in use")
	// ErrInvalidToken is returned when a verification or reset token does not match.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("email/password mismatch")
	// ErrUnauthorized is returned when the bearer token is missing, invalid or revoked.
	ErrUnauthorized = errors.New("unauthorized request")
	// ErrUnverified is returned when an unverified account calls a verified-only route.
	ErrUnverified = errors.New("please verify your email account")
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("you can not follow yourself")
	// ErrSamePassword is returned when the new password equals the current one.
	ErrSamePassword = errors.New("the new password must be different")
	// ErrInvalidHistoryIDs is returned when the history delete list cannot be decoded.
	ErrInvalidHistoryIDs = errors.New("invalid history ids")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// Validation builds a 422 error for malformed input.
func Validation(message string) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, message, "VALIDATION_ERROR")
}

var mappings = []struct {
	err    error
	status int
	code   string
}{
	{ErrInvalidID, http.StatusUnprocessableEntity, "INVALID_ID"},
	{ErrEmailTaken, http.StatusUnprocessableEntity, "EMAIL_TAKEN"},
	{ErrSelfFollow, http.StatusUnprocessableEntity, "SELF_FOLLOW"},
	{ErrSamePassword, http.StatusUnprocessableEntity, "SAME_PASSWORD"},
	{ErrInvalidHistoryIDs, http.StatusUnprocessableEntity, "INVALID_HISTORY_IDS"},
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrAudioNotFound, http.StatusNotFound, "AUDIO_NOT_FOUND"},
	{ErrPlaylistNotFound, http.StatusNotFound, "PLAYLIST_NOT_FOUND"},
	{ErrInvalidToken, http.StatusForbidden, "INVALID_TOKEN"},
	{ErrInvalidCredentials, http.StatusForbidden, "INVALID_CREDENTIALS"},
	{ErrUnauthorized, http.StatusForbidden, "UNAUTHORIZED"},
	{ErrUnverified, http.StatusForbidden, "UNVERIFIED"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors, including
// database failures, become 500 so they are not mistaken for bad input.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
