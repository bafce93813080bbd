package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found by id or username.
	ErrUserNotFound = errors.New("user not found")
	// ErrDishNotFound is returned when a food item is missing or not visible to the caller.
	ErrDishNotFound = errors.New("dish not found")
	// ErrSelfFollow is returned when a user tries to follow or unfollow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrNotOwner is returned when a caller mutates a dish they do not own.
	ErrNotOwner = errors.New("not the owner of this dish")
	// ErrUploadParam is returned when the remote store rejects the upload request
	// itself. Non-retryable.
	ErrUploadParam = errors.New("upload rejected by object store")
	// ErrUploadTransport is returned on connectivity, permission or service
	// failures while uploading. The caller may resubmit.
	ErrUploadTransport = errors.New("upload failed in transit")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrDishNotFound):
		return NewHTTPError(http.StatusNotFound, ErrDishNotFound.Error(), "DISH_NOT_FOUND")
	case errors.Is(err, ErrSelfFollow):
		return NewHTTPError(http.StatusBadRequest, ErrSelfFollow.Error(), "SELF_FOLLOW")
	case errors.Is(err, ErrNotOwner):
		return NewHTTPError(http.StatusForbidden, ErrNotOwner.Error(), "NOT_OWNER")
	case errors.Is(err, ErrUploadParam):
		return NewHTTPError(http.StatusBadRequest, ErrUploadParam.Error(), "UPLOAD_REJECTED")
	case errors.Is(err, ErrUploadTransport):
		return NewHTTPError(http.StatusBadGateway, ErrUploadTransport.Error(), "UPLOAD_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
