package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// The same error covers unknown emails so accounts are not enumerable.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrUserExists is returned when the email or username is already registered.
	ErrUserExists = errors.New("User already exists")
	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = errors.New("Invalid token")
	// ErrPDFNotFound is returned when a document id does not resolve for the caller.
	ErrPDFNotFound = errors.New("PDF not found")
	// ErrParseFailed is returned when text extraction from an upload fails.
	ErrParseFailed = errors.New("Failed to parse PDF")
	// ErrAIUnavailable is returned when every configured completion provider failed.
	ErrAIUnavailable = errors.New("AI service unavailable. Please try again.")
)

// ValidationError carries a request-specific message for malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MapErrorToHTTP maps an error to an HTTP status and response body.
// Unrecognized errors collapse to a generic 500; their detail is only
// exposed when verbose is set (development mode).
func MapErrorToHTTP(err error, verbose bool) (int, ErrorResponse) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ErrorResponse{Message: ve.Message}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, ErrorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, ErrUserExists):
		return http.StatusBadRequest, ErrorResponse{Message: err.Error()}
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized, ErrorResponse{Message: err.Error()}
	case errors.Is(err, ErrPDFNotFound):
		return http.StatusNotFound, ErrorResponse{Message: err.Error()}
	case errors.Is(err, ErrParseFailed), errors.Is(err, ErrAIUnavailable):
		return http.StatusInternalServerError, ErrorResponse{Message: err.Error()}
	}

	if verbose {
		return http.StatusInternalServerError, ErrorResponse{Message: err.Error()}
	}
	return http.StatusInternalServerError, ErrorResponse{Message: "Something went wrong!"}
}
