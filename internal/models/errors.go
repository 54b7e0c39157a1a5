package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
	URL     string `json:"url,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error codes used across the service layer.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeStore        = "STORE_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     fmt.Errorf("%s %v does not exist", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewStoreError wraps an object store or transport failure. These are
// retryable by the caller with backoff; the service never retries them.
func NewStoreError(err error) *AppError {
	return &AppError{
		Code:    CodeStore,
		Message: "Storage backend unavailable",
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// LinkError reports that a blob was uploaded and is publicly addressable but
// the relational record pointing at it could not be written. The caller may
// retry just the relational update with the returned URL; re-uploading would
// create a second blob.
type LinkError struct {
	URL string
	Err error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("upload succeeded but linking %s failed: %v", e.URL, e.Err)
}

func (e *LinkError) Unwrap() error {
	return e.Err
}

// CodeOf returns the AppError code for err, or CodeInternal for foreign errors.
func CodeOf(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	switch e := err.(type) {
	case *AppError:
		response = ErrorResponse{
			Error: e.Message,
			Code:  e.Code,
		}
		if e.Err != nil {
			response.Details = e.Err.Error()
		}
	case *LinkError:
		response = ErrorResponse{
			Error: "Upload stored but could not be linked",
			Code:  "LINK_ERROR",
			URL:   e.URL,
		}
		if e.Err != nil {
			response.Details = e.Err.Error()
		}
	default:
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
