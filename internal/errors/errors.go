package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrCode represents an error code
type ErrCode string

const (
	ErrCodeNotFound       ErrCode = "NOT_FOUND"
	ErrCodeUnauthorized   ErrCode = "UNAUTHORIZED"
	ErrCodeRateLimited    ErrCode = "RATE_LIMITED"
	ErrCodeInternal       ErrCode = "INTERNAL_ERROR"
	ErrCodeBadRequest     ErrCode = "BAD_REQUEST"
	ErrCodeForbidden      ErrCode = "FORBIDDEN"
	ErrCodeInvalidRequest ErrCode = "INVALID_REQUEST"
)

// AppError represents an application error
type AppError struct {
	Code    ErrCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewInvalidRequestError creates an error for arguments rejected before any request is made
func NewInvalidRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidRequest,
		Message: message,
	}
}

// NewRateLimitedError creates a new rate limited error
func NewRateLimitedError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeRateLimited,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// ServiceError is a non-success response from the issue tracker.
// Jira reports failures as {"errorMessages": [...], "errors": {...}}.
type ServiceError struct {
	StatusCode    int
	ErrorMessages []string
	Errors        map[string]string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// Code maps the HTTP status onto an ErrCode
func (e *ServiceError) Code() ErrCode {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusTooManyRequests:
		return ErrCodeRateLimited
	case http.StatusBadRequest:
		return ErrCodeBadRequest
	default:
		return ErrCodeInternal
	}
}

// Messages returns every human readable message in the payload,
// errorMessages first, then field errors sorted by field name.
func (e *ServiceError) Messages() []string {
	msgs := append([]string(nil), e.ErrorMessages...)
	for _, field := range sortedKeys(e.Errors) {
		msgs = append(msgs, field+": "+e.Errors[field])
	}
	return msgs
}

// UserMessage formats err as the single line shown to the user.
// Upstream error messages are appended comma separated when present.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := "Error: " + err.Error()

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		if details := svcErr.Messages(); len(details) > 0 {
			msg += " " + strings.Join(details, ",")
		}
	}
	return msg
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return codeOf(err) == ErrCodeNotFound
}

// IsRateLimited checks if the error is a rate limited error
func IsRateLimited(err error) bool {
	return codeOf(err) == ErrCodeRateLimited
}

// IsInvalidRequest checks if the error was raised for invalid arguments
func IsInvalidRequest(err error) bool {
	return codeOf(err) == ErrCodeInvalidRequest
}

func codeOf(err error) ErrCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code()
	}
	return ""
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
