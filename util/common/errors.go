package common

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeExternal     = "EXTERNAL"
)

// ServiceError carries the operation name and an error code alongside the
// underlying error, e.g. "[VideoService.GetVideo] (NOT_FOUND) ...".
type ServiceError struct {
	Op   string
	Code string
	Err  error
}

func (e *ServiceError) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString("[")
		sb.WriteString(e.Op)
		sb.WriteString("] ")
	}
	if e.Code != "" {
		sb.WriteString("(")
		sb.WriteString(e.Code)
		sb.WriteString(") ")
	}
	if e.Err != nil {
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewServiceError(op string, err error) *ServiceError {
	return &ServiceError{
		Op:  op,
		Err: err,
	}
}

func (e *ServiceError) WithCode(code string) *ServiceError {
	e.Code = code
	return e
}

// Wrap wraps err into a ServiceError, passing nil through.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return NewServiceError(op, err)
}

// Wrapf wraps err with a formatted message.
func Wrapf(op string, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return NewServiceError(op, fmt.Errorf("%s: %w", msg, err))
}

var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal server error")
)

var (
	// ErrVideoNotFound matches the API's 404 wording.
	ErrVideoNotFound = errors.New("Video not found")

	// ErrNoFieldsToUpdate is returned for an update request with no fields.
	ErrNoFieldsToUpdate = errors.New("No fields provided for update")
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("wrong username or password")
)

var (
	// ErrIngestUpstream wraps failures talking to the remote quips API.
	ErrIngestUpstream = errors.New("quips API request failed")

	// ErrIngestNotArray is returned when the upstream payload is not a JSON array.
	ErrIngestNotArray = errors.New("quips API did not return a list")
)

// IsNotFoundError reports whether err is one of the not-found sentinels.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrVideoNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
