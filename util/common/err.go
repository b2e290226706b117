package common

import (
	"errors"
	"fmt"

	"quipvid/logger"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(msg)
}

// Combine merges multiple errors into one, skipping nils.
func Combine(errs ...error) error {
	var msg string
	for _, err := range errs {
		if err != nil {
			if msg != "" {
				msg += ", "
			}
			msg += err.Error()
		}
	}
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}

func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}

// HandleError logs the error and wraps it into a ServiceError.
func HandleError(op string, err error) error {
	if err == nil {
		return nil
	}
	logger.Warningf("[%s] %v", op, err)
	return NewServiceError(op, err)
}

// LogAndReturn logs the error and returns it unchanged.
func LogAndReturn(op string, err error) error {
	if err == nil {
		return nil
	}
	logger.Warningf("[%s] %v", op, err)
	return err
}

// IgnoreError drops the error, logging a warning when it is non-nil.
func IgnoreError(op string, err error) {
	if err != nil {
		logger.Warningf("[%s] ignored error: %v", op, err)
	}
}

// GetErrorCode maps an error to its code constant.
func GetErrorCode(err error) string {
	var se *ServiceError
	if errors.As(err, &se) && se.Code != "" {
		return se.Code
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrVideoNotFound),
		errors.Is(err, ErrUserNotFound):
		return ErrCodeNotFound
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNoFieldsToUpdate):
		return ErrCodeInvalidInput
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return ErrCodeUnauthorized
	case errors.Is(err, ErrIngestUpstream):
		return ErrCodeExternal
	default:
		return ErrCodeInternal
	}
}
