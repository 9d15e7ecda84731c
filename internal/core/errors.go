package core

import (
	"errors"
	"fmt"
)

// Error codes for domain errors.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnknownType  = "unknown_type"
	ErrCodeValidation   = "validation_error"
	ErrCodeRoomNotFound = "room_not_found"
	ErrCodeInvalidState = "invalid_state"
	ErrCodeInternal     = "internal"
)

var (
	// ErrValidation marks an empty or missing required field.
	ErrValidation = errors.New("validation failed")
	// ErrRoomNotFound marks a join that targets no active room.
	ErrRoomNotFound = errors.New("room not found")
	// ErrInvalidState marks an operation the client's current state does not allow.
	ErrInvalidState = errors.New("invalid state")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
	err     error
}

func (e *CoreError) Error() string {
	return e.Message
}

func (e *CoreError) Unwrap() error {
	return e.err
}

// AsCoreError classifies err by its sentinel and returns it in wire-ready form.
func AsCoreError(err error) *CoreError {
	if err == nil {
		return nil
	}
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce
	}
	code := ErrCodeInternal
	switch {
	case errors.Is(err, ErrValidation):
		code = ErrCodeValidation
	case errors.Is(err, ErrRoomNotFound):
		code = ErrCodeRoomNotFound
	case errors.Is(err, ErrInvalidState):
		code = ErrCodeInvalidState
	}
	return &CoreError{Code: code, Message: err.Error(), err: err}
}

func invalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}
