package errors

import (
	_errors "errors"
)

var (
	ErrInvalidPacket       = New("invalid packet").Err()
	ErrUnsupportedEncoding = New("unsupported content encoding").Err()
)

type Error struct {
	Message     string
	Type        string
	Description string

	cause error
}

func New(message string) *Error {
	return &Error{Message: message}
}

// Wrap returns an error carrying message whose cause is err.
func Wrap(err error, message string) *Error {
	return &Error{Message: message, cause: err}
}

func (e *Error) Err() error {
	return e
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func Is(err, target error) bool {
	return _errors.Is(err, target)
}

func As(err error, target any) bool {
	return _errors.As(err, target)
}
