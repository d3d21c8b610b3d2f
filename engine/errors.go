package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument matches every InvalidArgumentError via errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a caller-supplied parameter outside contract.
// It is returned before any computation runs; values are never clamped.
type InvalidArgumentError struct {
	Param   string
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Param, e.Message)
}

// Unwrap lets errors.Is(err, ErrInvalidArgument) succeed.
func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func invalidArgument(param, format string, args ...any) error {
	return &InvalidArgumentError{Param: param, Message: fmt.Sprintf(format, args...)}
}
