package api

import (
	"errors"
	"fmt"
)

// ErrMissingArgument matches every MissingArgumentError via errors.Is.
var ErrMissingArgument = errors.New("missing required argument")

// MissingArgumentError reports a required encoder input that was not supplied.
// It is a caller contract violation, never a remote failure.
type MissingArgumentError struct {
	Encoder  string
	Argument string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("api: %s: missing required argument %q", e.Encoder, e.Argument)
}

func (e *MissingArgumentError) Is(target error) bool {
	return target == ErrMissingArgument
}

func missing(encoder, argument string) error {
	return &MissingArgumentError{Encoder: encoder, Argument: argument}
}
