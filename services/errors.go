package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all services. Handlers map these to HTTP codes;
// "not found" deliberately covers both missing and not-owned records so a
// caller cannot enumerate other advocates' data.
var (
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidTransitionError reports a status change the pipeline does not allow.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("Cannot transition from %s to %s", e.From, e.To)
}
