package estimate

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is.
var (
	ErrInvalidState  = errors.New("invalid state")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnknownChoice = errors.New("unknown lifestyle choice")
)

// StateError reports a state missing from the price parity table.
type StateError struct {
	State string
	Err   error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("unknown state %q: use a two-letter code or full name such as \"NJ\" or \"New Jersey\"", e.State)
}

// Is matches ErrInvalidState.
func (e *StateError) Is(target error) bool { return target == ErrInvalidState }

func (e *StateError) Unwrap() error { return e.Err }

// InputError reports a numeric input outside its allowed range.
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is matches ErrInvalidInput.
func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

// ChoiceError reports a lifestyle selection the catalog does not know.
type ChoiceError struct {
	Category string
	Tier     string
	Err      error
}

func (e *ChoiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unknown lifestyle choice %s=%s", e.Category, e.Tier)
	}
	return e.Err.Error()
}

// Is matches ErrUnknownChoice.
func (e *ChoiceError) Is(target error) bool { return target == ErrUnknownChoice }

func (e *ChoiceError) Unwrap() error { return e.Err }
