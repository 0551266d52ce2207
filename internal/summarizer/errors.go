package summarizer

import (
	"errors"
	"fmt"
)

// InvalidInputError reports a request the caller has to correct before retrying.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

// ModelUnavailableError reports a failed model acquisition.
type ModelUnavailableError struct {
	ModelID string
	Err     error
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("model %q is unavailable: %v", e.ModelID, e.Err)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Err
}

// GenerationError reports a failed invocation of an acquired model.
type GenerationError struct {
	ModelID string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate summary with model %q: %v", e.ModelID, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsInvalidInput reports whether err wraps an *InvalidInputError.
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

// IsModelUnavailable reports whether err wraps a *ModelUnavailableError.
func IsModelUnavailable(err error) bool {
	var target *ModelUnavailableError
	return errors.As(err, &target)
}

// IsGeneration reports whether err wraps a *GenerationError.
func IsGeneration(err error) bool {
	var target *GenerationError
	return errors.As(err, &target)
}
