package trimmer

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	ErrInvalidDuration = errors.New("trimmer: invalid duration")
	ErrMissingTitle    = errors.New("trimmer: missing title")
	ErrNoForm          = errors.New("trimmer: no form collaborator")
	ErrDestroyed       = errors.New("trimmer: selector destroyed")
)

// InvalidDurationError is returned when a selector is created for a clip
// whose duration is not a positive, finite number of seconds.
type InvalidDurationError struct {
	Duration float64
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("InvalidDurationError: duration must be > 0, got %v", e.Duration)
}

func (e *InvalidDurationError) Is(target error) bool {
	return target == ErrInvalidDuration
}

// MissingTitleError is returned when submission is attempted without a title.
type MissingTitleError struct{}

func (e *MissingTitleError) Error() string {
	return "MissingTitleError: a video title is required"
}

func (e *MissingTitleError) Is(target error) bool {
	return target == ErrMissingTitle
}
