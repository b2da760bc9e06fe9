package apperrors

import (
	"errors"
	"fmt"
)

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrExtraction indicates that the source document could not be read or turned into text.
var ErrExtraction = errors.New("extraction failure")

// ErrStorage indicates that the loan store could not be opened, read or written.
var ErrStorage = errors.New("storage failure")

// ErrOutputWrite indicates that a report could not be written to its destination.
var ErrOutputWrite = errors.New("output write failure")

// Stage names the pipeline step a fatal error came from.
type Stage string

const (
	StageConfig  Stage = "config"
	StageExtract Stage = "extract"
	StageStore   Stage = "store"
	StageReport  Stage = "report"
)

// StageError ties a failure to the pipeline stage that produced it.
type StageError struct {
	Stage   Stage
	Message string
	Err     error
}

// NewStageError creates a StageError for the given stage.
func NewStageError(stage Stage, message string, err error) *StageError {
	return &StageError{Stage: stage, Message: message, Err: err}
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Stage, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf returns the stage recorded in err, if any StageError is in its chain.
func StageOf(err error) (Stage, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage, true
	}
	return "", false
}
