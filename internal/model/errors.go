package model

import "fmt"

// ValidationError means the input itself is unacceptable. It is surfaced
// synchronously to the submitter; the pipeline never starts.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// TranscriptionError means the external speech-to-text call failed.
// Terminal for the response: the lifecycle manager marks it failed.
type TranscriptionError struct {
	Message string
	Err     error
}

func (e *TranscriptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// PersistenceError means a final-state write failed. The pipeline does not
// retry; the surrounding system must alert on it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
