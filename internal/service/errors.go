package service

import "errors"

var (
	// ErrQuestionNotFound means the target question does not exist or is inactive.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrResponseNotFound means the response does not exist or belongs to
	// another user.
	ErrResponseNotFound = errors.New("response not found")

	// ErrServerBusy means the evaluation queue is full and the submission
	// was shed.
	ErrServerBusy = errors.New("server busy, try again later")
)
