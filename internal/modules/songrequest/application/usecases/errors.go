package usecases

import "errors"

var (
	// ErrStopped is returned when a call reaches the orchestrator while it is
	// not running.
	ErrStopped = errors.New("orchestrator is not running")

	// ErrAlreadyRunning is returned by Start when the loop is already active.
	ErrAlreadyRunning = errors.New("orchestrator is already running")

	// ErrQueueEmpty is returned when an operation needs a queued entry and
	// there is none.
	ErrQueueEmpty = errors.New("the queue is empty")
)
