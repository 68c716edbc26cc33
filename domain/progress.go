package domain

import "context"

// ProgressManager hands out progress trackers for long-running tasks
type ProgressManager interface {
	// StartTask creates a tracker with a description and total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive returns true if progress is actually rendered
	IsInteractive() bool

	// Close finishes all outstanding trackers
	Close()
}

// TaskProgress tracks a single task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// ExecutableTask is a unit of work scheduled by the parallel executor
type ExecutableTask interface {
	Name() string
	Execute(ctx context.Context) (*LayerResult, error)
	IsEnabled() bool
}
