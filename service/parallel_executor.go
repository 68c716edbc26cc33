package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/internal/config"
	"golang.org/x/sync/errgroup"
)

// Default values for parallel executor
const (
	// DefaultMaxConcurrency is used when config value is invalid.
	DefaultMaxConcurrency = 4
	DefaultTimeout        = 60 * time.Second
)

// TaskError represents a single layer failure
type TaskError struct {
	TaskName string
	Err      error
}

// Error implements the error interface
func (e TaskError) Error() string {
	return fmt.Sprintf("[%s] %v", e.TaskName, e.Err)
}

// Unwrap returns the underlying error
func (e TaskError) Unwrap() error {
	return e.Err
}

// AggregatedError collects all layer failures of a run
type AggregatedError struct {
	Errors []TaskError
}

// Error implements the error interface
func (e *AggregatedError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d layers failed:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Unwrap returns the first error for errors.Is/As compatibility
func (e *AggregatedError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0].Err
}

// ScanAbortedError reports that the overall scan budget ran out or the
// caller cancelled. No partial results are returned with it.
type ScanAbortedError struct {
	Timeout time.Duration
	Err     error
}

// Error implements the error interface
func (e *ScanAbortedError) Error() string {
	return fmt.Sprintf("scan aborted after %s: %v", e.Timeout, e.Err)
}

// Unwrap returns the context error
func (e *ScanAbortedError) Unwrap() error {
	return e.Err
}

// LayerTask runs one layer check inside the fault-isolation boundary.
// Errors, panics and malformed results all turn into a zero-point fallback
// layer that keeps the layer's nominal budget.
type LayerTask struct {
	check   domain.LayerCheck
	root    string
	enabled bool
}

// NewLayerTask wraps check for execution against root
func NewLayerTask(check domain.LayerCheck, root string, enabled bool) *LayerTask {
	return &LayerTask{check: check, root: root, enabled: enabled}
}

// Name returns the layer ID
func (t *LayerTask) Name() string { return t.check.ID() }

// IsEnabled reports whether the layer should run
func (t *LayerTask) IsEnabled() bool { return t.enabled }

// Execute runs the layer. On failure it returns both the fallback result and
// the error that caused it.
func (t *LayerTask) Execute(ctx context.Context) (result *domain.LayerResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			result = t.fallback(err)
		}
	}()

	res, err := t.check.Run(ctx, t.root)
	if err != nil {
		return t.fallback(err), err
	}
	if err := res.Validate(); err != nil {
		err = fmt.Errorf("malformed result: %w", err)
		return t.fallback(err), err
	}

	// The engine owns identity; a layer cannot relabel itself.
	res.ID = t.check.ID()
	res.Name = t.check.Name()
	res.Dimension = t.check.Dimension()
	return res, nil
}

func (t *LayerTask) fallback(cause error) *domain.LayerResult {
	return domain.FailedLayerResult(t.check.ID(), t.check.Name(), t.check.Dimension(), t.check.MaxPoints(), cause)
}

// ParallelExecutorImpl runs layer tasks concurrently
type ParallelExecutorImpl struct {
	maxConcurrency int
	timeout        time.Duration
	progress       domain.ProgressManager
	mu             sync.RWMutex
}

// NewParallelExecutor creates a new parallel executor with defaults
func NewParallelExecutor() *ParallelExecutorImpl {
	return &ParallelExecutorImpl{
		maxConcurrency: runtime.NumCPU(),
		timeout:        DefaultTimeout,
	}
}

// NewParallelExecutorFromConfig creates a parallel executor from configuration
func NewParallelExecutorFromConfig(cfg *config.PerformanceConfig) *ParallelExecutorImpl {
	maxConcurrency := cfg.MaxGoroutines
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &ParallelExecutorImpl{
		maxConcurrency: maxConcurrency,
		timeout:        timeout,
	}
}

// NewParallelExecutorWithProgress creates a parallel executor with progress tracking
func NewParallelExecutorWithProgress(cfg *config.PerformanceConfig, pm domain.ProgressManager) *ParallelExecutorImpl {
	executor := NewParallelExecutorFromConfig(cfg)
	executor.progress = pm
	return executor
}

// Execute runs every enabled task and returns their results in task order.
// Individual failures are reported through an *AggregatedError alongside a
// complete result set. When the overall budget expires the whole run fails
// with a *ScanAbortedError and no results.
func (e *ParallelExecutorImpl) Execute(ctx context.Context, tasks []domain.ExecutableTask) ([]*domain.LayerResult, error) {
	enabledTasks := e.filterEnabledTasks(tasks)
	if len(enabledTasks) == 0 {
		return []*domain.LayerResult{}, nil
	}

	e.mu.RLock()
	maxConcurrency := e.maxConcurrency
	timeout := e.timeout
	e.mu.RUnlock()

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if e.progress != nil {
		task = e.progress.StartTask("Scanning layers", len(enabledTasks))
	}
	defer task.Complete()

	g, gCtx := errgroup.WithContext(timeoutCtx)
	g.SetLimit(maxConcurrency)

	results := make([]*domain.LayerResult, len(enabledTasks))
	var errMu sync.Mutex
	var taskErrors []TaskError

	for i, t := range enabledTasks {
		g.Go(func() error {
			if gCtx.Err() != nil {
				return nil
			}

			res, err := t.Execute(gCtx)
			task.Increment(1)

			results[i] = res
			if err != nil {
				errMu.Lock()
				taskErrors = append(taskErrors, TaskError{TaskName: t.Name(), Err: err})
				errMu.Unlock()
			}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-timeoutCtx.Done():
	}
	if err := timeoutCtx.Err(); err != nil {
		return nil, &ScanAbortedError{Timeout: timeout, Err: err}
	}

	if len(taskErrors) > 0 {
		return results, &AggregatedError{Errors: taskErrors}
	}
	return results, nil
}

// SetMaxConcurrency sets the maximum number of concurrent tasks
func (e *ParallelExecutorImpl) SetMaxConcurrency(max int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if max > 0 {
		e.maxConcurrency = max
	}
}

// SetTimeout sets the overall scan budget
func (e *ParallelExecutorImpl) SetTimeout(timeout time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if timeout > 0 {
		e.timeout = timeout
	}
}

// filterEnabledTasks returns only tasks where IsEnabled() returns true
func (e *ParallelExecutorImpl) filterEnabledTasks(tasks []domain.ExecutableTask) []domain.ExecutableTask {
	enabled := make([]domain.ExecutableTask, 0, len(tasks))
	for _, t := range tasks {
		if t.IsEnabled() {
			enabled = append(enabled, t)
		}
	}
	return enabled
}
