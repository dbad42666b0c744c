package health

import (
	"context"
	"sync"
	"time"
)

// Status is the outcome class of a probe.
type Status int

const (
	// StatusHealthy means the dependency answered as expected.
	StatusHealthy Status = iota
	// StatusDegraded means the dependency answered but with issues.
	StatusDegraded
	// StatusUnhealthy means the dependency is not usable.
	StatusUnhealthy
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result is the outcome of one probe.
type Result struct {
	// Status is the probe outcome.
	Status Status

	// Message provides additional context about the outcome.
	Message string

	// Duration is how long the probe took.
	Duration time.Duration

	// Error is set when the probe failed.
	Error error
}

// Healthy creates a healthy result.
func Healthy(message string) Result {
	return Result{Status: StatusHealthy, Message: message}
}

// Degraded creates a degraded result.
func Degraded(message string, err error) Result {
	return Result{Status: StatusDegraded, Message: message, Error: err}
}

// Unhealthy creates an unhealthy result.
func Unhealthy(message string, err error) Result {
	return Result{Status: StatusUnhealthy, Message: message, Error: err}
}

// Checker is a named probe of one dependency.
type Checker interface {
	// Name identifies the dependency being probed.
	Name() string

	// Check runs the probe.
	Check(ctx context.Context) Result
}

// CheckerFunc adapts an ordinary function into a Checker.
type CheckerFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewCheckerFunc creates a CheckerFunc.
func NewCheckerFunc(name string, fn func(context.Context) Result) *CheckerFunc {
	return &CheckerFunc{name: name, fn: fn}
}

// Name returns the probe name.
func (f *CheckerFunc) Name() string { return f.name }

// Check runs the probe.
func (f *CheckerFunc) Check(ctx context.Context) Result {
	return f.fn(ctx)
}

// Registry holds a set of probes and runs them together.
type Registry struct {
	mu       sync.Mutex
	checkers []Checker
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a probe to the registry.
func (r *Registry) Register(c Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, c)
}

// RunAll runs every registered probe concurrently and returns the results
// keyed by probe name. Each result carries the probe's wall-clock duration.
func (r *Registry) RunAll(ctx context.Context) map[string]Result {
	r.mu.Lock()
	checkers := make([]Checker, len(r.checkers))
	copy(checkers, r.checkers)
	r.mu.Unlock()

	results := make(map[string]Result, len(checkers))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, c := range checkers {
		wg.Add(1)
		go func(c Checker) {
			defer wg.Done()
			start := time.Now()
			res := c.Check(ctx)
			res.Duration = time.Since(start)
			mu.Lock()
			results[c.Name()] = res
			mu.Unlock()
		}(c)
	}
	wg.Wait()
	return results
}

// Overall reduces a result set to the worst status it contains. An empty
// set is healthy.
func Overall(results map[string]Result) Status {
	overall := StatusHealthy
	for _, res := range results {
		if res.Status > overall {
			overall = res.Status
		}
	}
	return overall
}
