// Package resilience wraps fallible operations with bounded retry and
// timeout budgets.
//
// # Patterns
//
//   - Retry: re-attempts a failed operation with exponential backoff and
//     jitter, up to a fixed attempt budget. Every failure is considered
//     retryable unless a classifier is installed. The final attempt's
//     error is returned to the caller unmodified.
//
//   - Timeout: races an operation against a timer. The losing operation
//     is abandoned, not cancelled; it may still complete in the background
//     with its outcome discarded. Callers must treat a timeout as "unknown
//     outcome", not "did not happen".
//
// # Usage
//
// The patterns compose through an Executor, with the per-attempt timeout
// applied inside the retry loop:
//
//	exec := resilience.NewExecutor(
//	    resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{
//	        MaxAttempts: 3,
//	    })),
//	    resilience.WithTimeout(10*time.Second),
//	)
//
//	err := exec.Execute(ctx, "content.upload", func(ctx context.Context) error {
//	    return callPlatform(ctx)
//	})
//
// Non-final failed attempts are reported through a Reporter, typically the
// observe package's implementation.
package resilience
