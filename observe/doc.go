// Package observe provides telemetry for the orchestration core: structured
// logging, failure and recovery-attempt reporting, and OpenTelemetry
// metrics and traces.
//
// The Observer owns provider lifecycles and hands out the tracer, meter,
// and logger. The Reporter is the error-reporting collaborator consumed by
// the resilience and transport packages: it turns every non-final failed
// retry attempt and every external-call failure into a structured log line
// and a metric increment.
//
// Log entries automatically carry the ambient correlation id and company id
// from the reqctx package when one is established. Fields whose keys look
// like credentials are redacted.
//
// # Usage
//
//	obs, err := observe.NewObserver(ctx, observe.Config{
//	    ServiceName: "agentic-ally-agent",
//	    Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
//	})
//	defer obs.Shutdown(ctx)
//
//	rep := observe.NewReporter(obs.Logger(), metrics)
package observe
