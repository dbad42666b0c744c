// Package health provides liveness probes for the dependencies the
// execution core talks to.
//
// A Checker probes one dependency; a Registry runs a set of probes
// concurrently and reduces them to an overall status. PlatformCheck probes
// the training platform through the same transport router the content
// handlers use.
package health
