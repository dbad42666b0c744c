// Package secret expands environment references in configuration values.
//
// Credentials and endpoints arrive as configuration strings that may
// reference the environment, e.g. "${ALLY_PLATFORM_TOKEN}". Expansion is
// strict: a referenced variable that is missing from the environment is an
// error rather than a silent empty string, so a misconfigured deployment
// fails at startup instead of sending unauthenticated calls.
package secret
