// Package tracing wraps OpenTelemetry so that shell jobs can be recorded as
// spans. Without Init the global no-op provider is used and spans cost nothing.
package tracing
