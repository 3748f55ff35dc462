/*
Package observability provides Prometheus instrumentation for the deckgen pipeline.

Metrics are registered on a caller-supplied registry so tests and embedded uses do
not collide on the process-wide default.
*/
package observability
