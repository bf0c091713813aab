/*
Package observability exposes the engine's activity as Prometheus metrics.

Metrics wires counters to the engine hooks so moves, denials, condition
re-evaluations, input changes and state publishes are all countable without
touching engine code.
*/
package observability
