// Package domain holds the core value types of the formflow engine: the
// hierarchy levels, item records and their ancestry snapshots, the published
// aggregated state, lifecycle events, and the two-tier error model.
//
// Everything here is a plain value type with no behavior beyond its own
// invariants; the managers in internal/ own all mutation.
package domain
