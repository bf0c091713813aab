// Package ports defines the boundary interfaces of the formflow engine:
// the state store, the event bus, the distributed locker, and the engine
// contract its adapters drive. Collaborators are always explicit,
// constructor-injected dependencies, never process-wide globals.
package ports
