package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in a store.
var ErrSessionNotFound = errors.New("session not found")

// ErrNotActive is returned when setCurrent targets an item that is not active.
var ErrNotActive = errors.New("item is not active")

// ErrItemExists is returned when an item is added under an id already in use.
var ErrItemExists = errors.New("item id already exists")

// ErrItemNotFound is returned by store lookups that miss.
var ErrItemNotFound = errors.New("item not found")

// Phase tags a structural error with the engine lifecycle stage it occurred in.
type Phase string

const (
	PhaseInit    Phase = "init"
	PhaseRuntime Phase = "runtime"
	PhaseDestroy Phase = "destroy"
)

// StructuralError is a fatal configuration or consistency failure. It is
// raised loudly, never swallowed: a structural error during init means the
// form definition is unusable, during runtime it means the stores and the
// navigation order have fallen out of sync.
type StructuralError struct {
	Phase Phase
	Op    string
	Err   error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error [%s] %s: %v", e.Phase, e.Op, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// Structural wraps err with its phase and the operation that hit it.
func Structural(phase Phase, op string, err error) *StructuralError {
	return &StructuralError{Phase: phase, Op: op, Err: err}
}

// Structuralf is the formatted variant of Structural.
func Structuralf(phase Phase, op, format string, args ...any) *StructuralError {
	return &StructuralError{Phase: phase, Op: op, Err: fmt.Errorf(format, args...)}
}
