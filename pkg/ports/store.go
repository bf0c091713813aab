package ports

import (
	"context"

	"github.com/formflow/formflow/pkg/domain"
)

// StateStore defines the interface for persisting published form-state
// snapshots keyed by session ID. The engine itself keeps all working state
// in memory; stores only ever see the batched FormState snapshots, enabling
// "stop & resume" of a filling session.
type StateStore interface {
	// Save persists the snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.FormState) error

	// Load retrieves the snapshot for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.FormState, error)

	// Delete removes the snapshot for a given session ID.
	Delete(ctx context.Context, sessionID string) error
}

// SessionLister is an optional extension for stores that can enumerate
// their sessions.
type SessionLister interface {
	List(ctx context.Context) ([]string, error)
}
