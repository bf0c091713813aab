package ports

import (
	"context"

	"github.com/formflow/formflow/pkg/domain"
)

// Engine is the driving-side contract the HTTP, MCP and TUI adapters consume.
// The concrete implementation lives at the module root.
type Engine interface {
	// Start activates the initial hierarchy branch and makes the first
	// included unit current.
	Start(ctx context.Context) error

	// Navigate moves one unit in the given direction at the configured
	// granularity. A denied move returns ok=false with no mutation.
	Navigate(ctx context.Context, dir domain.Direction) (ok bool, err error)

	// SetInput records a leaf value by field name and triggers the
	// condition/rebuild cascade.
	SetInput(ctx context.Context, name, value string) error

	// State returns the latest published snapshot.
	State() *domain.FormState
}
