package cli

import (
	"context"
	"fmt"

	"github.com/formflow/formflow/pkg/domain"
)

// RunOptions contains the configuration for the run command.
type RunOptions struct {
	FormPath  string
	SessionID string
	Fresh     bool
	Headless  bool
	Debug     bool
	Behavior  string // overrides the definition's behavior when set
	RedisURL  string
	StorePath string
}

// Execute handles the run command logic.
func Execute(opts RunOptions) error {
	var behavior domain.Behavior
	if opts.Behavior != "" {
		parsed, err := domain.ParseBehavior(opts.Behavior)
		if err != nil {
			return fmt.Errorf("invalid --behavior: %w", err)
		}
		behavior = parsed
	}

	if opts.Fresh && opts.SessionID != "" {
		ResetSession(opts)
	}

	return RunSession(opts, behavior)
}

// ResetSession clears stored state for the session named in the options.
func ResetSession(opts RunOptions) {
	logger := createLogger(opts.Debug)
	store, _, err := setupPersistence(opts, logger)
	if err != nil {
		logger.Warn("Failed to reset session", "err", err)
		return
	}
	_ = store.Delete(context.Background(), opts.SessionID)
}
