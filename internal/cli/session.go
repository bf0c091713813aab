package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/formflow/formflow"
	"github.com/formflow/formflow/internal/presentation/graph"
	"github.com/formflow/formflow/internal/presentation/tui"
	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/session"
)

// RunSession drives one interactive form session on the terminal.
func RunSession(opts RunOptions, behavior domain.Behavior) error {
	logger := createLogger(opts.Debug)
	interactive := !opts.Headless && term.IsTerminal(int(os.Stdin.Fd()))

	if interactive {
		tui.PrintBanner(formflow.Version)
	}

	engineOpts := []formflow.Option{}
	if opts.Debug {
		engineOpts = append(engineOpts, formflow.WithLogger(logger))
	}
	if behavior != "" {
		engineOpts = append(engineOpts, formflow.WithBehavior(behavior))
	}

	engine, err := formflow.Load(opts.FormPath, engineOpts...)
	if err != nil {
		return fmt.Errorf("error loading form: %w", err)
	}
	defer engine.Destroy()

	_, manager, err := setupPersistence(opts, logger)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	if err := hydrateSession(sigCtx, engine, manager, opts.SessionID, interactive); err != nil {
		return fmt.Errorf("failed to init session: %w", err)
	}

	if err := engine.Start(sigCtx); err != nil {
		return fmt.Errorf("failed to start form: %w", err)
	}

	render := tui.NewRenderer()
	lines := readLines(sigCtx)

	for {
		if interactive {
			printCurrent(engine, render)
		}

		select {
		case <-sigCtx.Done():
			finishSession(sigCtx, engine, manager, opts, interactive)
			return handleExecutionError(sigCtx.Err())
		case line, ok := <-lines:
			if !ok {
				finishSession(sigCtx, engine, manager, opts, interactive)
				return nil
			}
			done, err := handleLine(sigCtx, engine, line, interactive)
			if err != nil {
				logger.Warn("Command failed", "err", err)
				if interactive {
					printSystemMessage("Error: %v", err)
				}
			}
			persist(sigCtx, engine, manager, opts, logger)
			if done {
				finishSession(sigCtx, engine, manager, opts, interactive)
				return nil
			}
		}
	}
}

// readLines pumps stdin lines into a channel so reads can race with
// cancellation.
func readLines(ctx context.Context) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case out <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// handleLine interprets one line of user input. It returns true when the
// session should end.
func handleLine(ctx context.Context, engine *formflow.Engine, line string, interactive bool) (bool, error) {
	line, err := SanitizeInput(line)
	if err != nil {
		return false, err
	}
	line = strings.TrimSpace(line)

	switch line {
	case "/quit", "/q", "/exit":
		return true, nil
	case "", "/next", "/n":
		moved, err := engine.Next(ctx)
		if err != nil {
			return false, err
		}
		if !moved && interactive {
			printSystemMessage("Cannot move forward: complete the current fields first.")
		}
		return false, nil
	case "/prev", "/p":
		_, err := engine.Prev(ctx)
		return false, err
	case "/state":
		data, err := json.MarshalIndent(engine.State(), "", "  ")
		if err != nil {
			return false, err
		}
		fmt.Println(string(data))
		return false, nil
	case "/graph":
		overlay := &graph.Overlay{}
		if current, ok := engine.Current(domain.LevelField); ok {
			overlay.CurrentID = current.ID
		}
		fmt.Println(graph.GenerateMermaid(engine.Form(), overlay))
		return false, nil
	}

	// "name=value" addresses an input by name; a bare value goes to the
	// current field's first input.
	if name, value, found := strings.Cut(line, "="); found {
		return false, engine.SetInput(ctx, strings.TrimSpace(name), strings.TrimSpace(value))
	}

	field, ok := engine.Current(domain.LevelField)
	if !ok {
		return false, fmt.Errorf("no current field to receive input")
	}
	inputs := engine.Inputs(field.ID)
	if len(inputs) == 0 {
		return false, fmt.Errorf("field %q has no inputs", field.ID)
	}
	return false, engine.SetInput(ctx, inputs[0].ID, line)
}

func printCurrent(engine *formflow.Engine, render func(string) (string, error)) {
	field, ok := engine.Current(domain.LevelField)
	if !ok {
		return
	}
	card, _ := engine.Current(domain.LevelCard)

	md := tui.FieldMarkdown(card, field, engine.Inputs(field.ID))
	if out, err := render(md); err == nil {
		fmt.Print(out)
	} else {
		fmt.Print(md)
	}
	fmt.Printf("[%s]\n> ", tui.StatusLine(engine.State()))
}

// hydrateSession replays a persisted session onto a fresh engine: values
// first, then movement up to the saved position.
func hydrateSession(ctx context.Context, engine *formflow.Engine, manager *session.Manager, sessionID string, interactive bool) error {
	if sessionID == "" {
		return nil
	}

	state, err := manager.LoadOrCreate(ctx, sessionID, engine.Name, engine.Behavior())
	if err != nil {
		return err
	}

	resumed := false
	for name, value := range state.Values {
		if err := engine.SetInput(ctx, name, value); err != nil {
			// Definition may have changed since the save; skip stale names.
			continue
		}
		resumed = true
	}

	level := engine.Behavior().Level()
	targetID := state.Levels[level].CurrentID
	if targetID != "" {
		if err := engine.Start(ctx); err != nil {
			return err
		}
		// Bounded walk to the saved unit.
		for i := 0; i < state.Levels[level].Total; i++ {
			current, ok := engine.Current(level)
			if ok && current.ID == targetID {
				break
			}
			if moved, err := engine.Next(ctx); err != nil || !moved {
				break
			}
		}
		resumed = true
	}

	if resumed && interactive {
		printSystemMessage("Session '%s' resumed.", sessionID)
	} else if interactive {
		printSystemMessage("Session '%s' active.", sessionID)
	}
	return nil
}

func persist(ctx context.Context, engine *formflow.Engine, manager *session.Manager, opts RunOptions, logger *slog.Logger) {
	if opts.SessionID == "" {
		return
	}
	if err := manager.Save(ctx, opts.SessionID, engine.State()); err != nil {
		logger.Warn("Failed to persist session", "err", err)
	}
}

func finishSession(ctx context.Context, engine *formflow.Engine, manager *session.Manager, opts RunOptions, interactive bool) {
	if opts.SessionID != "" {
		// Best effort final save; the session may resume later.
		_ = manager.Save(context.WithoutCancel(ctx), opts.SessionID, engine.State())
	}
	if interactive {
		fmt.Println()
		printSystemMessage("Session ended.")
	} else {
		data, err := json.Marshal(engine.State())
		if err == nil {
			fmt.Println(string(data))
		}
	}
}
