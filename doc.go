// Package formflow implements a hierarchical form navigation engine.
//
// A form is a five-level hierarchy (card, set, group, field, input) loaded
// from a YAML definition. The engine tracks a current item per level, moves
// through included units at a configurable granularity, evaluates
// conditional visibility expressions as values change, and aggregates
// validity and progress bottom-up.
//
// Basic usage:
//
//	engine, err := formflow.Load("form.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer engine.Destroy()
//
//	ctx := context.Background()
//	engine.Start(ctx)
//	engine.SetInput(ctx, "email", "user@example.com")
//	engine.Next(ctx)
//
// State snapshots, hooks and an optional event bus expose navigation and
// condition activity to adapters such as the HTTP server, the MCP server
// and the interactive TUI.
package formflow
