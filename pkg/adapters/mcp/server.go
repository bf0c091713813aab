package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/ports"
	"github.com/formflow/formflow/pkg/schema"
)

// NavigateResponse is the structured result of movement tools.
type NavigateResponse struct {
	Moved bool              `json:"moved" jsonschema_description:"Whether the engine moved"`
	State *domain.FormState `json:"state" jsonschema_description:"Snapshot after the call"`
}

// Server exposes a form engine as an MCP server.
type Server struct {
	engine    ports.Engine
	form      *schema.Form
	version   string
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server over the engine. The form definition is
// exposed as a resource for client-side introspection.
func NewServer(engine ports.Engine, form *schema.Form, version string) *Server {
	s := &Server{
		engine:    engine,
		form:      form,
		version:   strings.TrimSpace(version),
		mcpServer: server.NewMCPServer("formflow-mcp", strings.TrimSpace(version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE, shutting down
// gracefully when the context is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	startTool := mcp.NewTool("start",
		mcp.WithDescription("Activate the form and make the first included unit current."),
		mcp.WithOutputSchema[NavigateResponse](),
	)
	s.mcpServer.AddTool(startTool, mcp.NewStructuredToolHandler(s.handleStart))

	navigateTool := mcp.NewTool("navigate",
		mcp.WithDescription("Move one unit forward or backward at the configured granularity."),
		mcp.WithString("direction", mcp.Required(), mcp.Description("Either 'next' or 'prev'")),
		mcp.WithOutputSchema[NavigateResponse](),
	)
	s.mcpServer.AddTool(navigateTool, mcp.NewStructuredToolHandler(s.handleNavigate))

	setInputTool := mcp.NewTool("set_input",
		mcp.WithDescription("Record a value for a named input and re-evaluate conditions."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Input name")),
		mcp.WithString("value", mcp.Required(), mcp.Description("Raw value to record")),
		mcp.WithOutputSchema[NavigateResponse](),
	)
	s.mcpServer.AddTool(setInputTool, mcp.NewStructuredToolHandler(s.handleSetInput))

	s.mcpServer.AddTool(mcp.NewTool("get_state",
		mcp.WithDescription("Get the current form state snapshot."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.engine.State())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (NavigateResponse, error) {
	if err := s.engine.Start(ctx); err != nil {
		return NavigateResponse{}, fmt.Errorf("start failed: %w", err)
	}
	return NavigateResponse{Moved: true, State: s.engine.State()}, nil
}

func (s *Server) handleNavigate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (NavigateResponse, error) {
	raw, _ := args["direction"].(string)
	dir := domain.Direction(raw)
	if dir != domain.DirectionNext && dir != domain.DirectionPrev {
		return NavigateResponse{}, fmt.Errorf("unknown direction %q", raw)
	}

	moved, err := s.engine.Navigate(ctx, dir)
	if err != nil {
		return NavigateResponse{}, fmt.Errorf("navigate failed: %w", err)
	}

	return NavigateResponse{Moved: moved, State: s.engine.State()}, nil
}

func (s *Server) handleSetInput(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (NavigateResponse, error) {
	name, _ := args["name"].(string)
	value, _ := args["value"].(string)
	if name == "" {
		return NavigateResponse{}, fmt.Errorf("missing input name")
	}

	if err := s.engine.SetInput(ctx, name, value); err != nil {
		return NavigateResponse{}, fmt.Errorf("set input failed: %w", err)
	}

	return NavigateResponse{Moved: false, State: s.engine.State()}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("formflow://form", "Form Definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.form)
		if err != nil {
			return nil, fmt.Errorf("failed to encode form definition: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "formflow://form",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
