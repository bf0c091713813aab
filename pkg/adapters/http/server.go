package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/ports"
)

// Server exposes a form engine over HTTP.
type Server struct {
	engine  ports.Engine
	streams *StreamManager
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithEventBus streams engine events to SSE subscribers.
func WithEventBus(bus ports.EventBus) Option {
	return func(s *Server) {
		for _, topic := range []domain.EventType{
			domain.EventNavigationChanged,
			domain.EventNavigationDenied,
			domain.EventConditionEvaluated,
			domain.EventInputChanged,
		} {
			bus.Subscribe(string(topic), func(ctx context.Context, payload any) {
				data, err := json.Marshal(payload)
				if err != nil {
					s.logger.Warn("SSE: failed to encode event", "err", err)
					return
				}
				s.streams.Broadcast(string(data))
			})
		}
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine ports.Engine, opts ...Option) http.Handler {
	server := &Server{
		engine:  engine,
		streams: NewStreamManager(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/health", server.getHealth)
	r.Get("/state", server.getState)
	r.Post("/start", server.postStart)
	r.Post("/navigate", server.postNavigate)
	r.Post("/input", server.postInput)
	r.Get("/events", server.subscribeEvents)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.engine.State())
}

func (s *Server) postStart(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Start(r.Context()); err != nil {
		s.logger.Error("Start failed", "err", err)
		http.Error(w, fmt.Sprintf("start error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, s.engine.State())
}

type navigateRequest struct {
	Direction string `json:"direction"`
}

type navigateResponse struct {
	Moved bool              `json:"moved"`
	State *domain.FormState `json:"state"`
}

func (s *Server) postNavigate(w http.ResponseWriter, r *http.Request) {
	var body navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("Navigate: invalid request body", "err", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	dir := domain.Direction(body.Direction)
	if dir != domain.DirectionNext && dir != domain.DirectionPrev {
		http.Error(w, fmt.Sprintf("unknown direction %q", body.Direction), http.StatusBadRequest)
		return
	}

	moved, err := s.engine.Navigate(r.Context(), dir)
	if err != nil {
		s.logger.Error("Navigate failed", "err", err)
		http.Error(w, fmt.Sprintf("navigate error: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, navigateResponse{Moved: moved, State: s.engine.State()})
}

type inputRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (s *Server) postInput(w http.ResponseWriter, r *http.Request) {
	var body inputRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("Input: invalid request body", "err", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if body.Name == "" {
		http.Error(w, "missing input name", http.StatusBadRequest)
		return
	}

	if err := s.engine.SetInput(r.Context(), body.Name, body.Value); err != nil {
		if err == domain.ErrItemNotFound {
			http.Error(w, fmt.Sprintf("unknown input %q", body.Name), http.StatusNotFound)
			return
		}
		s.logger.Error("SetInput failed", "err", err, "name", body.Name)
		http.Error(w, fmt.Sprintf("input error: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, s.engine.State())
}

// subscribeEvents streams engine events as SSE.
func (s *Server) subscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.logger.Error("SSE: streaming not supported")
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("response encode failed", "err", err)
	}
}
