package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/formflow/formflow/pkg/domain"
)

// Metrics aggregates the engine's Prometheus collectors.
type Metrics struct {
	moves      *prometheus.CounterVec
	denials    *prometheus.CounterVec
	conditions *prometheus.CounterVec
	inputs     *prometheus.CounterVec
	publishes  prometheus.Counter
}

// NewMetrics creates unregistered collectors with the given namespace.
// Pass the result to Register, or register the collectors yourself.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "formflow"
	}
	return &Metrics{
		moves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "navigation_moves_total",
				Help:      "Completed navigation moves by direction and level.",
			},
			[]string{"direction", "level"},
		),
		denials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "navigation_denials_total",
				Help:      "Denied navigation requests by reason.",
			},
			[]string{"reason"},
		),
		conditions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "condition_evaluations_total",
				Help:      "Visibility re-evaluations by node level and outcome.",
			},
			[]string{"level", "included"},
		),
		inputs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "input_changes_total",
				Help:      "Recorded input value changes by field name.",
			},
			[]string{"name"},
		),
		publishes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "state_publishes_total",
				Help:      "State snapshots published to subscribers.",
			},
		),
	}
}

// Register registers all collectors on the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.moves, m.denials, m.conditions, m.inputs, m.publishes} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Hooks returns engine hooks that record every event on these collectors.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnNavigationChanged: func(ctx context.Context, e *domain.NavigationEvent) {
			m.moves.WithLabelValues(string(e.Direction), string(e.Target)).Inc()
		},
		OnNavigationDenied: func(ctx context.Context, e *domain.NavigationEvent) {
			m.denials.WithLabelValues(e.Reason).Inc()
		},
		OnConditionEvaluated: func(ctx context.Context, e *domain.ConditionEvent) {
			included := "false"
			if e.Included {
				included = "true"
			}
			m.conditions.WithLabelValues(string(e.NodeType), included).Inc()
		},
		OnInputChanged: func(ctx context.Context, e *domain.InputEvent) {
			m.inputs.WithLabelValues(e.Name).Inc()
		},
		OnStatePublished: func(ctx context.Context, s *domain.FormState) {
			m.publishes.Inc()
		},
	}
}
