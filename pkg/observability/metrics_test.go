package observability

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formflow/formflow/pkg/domain"
)

func TestMetricsHooks(t *testing.T) {
	m := NewMetrics("testns")
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	ctx := context.Background()
	hooks := m.Hooks()

	hooks.OnNavigationChanged(ctx, &domain.NavigationEvent{
		Direction: domain.DirectionNext,
		Target:    domain.LevelField,
	})
	hooks.OnNavigationChanged(ctx, &domain.NavigationEvent{
		Direction: domain.DirectionNext,
		Target:    domain.LevelField,
	})
	hooks.OnNavigationDenied(ctx, &domain.NavigationEvent{Reason: "invalid"})
	hooks.OnConditionEvaluated(ctx, &domain.ConditionEvent{
		NodeID:   "extra",
		NodeType: domain.LevelField,
		Included: true,
	})
	hooks.OnInputChanged(ctx, &domain.InputEvent{Name: "email", Value: "a@b.c"})
	hooks.OnStatePublished(ctx, domain.NewFormState("f", domain.ByField))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.moves.WithLabelValues("next", "field")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.denials.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.conditions.WithLabelValues("field", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inputs.WithLabelValues("email")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.publishes))
}

func TestMetricsRegisterTwice(t *testing.T) {
	m := NewMetrics("")
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg))
}
