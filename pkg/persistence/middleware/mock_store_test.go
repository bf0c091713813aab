package middleware_test

import (
	"context"

	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
type MockStore struct {
	data map[string]*domain.FormState
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]*domain.FormState),
	}
}

func (s *MockStore) Save(ctx context.Context, sessionID string, state *domain.FormState) error {
	s.data[sessionID] = state
	return nil
}

func (s *MockStore) Load(ctx context.Context, sessionID string) (*domain.FormState, error) {
	state, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return state, nil
}

func (s *MockStore) Delete(ctx context.Context, sessionID string) error {
	delete(s.data, sessionID)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

var _ ports.StateStore = (*MockStore)(nil)
var _ ports.SessionLister = (*MockStore)(nil)
