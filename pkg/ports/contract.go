package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formflow/formflow/pkg/domain"
)

// RunStateStoreContract verifies that a StateStore implementation adheres to
// the interface contract. Implementations that also satisfy SessionLister get
// their List behavior checked too.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewFormState("contract-form", domain.ByField)
		state.Values["email"] = "user@example.com"
		fields := state.Levels[domain.LevelField]
		fields.CurrentIndex = 2
		fields.CurrentID = "phone"
		state.Levels[domain.LevelField] = fields

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err)

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "contract-form", loaded.FormID)
		assert.Equal(t, domain.ByField, loaded.Behavior)
		assert.Equal(t, "user@example.com", loaded.Values["email"])
		assert.Equal(t, 2, loaded.Levels[domain.LevelField].CurrentIndex)
		assert.Equal(t, "phone", loaded.Levels[domain.LevelField].CurrentID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewFormState("contract-form", domain.ByField))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err)

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	lister, ok := store.(SessionLister)
	if !ok {
		return
	}

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewFormState("contract-form", domain.ByField))
		_ = store.Save(ctx, id2, domain.NewFormState("contract-form", domain.ByField))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := lister.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
