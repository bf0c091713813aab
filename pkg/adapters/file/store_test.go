package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/formflow/formflow/pkg/adapters/file"
	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/ports"
)

var _ ports.StateStore = (*file.Store)(nil)
var _ ports.SessionLister = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ports.RunStateStoreContract(t, store)
}

func TestFileStore_DeleteNonExistent(t *testing.T) {
	store := file.NewStore(t.TempDir())

	// Idempotent: deleting a missing session is not an error.
	if err := store.Delete(context.Background(), "ghost-session"); err != nil {
		t.Errorf("Delete of non-existent session should not fail, got %v", err)
	}
}

func TestFileStore_ListIgnoresGarbage(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	ids := []string{"s1", "s2", "s3"}
	for _, id := range ids {
		if err := store.Save(ctx, id, domain.NewFormState("f", domain.ByField)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	garbagePath := filepath.Join(dir, "garbage.txt")
	if err := os.WriteFile(garbagePath, []byte("garbage"), 0644); err != nil {
		t.Fatalf("failed to create garbage file: %v", err)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != len(ids) {
		t.Errorf("expected %d sessions, got %d", len(ids), len(list))
	}

	mapped := make(map[string]bool)
	for _, id := range list {
		mapped[id] = true
	}
	for _, id := range ids {
		if !mapped[id] {
			t.Errorf("expected session %s in list", id)
		}
	}
}

func TestFileStore_EmptySessionID(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	if err := store.Save(ctx, "", domain.NewFormState("f", domain.ByField)); err == nil {
		t.Error("Save with empty sessionID should fail")
	}
	if _, err := store.Load(ctx, ""); err == nil {
		t.Error("Load with empty sessionID should fail")
	}
}
