package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/persistence/middleware"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := NewMockStore()
	key := generateKey(t)
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	sessionID := "test-session"
	originalState := domain.NewFormState("signup", domain.ByField)
	originalState.Values["ssn"] = "999-99-9999"
	originalState.Levels[domain.LevelField] = domain.LevelState{CurrentIndex: 2, CurrentID: "ssn", Total: 5}

	// 1. Save
	if err := secureStore.Save(ctx, sessionID, originalState); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. Verify underlying store directly (should be opaque)
	storedState, err := underlyingStore.Load(ctx, sessionID)
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if val, ok := storedState.Values["ssn"]; ok {
		t.Fatalf("Expected answer to be hidden, found: %v", val)
	}
	if _, ok := storedState.Values["__encrypted__"]; !ok {
		t.Fatal("Expected __encrypted__ slot in values")
	}
	if len(storedState.Levels) != 0 {
		t.Errorf("Expected navigation positions to be hidden, got %d levels", len(storedState.Levels))
	}
	if storedState.FormID != "signup" {
		t.Errorf("Expected form ID to stay visible, got %q", storedState.FormID)
	}

	// 3. Load via middleware (should be decrypted)
	loadedState, err := secureStore.Load(ctx, sessionID)
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if loadedState.Values["ssn"] != "999-99-9999" {
		t.Errorf("Expected '999-99-9999', got %v", loadedState.Values["ssn"])
	}
	if loadedState.Levels[domain.LevelField].CurrentID != "ssn" {
		t.Errorf("Expected field position to survive the roundtrip, got %+v", loadedState.Levels[domain.LevelField])
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := NewMockStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	mwOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})
	secureStoreOld := mwOld(underlyingStore)

	ctx := context.Background()
	sessionID := "rotation-session"
	originalState := domain.NewFormState("signup", domain.ByField)
	originalState.Values["email"] = "encrypted-with-old-key"

	// 1. Save with OLD key
	if err := secureStoreOld.Save(ctx, sessionID, originalState); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. Load with NEW key (active) + OLD key (fallback)
	mwNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	secureStoreNew := mwNew(underlyingStore)

	loadedState, err := secureStoreNew.Load(ctx, sessionID)
	if err != nil {
		t.Fatalf("Load with rotated key failed: %v", err)
	}
	if loadedState.Values["email"] != "encrypted-with-old-key" {
		t.Error("Decryption with fallback key failed")
	}

	// 3. Save again (now encrypted with NEW key)
	loadedState.Values["email"] = "encrypted-with-new-key"
	if err := secureStoreNew.Save(ctx, sessionID, loadedState); err != nil {
		t.Fatalf("Save with new key failed: %v", err)
	}

	// 4. Verify we CANNOT load with just the OLD key anymore
	if _, err := secureStoreOld.Load(ctx, sessionID); err == nil {
		t.Error("Expected failure when loading new-key encryption with old-key middleware")
	}
}

func TestEncryptionMiddleware_MissingEnvelope(t *testing.T) {
	underlyingStore := NewMockStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	plain := domain.NewFormState("signup", domain.ByField)
	if err := underlyingStore.Save(ctx, "plain-session", plain); err != nil {
		t.Fatal(err)
	}

	if _, err := secureStore.Load(ctx, "plain-session"); err == nil {
		t.Error("Expected fail-secure error for unencrypted snapshot")
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for invalid key size")
		}
	}()
	middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
}
