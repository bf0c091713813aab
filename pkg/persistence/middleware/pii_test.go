package middleware_test

import (
	"context"
	"testing"

	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/persistence/middleware"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	underlyingStore := NewMockStore()
	// Mask inputs whose name contains "password" or "ssn"
	mw := middleware.NewPIIMiddleware([]string{"password", "ssn"})
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	sessionID := "pii-session"
	state := domain.NewFormState("signup", domain.ByField)
	state.Values["username"] = "jdoe"
	state.Values["user_password"] = "secret123"
	state.Values["ssn_number"] = "999-99-9999"
	state.Values["city"] = "public"

	// 1. Save
	if err := secureStore.Save(ctx, sessionID, state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The live snapshot must not be modified
	if state.Values["user_password"] != "secret123" {
		t.Error("Middleware modified original state in memory!")
	}

	// 2. Load from underlying store (should be masked)
	storedState, err := underlyingStore.Load(ctx, sessionID)
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}

	if storedState.Values["username"] != "jdoe" {
		t.Error("Username shouldn't be masked")
	}
	if storedState.Values["city"] != "public" {
		t.Error("City shouldn't be masked")
	}
	if storedState.Values["user_password"] != "***" {
		t.Errorf("Password should be masked, got: %v", storedState.Values["user_password"])
	}
	if storedState.Values["ssn_number"] != "***" {
		t.Errorf("SSN should be masked, got: %v", storedState.Values["ssn_number"])
	}
}

func TestMiddleware_Chain(t *testing.T) {
	underlyingStore := NewMockStore()
	key := generateKey(t)
	store := middleware.Chain(underlyingStore,
		middleware.NewPIIMiddleware([]string{"password"}),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}),
	)

	ctx := context.Background()
	state := domain.NewFormState("signup", domain.ByField)
	state.Values["user_password"] = "secret123"
	state.Values["username"] = "jdoe"

	if err := store.Save(ctx, "chained", state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, "chained")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Values["user_password"] != "***" {
		t.Errorf("Expected masked password inside the envelope, got %v", loaded.Values["user_password"])
	}
	if loaded.Values["username"] != "jdoe" {
		t.Errorf("Expected username to survive, got %v", loaded.Values["username"])
	}
}
