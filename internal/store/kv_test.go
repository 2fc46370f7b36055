package store

import (
	"testing"

	"github.com/dukerupert/mealbook/internal/database"
)

func setupKVTestDB(t *testing.T) *KVStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewKVStore(db)
}

func TestKVGetAbsent(t *testing.T) {
	kv := setupKVTestDB(t)

	value, ok, err := kv.Get("missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("expected ok=false for absent key")
	}
	if value != "" {
		t.Errorf("value = %q, want empty", value)
	}
}

func TestKVSetGet(t *testing.T) {
	kv := setupKVTestDB(t)

	if err := kv.Set("members", `[{"id":"1"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, ok, err := kv.Get("members")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if value != `[{"id":"1"}]` {
		t.Errorf("value = %q", value)
	}
}

func TestKVOverwrite(t *testing.T) {
	kv := setupKVTestDB(t)

	kv.Set("admin_password", "first")
	if err := kv.Set("admin_password", "second"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	value, _, err := kv.Get("admin_password")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != "second" {
		t.Errorf("value = %q, want %q", value, "second")
	}
}

func TestKVDelete(t *testing.T) {
	kv := setupKVTestDB(t)

	kv.Set("key", "value")
	if err := kv.Delete("key"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get("key"); ok {
		t.Error("key should be gone after delete")
	}

	// Deleting an absent key is not an error.
	if err := kv.Delete("key"); err != nil {
		t.Errorf("delete absent key: %v", err)
	}
}
