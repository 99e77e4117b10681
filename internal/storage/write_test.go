package storage

import (
	"errors"
	"path/filepath"
	"testing"

	apperrors "github.com/julianstephens/streakly/internal/errors"
)

func TestWriteAllSequential(t *testing.T) {
	store := NewMemoryStore()
	err := WriteAll(store, map[string][]byte{
		"a": []byte(`1`),
		"b": []byte(`2`),
	})
	if err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}

	for key, want := range map[string]string{"a": "1", "b": "2"} {
		got, err := store.Get(key)
		if err != nil || string(got) != want {
			t.Errorf("Get(%q) = %q, %v; want %q", key, got, err, want)
		}
	}
}

func TestWriteAllRollsBack(t *testing.T) {
	mem := NewMemoryStore()
	_ = mem.Put("a", []byte(`"old-a"`))
	store := &flakyStore{MemoryStore: mem, failKey: "c"}

	err := WriteAll(store, map[string][]byte{
		"a": []byte(`"new-a"`),
		"b": []byte(`"new-b"`),
		"c": []byte(`"new-c"`),
	})
	if !errors.Is(err, apperrors.ErrStorageFailure) {
		t.Fatalf("expected storage failure, got %v", err)
	}

	var se *apperrors.StorageError
	if !errors.As(err, &se) || se.Key != "c" {
		t.Errorf("expected failure on key c, got %v", err)
	}

	got, _ := mem.Get("a")
	if string(got) != `"old-a"` {
		t.Errorf("a = %s, want restored value", got)
	}
	if _, err := mem.Get("b"); !errors.Is(err, ErrNoDocument) {
		t.Errorf("b should have been removed by rollback, got %v", err)
	}
}

func TestWriteAllUsesBatch(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "streakly.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	err := WriteAll(store, map[string][]byte{"a": []byte(`1`), "b": []byte(`2`)})
	if err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	keys, _ := store.Keys()
	if len(keys) != 2 {
		t.Errorf("Keys() = %v, want 2 keys", keys)
	}
}
