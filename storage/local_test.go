package storage

import (
	"testing"
)

func TestLocalProviderRoundTrip(t *testing.T) {
	provider := NewLocalProvider(t.TempDir())

	if err := provider.Put("lists/abc.json", []byte(`{"id":"abc"}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, err := provider.Get("lists/abc.json")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != `{"id":"abc"}` {
		t.Errorf("unexpected data %q", data)
	}

	exists, err := provider.Exists("lists/abc.json")
	if err != nil || !exists {
		t.Errorf("expected key to exist, got %v, %v", exists, err)
	}
}

func TestLocalProviderGetMissing(t *testing.T) {
	provider := NewLocalProvider(t.TempDir())

	if _, err := provider.Get("nope.json"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	exists, err := provider.Exists("nope.json")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected missing key to not exist")
	}
}

func TestLocalProviderDeleteIdempotent(t *testing.T) {
	provider := NewLocalProvider(t.TempDir())

	if err := provider.Put("doc.json", []byte("{}")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := provider.Delete("doc.json"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := provider.Delete("doc.json"); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
}

func TestLocalProviderList(t *testing.T) {
	provider := NewLocalProvider(t.TempDir())

	for _, key := range []string{"lists/a.json", "lists/b.json", "library/lib.json"} {
		if err := provider.Put(key, []byte("{}")); err != nil {
			t.Fatalf("Put %s failed: %v", key, err)
		}
	}

	keys, err := provider.List("lists/")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("expected 2 keys under lists/, got %v", keys)
	}
}
