package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())

	key, size, mimeType, err := store.Save(context.Background(), "user-1", "notes.txt", strings.NewReader("blood pressure 120/80"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len("blood pressure 120/80")) {
		t.Fatalf("expected size %d, got %d", len("blood pressure 120/80"), size)
	}
	if !strings.HasPrefix(mimeType, "text/plain") {
		t.Fatalf("expected text/plain mime, got %s", mimeType)
	}
	if !strings.HasSuffix(key, "_notes.txt") {
		t.Fatalf("expected timestamp-prefixed key, got %s", key)
	}

	rc, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "blood pressure 120/80" {
		t.Fatalf("round trip mismatch: %q", string(data))
	}
}

func TestSaveSameNameNeverCollides(t *testing.T) {
	store := New(t.TempDir())

	key1, _, _, err := store.Save(context.Background(), "user-1", "scan.pdf", strings.NewReader("first"))
	if err != nil {
		t.Fatalf("Save first: %v", err)
	}
	key2, _, _, err := store.Save(context.Background(), "user-1", "scan.pdf", strings.NewReader("second"))
	if err != nil {
		t.Fatalf("Save second: %v", err)
	}
	if key1 == key2 {
		t.Fatalf("expected distinct keys for same name, got %s", key1)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../secret"); err == nil {
		t.Fatal("expected traversal key to be rejected")
	}
	if _, err := store.Open(context.Background(), "/etc/passwd"); err == nil {
		t.Fatal("expected absolute key to be rejected")
	}
}
