package store

import (
	"testing"
)

// ============================================================
// Blob backends
// ============================================================

func TestMemoryBlobMissingKey(t *testing.T) {
	b := NewMemoryBlob()
	data, err := b.Load("nope")
	if err != nil {
		t.Fatal(err)
	}
	if data != nil {
		t.Fatalf("expected nil for missing key, got %v", data)
	}
}

func TestMemoryBlobIsolatesCallers(t *testing.T) {
	b := NewMemoryBlob()
	payload := []byte("hello")
	if err := b.Save("k", payload); err != nil {
		t.Fatal(err)
	}
	payload[0] = 'X'

	got, err := b.Load("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Fatalf("saved data aliased caller's slice: %q", got)
	}

	got[0] = 'Y'
	again, _ := b.Load("k")
	if string(again) != "hello" {
		t.Fatalf("loaded data aliased internal state: %q", again)
	}
}

func TestDiskBlobRoundTrip(t *testing.T) {
	b := NewDiskBlob(t.TempDir())

	data, err := b.Load("missing")
	if err != nil {
		t.Fatal(err)
	}
	if data != nil {
		t.Fatalf("expected nil for missing key, got %v", data)
	}

	if err := b.Save("plans", []byte(`[{"id":"p1"}]`)); err != nil {
		t.Fatal(err)
	}
	got, err := b.Load("plans")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `[{"id":"p1"}]` {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestDiskBlobSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	b := NewDiskBlob(dir)
	if err := b.Save("k", []byte("v")); err != nil {
		t.Fatal(err)
	}

	b2 := NewDiskBlob(dir)
	got, err := b2.Load("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v" {
		t.Fatalf("expected %q, got %q", "v", got)
	}
}
