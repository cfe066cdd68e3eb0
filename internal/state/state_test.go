package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMarkAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if s.IsNotified("new orleans", "new orleans, la") {
		t.Fatal("fresh store should have no pairs")
	}
	if err := s.MarkNotified("new orleans", "new orleans, la"); err != nil {
		t.Fatalf("MarkNotified error: %v", err)
	}
	if !s.IsNotified("new orleans", "new orleans, la") {
		t.Fatal("pair should be notified after mark")
	}
	if s.IsNotified("new orleans", "metairie") {
		t.Fatal("different city key must not be notified")
	}
}

func TestMarkIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := s.MarkNotified("t1", "c1"); err != nil {
			t.Fatalf("MarkNotified error on call %d: %v", i, err)
		}
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 pair, got %d", s.Len())
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	_ = s.MarkNotified("t1", "c1")
	_ = s.MarkNotified("t2", "c2")

	s2, err := Load(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if !s2.IsNotified("t1", "c1") || !s2.IsNotified("t2", "c2") {
		t.Fatal("pairs lost across reload")
	}
	if s2.Len() != 2 {
		t.Fatalf("expected 2 pairs after reload, got %d", s2.Len())
	}
}

func TestIgnoreHistoryDoesNotTouchPersistedState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	_ = s.MarkNotified("t1", "c1")

	s.IgnoreHistory()
	if s.IsNotified("t1", "c1") {
		t.Fatal("override active: IsNotified must answer false")
	}
	// Marks during an override still persist.
	if err := s.MarkNotified("t2", "c2"); err != nil {
		t.Fatalf("MarkNotified error: %v", err)
	}

	s2, err := Load(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if !s2.IsNotified("t1", "c1") {
		t.Fatal("override must not erase history")
	}
	if !s2.IsNotified("t2", "c2") {
		t.Fatal("marks made under the override must persist")
	}
}

func TestMissingFileIsEmptyStore(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d pairs", s.Len())
	}
}

func TestCorruptFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("]["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for corrupt state file")
	}
}
