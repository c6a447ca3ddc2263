package state

import (
	"path/filepath"
	"testing"
	"time"
)

// setupTestManager opens an in-memory store with a controllable clock.
func setupTestManager(t *testing.T, opts ...Option) (*Manager, *time.Time) {
	t.Helper()

	now := time.Unix(1_700_000_000, 0)
	opts = append([]Option{WithClock(func() time.Time { return now })}, opts...)

	m, err := OpenPath(":memory:", opts...)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m, &now
}

// TestGet_Empty tests reading a missing key.
func TestGet_Empty(t *testing.T) {
	m, _ := setupTestManager(t)

	v, ok, err := m.Get("lastKind")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok || v != "" {
		t.Errorf("Get on empty store = (%q, %v), want (\"\", false)", v, ok)
	}
}

// TestSetAndGet tests that the last write wins.
func TestSetAndGet(t *testing.T) {
	m, _ := setupTestManager(t)

	if err := m.Set("audio.lastId", "a1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := m.Set("audio.lastId", "a2"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, ok, err := m.Get("audio.lastId")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || v != "a2" {
		t.Errorf("Get = (%q, %v), want (\"a2\", true)", v, ok)
	}
}

// TestSetMany tests a multi-key write.
func TestSetMany(t *testing.T) {
	m, _ := setupTestManager(t)

	err := m.SetMany(map[string]string{"a": "1", "b": "2"})
	if err != nil {
		t.Fatalf("SetMany failed: %v", err)
	}

	for key, want := range map[string]string{"a": "1", "b": "2"} {
		got, ok, err := m.Get(key)
		if err != nil || !ok || got != want {
			t.Errorf("Get(%q) = (%q, %v, %v), want %q", key, got, ok, err, want)
		}
	}

	if err := m.Delete("a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := m.Get("a"); ok {
		t.Error("key still present after Delete")
	}
}

// TestSaveProgress tests per-item positions.
func TestSaveProgress(t *testing.T) {
	m, _ := setupTestManager(t)

	if _, ok, _ := m.Progress("v1"); ok {
		t.Fatal("expected no progress for unknown item")
	}

	if err := m.SaveProgress("v1", 42.5); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}
	if err := m.SaveProgress("v2", -3); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}

	pos, ok, err := m.Progress("v1")
	if err != nil || !ok || pos != 42.5 {
		t.Errorf("Progress(v1) = (%v, %v, %v), want 42.5", pos, ok, err)
	}
	pos, _, _ = m.Progress("v2")
	if pos != 0 {
		t.Errorf("negative position stored as %v, want 0", pos)
	}
}

// TestSaveProgress_EvictsOldest tests that the local tier stays bounded.
func TestSaveProgress_EvictsOldest(t *testing.T) {
	m, now := setupTestManager(t, WithMaxEntries(2))

	for _, id := range []string{"a", "b", "c"} {
		*now = now.Add(time.Second)
		if err := m.SaveProgress(id, 1); err != nil {
			t.Fatalf("SaveProgress(%s) failed: %v", id, err)
		}
	}

	n, err := m.ProgressCount()
	if err != nil {
		t.Fatalf("ProgressCount failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ProgressCount = %d, want 2", n)
	}
	if _, ok, _ := m.Progress("a"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok, _ := m.Progress("c"); !ok {
		t.Error("newest entry missing")
	}

	// Touching an old entry refreshes it.
	*now = now.Add(time.Second)
	_ = m.SaveProgress("b", 2)
	*now = now.Add(time.Second)
	_ = m.SaveProgress("d", 1)
	if _, ok, _ := m.Progress("b"); !ok {
		t.Error("recently updated entry was evicted")
	}
	if _, ok, _ := m.Progress("c"); ok {
		t.Error("least recently updated entry should have been evicted")
	}
}

// TestOpenPath_Persists tests that a file-backed store survives reopening.
func TestOpenPath_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lanshelf.db")

	m, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	if err := m.Set("volume", "0.5"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	m.Close()

	m, err = OpenPath(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m.Close()

	v, ok, err := m.Get("volume")
	if err != nil || !ok || v != "0.5" {
		t.Errorf("Get after reopen = (%q, %v, %v), want 0.5", v, ok, err)
	}
}

// TestMock tests the in-memory double.
func TestMock(t *testing.T) {
	m := NewMock()
	_ = m.Set("k", "v")
	_ = m.SaveProgress("id", 3)

	if v, ok, _ := m.Get("k"); !ok || v != "v" {
		t.Errorf("Mock.Get = (%q, %v)", v, ok)
	}
	if p, ok, _ := m.Progress("id"); !ok || p != 3 {
		t.Errorf("Mock.Progress = (%v, %v)", p, ok)
	}

	m.SetFailing(true)
	if err := m.Set("k", "w"); err != ErrMockFailure {
		t.Errorf("Mock.Set while failing = %v, want ErrMockFailure", err)
	}
	if m.Writes() != 2 {
		t.Errorf("Writes = %d, want 2", m.Writes())
	}
}
