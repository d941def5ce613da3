// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Covers sqlite-to-badger and badger-to-sqlite copies.
package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/apex/internal/tracker"
)

func populate(t *testing.T, s Store) {
	t.Helper()
	st := sampleState()
	if err := NewSnapshot(s, nil).PersistAll(&st); err != nil {
		t.Fatalf("PersistAll failed: %v", err)
	}
}

func TestMigrateDataSQLiteToBadger(t *testing.T) {
	src := setupTestDB(t)
	populate(t, src)
	dst := setupBadger(t)

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Routines != 3 {
		t.Errorf("Expected 3 routines, got %d", summary.Routines)
	}
	if summary.Tasks != 1 {
		t.Errorf("Expected 1 task, got %d", summary.Tasks)
	}
	if summary.JournalEntries != 1 {
		t.Errorf("Expected 1 journal entry, got %d", summary.JournalEntries)
	}
	srcKeys, _ := src.Keys()
	if summary.Keys != len(srcKeys) {
		t.Errorf("Expected %d keys, got %d", len(srcKeys), summary.Keys)
	}
}

func TestMigrateRoundTrip(t *testing.T) {
	src := NewMemoryStore()
	populate(t, src)
	mid := setupBadger(t)
	if _, err := MigrateData(src, mid); err != nil {
		t.Fatalf("first migration failed: %v", err)
	}
	dst := setupTestDB(t)
	if _, err := MigrateData(mid, dst); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}

	st, err := NewSnapshot(dst, nil).Load(time.Now())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st.XP != 250 || st.Theme != tracker.ThemeDark {
		t.Errorf("unexpected state after round trip: xp=%d theme=%s", st.XP, st.Theme)
	}
}

func TestIsStoreEmpty(t *testing.T) {
	s := NewMemoryStore()
	empty, err := IsStoreEmpty(s)
	if err != nil || !empty {
		t.Fatalf("expected empty store, got %v (%v)", empty, err)
	}
	_ = s.Set("xp", []byte("1"))
	if empty, _ := IsStoreEmpty(s); empty {
		t.Error("expected non-empty store")
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	dir := t.TempDir()
	if nonEmpty, err := IsDirNonEmpty(filepath.Join(dir, "missing")); err != nil || nonEmpty {
		t.Errorf("missing dir: got %v, %v", nonEmpty, err)
	}
	if nonEmpty, _ := IsDirNonEmpty(dir); nonEmpty {
		t.Error("empty dir reported non-empty")
	}
	_ = os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0600)
	if nonEmpty, _ := IsDirNonEmpty(dir); !nonEmpty {
		t.Error("dir with file reported empty")
	}
}
