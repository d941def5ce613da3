// ABOUTME: Data migration between apex storage backends.
// ABOUTME: Copies every stored key verbatim from source to destination.

package storage

import (
	"fmt"
	"os"
	"time"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Keys           int
	Routines       int
	Tasks          int
	JournalEntries int
}

// MigrateData copies all keys from src to dst. The destination should be
// empty before calling this function.
func MigrateData(src, dst Store) (*MigrateSummary, error) {
	keys, err := src.Keys()
	if err != nil {
		return nil, fmt.Errorf("list source keys: %w", err)
	}

	summary := &MigrateSummary{}
	for _, k := range keys {
		v, err := src.Get(k)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", k, err)
		}
		if err := dst.Set(k, v); err != nil {
			return nil, fmt.Errorf("write %s: %w", k, err)
		}
		summary.Keys++
	}

	st, err := NewSnapshot(dst, nil).Load(time.Now())
	if err != nil {
		return nil, fmt.Errorf("verify destination: %w", err)
	}
	summary.Routines = len(st.Routines)
	summary.Tasks = len(st.Tasks)
	summary.JournalEntries = len(st.Journal)
	return summary, nil
}

// IsStoreEmpty reports whether s holds no keys.
func IsStoreEmpty(s Store) (bool, error) {
	keys, err := s.Keys()
	if err != nil {
		return false, err
	}
	return len(keys) == 0, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
