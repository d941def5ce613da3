// ABOUTME: Loads and persists tracker.State as one JSON value per key.
// ABOUTME: Unreadable values fall back to defaults with a warning instead of failing.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/apex/internal/tracker"
)

// SchemaVersion is the layout version written alongside the state keys.
const SchemaVersion = 2

// KeySchemaVersion stores SchemaVersion.
const KeySchemaVersion = "schema_version"

// Snapshot persists tracker state into a Store. It implements tracker.Persister.
type Snapshot struct {
	store  Store
	logger *log.Logger
}

// NewSnapshot wraps store. A nil logger discards output.
func NewSnapshot(store Store, logger *log.Logger) *Snapshot {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Snapshot{store: store, logger: logger}
}

// Store returns the underlying store.
func (s *Snapshot) Store() Store {
	return s.store
}

// Persist writes the given keys of state.
func (s *Snapshot) Persist(state *tracker.State, keys []tracker.Key) error {
	for _, k := range keys {
		if k == tracker.KeyPending && state.Pending == nil {
			if err := s.store.Delete(string(k)); err != nil {
				return fmt.Errorf("delete %s: %w", k, err)
			}
			continue
		}
		data, err := encodeKey(state, k)
		if err != nil {
			return fmt.Errorf("encode %s: %w", k, err)
		}
		if err := s.store.Set(string(k), data); err != nil {
			return fmt.Errorf("write %s: %w", k, err)
		}
	}
	return nil
}

// PersistAll writes every key and the schema version.
func (s *Snapshot) PersistAll(state *tracker.State) error {
	if err := s.Persist(state, tracker.AllKeys); err != nil {
		return err
	}
	return s.store.Set(KeySchemaVersion, []byte(strconv.Itoa(SchemaVersion)))
}

// Load reads every key, substituting defaults for missing or unreadable
// values, then repairs the result so derived fields hold. Only store
// failures are returned as errors.
func (s *Snapshot) Load(now time.Time) (tracker.State, error) {
	st := tracker.DefaultState()
	for _, k := range tracker.AllKeys {
		data, err := s.store.Get(string(k))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return st, fmt.Errorf("read %s: %w", k, err)
		}
		if err := decodeKey(&st, k, data); err != nil {
			s.logger.Warn("unreadable stored value, using default", "key", k, "err", err)
		}
	}

	for _, fix := range Normalize(&st, now) {
		s.logger.Warn("repaired stored state", "fix", fix)
	}

	if err := s.migrate(&st); err != nil {
		return st, err
	}
	return st, nil
}

// migrate upgrades older layouts and stamps the current schema version.
func (s *Snapshot) migrate(st *tracker.State) error {
	version := 0
	if data, err := s.store.Get(KeySchemaVersion); err == nil {
		version, _ = strconv.Atoi(string(data))
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version >= SchemaVersion {
		return nil
	}

	keys, err := s.store.Keys()
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}
	if len(keys) == 0 {
		// Fresh store: nothing to rewrite until the first action.
		return nil
	}

	s.logger.Info("migrating stored state", "from", version, "to", SchemaVersion)
	return s.PersistAll(st)
}

func encodeKey(st *tracker.State, k tracker.Key) ([]byte, error) {
	switch k {
	case tracker.KeyTheme:
		return json.Marshal(st.Theme)
	case tracker.KeyHasEntered:
		return json.Marshal(st.HasEntered)
	case tracker.KeyRoutines:
		return json.Marshal(st.Routines)
	case tracker.KeyTasks:
		return json.Marshal(st.Tasks)
	case tracker.KeyXP:
		return json.Marshal(st.XP)
	case tracker.KeyPro:
		return json.Marshal(st.IsPro)
	case tracker.KeyJournal:
		return json.Marshal(st.Journal)
	case tracker.KeyChat:
		return json.Marshal(st.Chat)
	case tracker.KeyUsage:
		return json.Marshal(st.Usage)
	case tracker.KeyPending:
		return json.Marshal(st.Pending)
	}
	return nil, fmt.Errorf("unknown key %q", k)
}

func decodeKey(st *tracker.State, k tracker.Key, data []byte) error {
	switch k {
	case tracker.KeyTheme:
		var t string
		if err := json.Unmarshal(data, &t); err != nil {
			// Older layouts stored the bare word.
			t = string(data)
		}
		theme, err := tracker.ParseTheme(t)
		if err != nil {
			return err
		}
		st.Theme = theme
		return nil
	case tracker.KeyHasEntered:
		return decodeInto(data, &st.HasEntered)
	case tracker.KeyRoutines:
		return decodeInto(data, &st.Routines)
	case tracker.KeyTasks:
		return decodeInto(data, &st.Tasks)
	case tracker.KeyXP:
		return decodeInto(data, &st.XP)
	case tracker.KeyPro:
		return decodeInto(data, &st.IsPro)
	case tracker.KeyJournal:
		return decodeInto(data, &st.Journal)
	case tracker.KeyChat:
		return decodeInto(data, &st.Chat)
	case tracker.KeyUsage:
		return decodeInto(data, &st.Usage)
	case tracker.KeyPending:
		return decodeInto(data, &st.Pending)
	}
	return fmt.Errorf("unknown key %q", k)
}

// decodeInto only assigns dst when data decodes cleanly.
func decodeInto[T any](data []byte, dst *T) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*dst = v
	return nil
}
