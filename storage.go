package entropy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Store is a string key-value store used to persist registries. Values are
// JSON documents.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// Clear removes every key.
	Clear() error
}

// MemoryStore is an in-process Store. Used as the session scope: it lives
// exactly as long as the process.
type MemoryStore struct {
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryStore) Set(key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Clear() error {
	clear(m.data)
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MemoryStore) Keys() []string {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FileStore is a Store backed by a single JSON object on disk. Every Set and
// Clear rewrites the file through a temporary file and rename.
type FileStore struct {
	path string
	data map[string]json.RawMessage
}

// OpenFileStore opens the store at path, creating parent directories. A
// missing file is an empty store.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s := &FileStore{path: path, data: make(map[string]json.RawMessage)}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return s, nil
}

// DefaultStorePath returns the durable store location under the user's
// config directory.
func DefaultStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "entropy", "positions.json"), nil
}

// Path returns the file backing the store.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(key string) ([]byte, bool, error) {
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *FileStore) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("write store: value for %q is not JSON", key)
	}
	s.data[key] = append(json.RawMessage(nil), value...)
	return s.flush()
}

func (s *FileStore) Clear() error {
	clear(s.data)
	return s.flush()
}

func (s *FileStore) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".positions-*")
	if err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}

// Persistence maps registries onto the session and durable stores.
type Persistence struct {
	session Store
	durable Store
}

// NewPersistence creates a Persistence over the two scopes.
func NewPersistence(session, durable Store) *Persistence {
	return &Persistence{session: session, durable: durable}
}

// StorageKey returns the key a canvas registry is persisted under.
func StorageKey(canvasID string, kind RegistryKind) string {
	return "entropy-particles." + canvasID + "." + kind.String()
}

func (p *Persistence) scope(t StorageType) Store {
	if t == StorageDurable {
		return p.durable
	}
	return p.session
}

// Load returns the persisted registry for the canvas, preferring the session
// scope over the durable one. The bool is false when neither has a value. A
// value that does not decode is reported as *PersistenceFormatError.
func (p *Persistence) Load(canvasID string, kind RegistryKind) ([]Point, bool, error) {
	key := StorageKey(canvasID, kind)
	for _, st := range [...]Store{p.session, p.durable} {
		if st == nil {
			continue
		}
		raw, ok, err := st.Get(key)
		if err != nil {
			return nil, false, fmt.Errorf("load %s: %w", key, err)
		}
		if !ok {
			continue
		}
		var points []Point
		if err := json.Unmarshal(raw, &points); err != nil {
			return nil, false, &PersistenceFormatError{Key: key, Err: err}
		}
		return points, true, nil
	}
	return nil, false, nil
}

// Save writes the full registry under the canvas key in the given scope.
func (p *Persistence) Save(t StorageType, canvasID string, kind RegistryKind, points []Point) error {
	st := p.scope(t)
	if st == nil {
		return nil
	}
	if points == nil {
		points = []Point{}
	}
	raw, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("save %s: %w", kind, err)
	}
	if err := st.Set(StorageKey(canvasID, kind), raw); err != nil {
		return fmt.Errorf("save %s: %w", kind, err)
	}
	return nil
}

// ClearAll clears both scopes.
func (p *Persistence) ClearAll() error {
	var errs []error
	for _, st := range [...]Store{p.session, p.durable} {
		if st == nil {
			continue
		}
		if err := st.Clear(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
