package snapstore

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todotui/internal/model"
)

// Snapshot storage. The whole collection is rewritten on every mutation,
// which is O(n) per write; fine for a personal list.

// snapshot is the on-disk shape. It carries no version: a schema change
// needs a fresh file.
type snapshot struct {
	Items map[string]model.Item
}

// Store owns the canonical todo collection and keeps it in sync with a
// single snapshot file. It is not safe for concurrent use.
type Store struct {
	path   string
	items  map[string]model.Item
	logger *log.Logger
}

type Option func(*Store)

// WithLogger sets the logger used for mutation tracing.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open prepares the parent directory and loads the collection at path.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   path,
		items:  map[string]model.Item{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &PersistenceError{Op: "mkdir", Path: filepath.Dir(path), Kind: ErrWrite, Err: err}
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Len() int { return len(s.items) }

// Load replaces the in-memory collection with the file contents.
// A missing or empty file yields an empty collection.
func (s *Store) Load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.items = map[string]model.Item{}
			s.logger.Debug("no snapshot yet", "path", s.path)
			return nil
		}
		return &PersistenceError{Op: "read", Path: s.path, Kind: ErrRead, Err: err}
	}
	if len(b) == 0 {
		s.items = map[string]model.Item{}
		return nil
	}
	var snap snapshot
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&snap); err != nil {
		return &PersistenceError{Op: "decode", Path: s.path, Kind: ErrDecode, Err: err}
	}
	if snap.Items == nil {
		snap.Items = map[string]model.Item{}
	}
	s.items = snap.Items
	s.logger.Debug("snapshot loaded", "path", s.path, "items", len(s.items))
	return nil
}

// Get looks up an item by id.
func (s *Store) Get(id string) (model.Item, bool) {
	it, ok := s.items[id]
	return it, ok
}

// List returns every item in presentation order.
func (s *Store) List() []model.Item {
	out := make([]model.Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	slices.SortFunc(out, model.Compare)
	return out
}

func (s *Store) Add(it model.Item) error {
	return s.put("add", it)
}

func (s *Store) Update(it model.Item) error {
	return s.put("update", it)
}

// Delete removes id; deleting an unknown id still rewrites the file.
func (s *Store) Delete(id string) error {
	prev, had := s.items[id]
	delete(s.items, id)
	if err := s.save(); err != nil {
		if had {
			s.items[id] = prev
		}
		s.logger.Error("delete not persisted", "id", id, "err", err)
		return err
	}
	s.logger.Debug("item deleted", "id", id, "items", len(s.items))
	return nil
}

// put inserts or replaces it. On a failed save the previous in-memory value
// is restored so memory never runs ahead of disk.
func (s *Store) put(op string, it model.Item) error {
	prev, had := s.items[it.ID]
	s.items[it.ID] = it
	if err := s.save(); err != nil {
		if had {
			s.items[it.ID] = prev
		} else {
			delete(s.items, it.ID)
		}
		s.logger.Error(op+" not persisted", "id", it.ID, "err", err)
		return err
	}
	s.logger.Debug("item stored", "op", op, "id", it.ID, "items", len(s.items))
	return nil
}

// save writes a full snapshot next to the target and renames it into place.
func (s *Store) save() error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snapshot{Items: s.items}); err != nil {
		return &PersistenceError{Op: "encode", Path: s.path, Kind: ErrWrite, Err: err}
	}
	if err := writeFileAtomic(s.path, buf.Bytes()); err != nil {
		return &PersistenceError{Op: "write", Path: s.path, Kind: ErrWrite, Err: err}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
