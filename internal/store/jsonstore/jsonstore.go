package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/idilsaglam/todotui/internal/model"
)

// JSON export format. Human-readable, portable, one array of items.
// Used by `todo export` / `todo import`; the live store is snapstore.

// Encode writes items as an indented JSON array.
func Encode(w io.Writer, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Decode reads a JSON array of items and rejects entries without id or subject.
func Decode(r io.Reader) ([]model.Item, error) {
	var items []model.Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	for i, it := range items {
		if strings.TrimSpace(it.ID) == "" {
			return nil, fmt.Errorf("item %d: missing id", i)
		}
		if strings.TrimSpace(it.Subject) == "" {
			return nil, fmt.Errorf("item %d: missing subject", i)
		}
		if it.LastModifiedAt.Before(it.CreatedAt) {
			items[i].LastModifiedAt = it.CreatedAt
		}
	}
	return items, nil
}

// Load reads an export file. A missing file yields no items.
func Load(path string) ([]model.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Item{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Save writes items to path, replacing any previous export.
func Save(path string, items []model.Item) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := Encode(f, items); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
