package jsonstore

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/idilsaglam/todotui/internal/model"
)

func TestSaveLoad(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	done := model.New("done", "", now)
	done.Toggle(now.Add(time.Minute))
	items := []model.Item{model.New("open", "desc", now), done}

	path := filepath.Join(t.TempDir(), "export.json")
	if err := Save(path, items); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].ID != items[0].ID || got[0].Description != "desc" || got[0].Completed() {
		t.Fatalf("unexpected first item %#v", got[0])
	}
	if !got[1].Completed() || !got[1].ClosedAt.Equal(*done.ClosedAt) {
		t.Fatalf("unexpected second item %#v", got[1])
	}
}

func TestLoadMissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no items, got %d", len(got))
	}
}

func TestEncodeNilIsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, nil); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestDecodeRejectsInvalidItems(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "malformed", in: `{`},
		{name: "missing id", in: `[{"subject":"x"}]`},
		{name: "blank subject", in: `[{"id":"a","subject":"  "}]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tc.in)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
