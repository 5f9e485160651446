package model

import (
	"slices"
	"testing"
	"time"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestNewItem(t *testing.T) {
	it := New("Buy milk", "two liters", t0)
	if it.ID == "" {
		t.Fatal("expected generated id")
	}
	if it.Subject != "Buy milk" || it.Description != "two liters" {
		t.Fatalf("unexpected fields %#v", it)
	}
	if it.Completed() || it.ClosedAt != nil {
		t.Fatal("new item must be open")
	}
	if !it.CreatedAt.Equal(it.LastModifiedAt) {
		t.Fatalf("created %v != modified %v", it.CreatedAt, it.LastModifiedAt)
	}
	if other := New("Buy milk", "", t0); other.ID == it.ID {
		t.Fatal("ids must be unique")
	}
}

func TestToggleTwiceRestoresStatus(t *testing.T) {
	it := New("Test", "", t0)
	first := t0.Add(time.Minute)
	it.Toggle(first)
	if !it.Completed() {
		t.Fatal("expected completed after first toggle")
	}
	if !it.ClosedAt.Equal(first) || !it.LastModifiedAt.Equal(first) {
		t.Fatalf("unexpected timestamps closed=%v modified=%v", it.ClosedAt, it.LastModifiedAt)
	}
	second := first.Add(time.Minute)
	it.Toggle(second)
	if it.Completed() {
		t.Fatal("expected open after second toggle")
	}
	if !it.LastModifiedAt.Equal(second) {
		t.Fatalf("unexpected modified %v", it.LastModifiedAt)
	}
	if !it.CreatedAt.Equal(t0) {
		t.Fatalf("created changed to %v", it.CreatedAt)
	}
}

func TestToggleStrictlyBumpsWithStalledClock(t *testing.T) {
	it := New("Test", "", t0)
	prev := it.LastModifiedAt
	for i := 0; i < 3; i++ {
		it.Toggle(t0)
		if !it.LastModifiedAt.After(prev) {
			t.Fatalf("toggle %d: modified %v not after %v", i, it.LastModifiedAt, prev)
		}
		prev = it.LastModifiedAt
	}
	if !it.Completed() {
		t.Fatal("three toggles should leave the item completed")
	}
}

func TestUpdate(t *testing.T) {
	it := New("Original", "Original Description", t0)
	later := t0.Add(time.Second)
	it.Update("Updated", "Updated Description", later)
	if it.Subject != "Updated" || it.Description != "Updated Description" {
		t.Fatalf("unexpected fields %#v", it)
	}
	if !it.LastModifiedAt.Equal(later) || !it.CreatedAt.Equal(t0) {
		t.Fatalf("unexpected timestamps %#v", it)
	}
}

func TestCompareOrdering(t *testing.T) {
	active1 := New("Active 1", "", t0)
	active2 := New("Active 2", "", t0.Add(time.Hour))
	done := New("Done", "", t0)
	done.Toggle(t0.Add(-time.Hour))

	items := []Item{done, active2, active1}
	slices.SortFunc(items, Compare)

	if items[0].ID != active1.ID || items[1].ID != active2.ID || items[2].ID != done.ID {
		t.Fatalf("unexpected order %q %q %q", items[0].Subject, items[1].Subject, items[2].Subject)
	}
}

func TestCompareTieBreaksByID(t *testing.T) {
	a := Item{ID: "a", LastModifiedAt: t0}
	b := Item{ID: "b", LastModifiedAt: t0}
	if Compare(a, b) >= 0 || Compare(b, a) <= 0 {
		t.Fatal("expected id tie-break")
	}
	if Compare(a, a) != 0 {
		t.Fatal("item must compare equal to itself")
	}
}

func TestStats(t *testing.T) {
	open := New("open", "", t0)
	closed := New("closed", "", t0)
	closed.Toggle(t0.Add(time.Second))
	done, pending := Stats([]Item{open, closed, open})
	if done != 1 || pending != 2 {
		t.Fatalf("unexpected stats done=%d pending=%d", done, pending)
	}
}
