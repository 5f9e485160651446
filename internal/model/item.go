package model

import (
	"cmp"
	"time"

	"github.com/google/uuid"
)

// Item is the domain model for a todo entry.
// Completion is derived from ClosedAt; there is no separate flag.
type Item struct {
	ID             string     `json:"id"`
	Subject        string     `json:"subject"`
	Description    string     `json:"description"`
	CreatedAt      time.Time  `json:"created_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
	LastModifiedAt time.Time  `json:"last_modified_at"`
}

// New builds an open item with a fresh identifier.
func New(subject, description string, now time.Time) Item {
	return Item{
		ID:             uuid.NewString(),
		Subject:        subject,
		Description:    description,
		CreatedAt:      now,
		LastModifiedAt: now,
	}
}

func (it Item) Completed() bool { return it.ClosedAt != nil }

// Toggle flips completion and always bumps LastModifiedAt.
func (it *Item) Toggle(now time.Time) {
	now = it.touch(now)
	if it.Completed() {
		it.ClosedAt = nil
		return
	}
	closed := now
	it.ClosedAt = &closed
}

// Update replaces the editable text fields.
func (it *Item) Update(subject, description string, now time.Time) {
	it.Subject = subject
	it.Description = description
	it.touch(now)
}

// touch moves LastModifiedAt strictly forward, even when the clock did not.
func (it *Item) touch(now time.Time) time.Time {
	if !now.After(it.LastModifiedAt) {
		now = it.LastModifiedAt.Add(time.Nanosecond)
	}
	it.LastModifiedAt = now
	return now
}

// Compare orders items for presentation: open items first, then oldest
// modification first. ID breaks ties so the order is total.
func Compare(a, b Item) int {
	if a.Completed() != b.Completed() {
		if a.Completed() {
			return 1
		}
		return -1
	}
	if c := a.LastModifiedAt.Compare(b.LastModifiedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Stats counts done and pending items.
func Stats(items []Item) (done, pending int) {
	for _, it := range items {
		if it.Completed() {
			done++
		} else {
			pending++
		}
	}
	return
}
