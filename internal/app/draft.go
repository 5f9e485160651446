package app

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/idilsaglam/todotui/internal/model"
)

// Field selects which buffer field receives text input.
type Field int

const (
	FieldSubject Field = iota
	FieldDescription
	fieldCount
)

// Buffer is the working copy of an item's editable text.
type Buffer struct {
	Subject     string
	Description string
	Field       Field
}

// Valid reports whether the subject has any non-space content.
func (b Buffer) Valid() bool {
	return strings.TrimSpace(b.Subject) != ""
}

func (b *Buffer) insert(r rune) {
	if b.Field == FieldDescription {
		b.Description += string(r)
		return
	}
	b.Subject += string(r)
}

func (b *Buffer) backspace() {
	target := &b.Subject
	if b.Field == FieldDescription {
		target = &b.Description
	}
	if *target == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(*target)
	*target = (*target)[:len(*target)-size]
}

func (b *Buffer) cycle(delta int) {
	b.Field = Field((int(b.Field) + delta + int(fieldCount)) % int(fieldCount))
}

// Draft is the detail panel content. It is one of *Viewing, *Editing or
// *Creating.
type Draft interface {
	draft()
}

// Viewing shows an item read-only.
type Viewing struct {
	Item model.Item
}

// Editing holds changes to an existing item. The timestamps are kept for
// display only.
type Editing struct {
	ID             string
	Buffer         Buffer
	CreatedAt      time.Time
	ClosedAt       *time.Time
	LastModifiedAt time.Time
}

// Creating holds a new item that has not been stored yet.
type Creating struct {
	Buffer Buffer
}

func (*Viewing) draft()  {}
func (*Editing) draft()  {}
func (*Creating) draft() {}

func editingFrom(it model.Item) *Editing {
	return &Editing{
		ID: it.ID,
		Buffer: Buffer{
			Subject:     it.Subject,
			Description: it.Description,
		},
		CreatedAt:      it.CreatedAt,
		ClosedAt:       it.ClosedAt,
		LastModifiedAt: it.LastModifiedAt,
	}
}

// buffer returns the editable buffer of d, or nil for read-only drafts.
func buffer(d Draft) *Buffer {
	switch d := d.(type) {
	case *Editing:
		return &d.Buffer
	case *Creating:
		return &d.Buffer
	default:
		return nil
	}
}
