package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todotui/internal/logging"
	"github.com/idilsaglam/todotui/internal/model"
)

// State is the screen the controller is on.
type State int

const (
	StateMain State = iota
	StateDetail
	StateConfirm
)

func (s State) String() string {
	switch s {
	case StateMain:
		return "main"
	case StateDetail:
		return "detail"
	case StateConfirm:
		return "confirm"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Confirmation is a pending delete prompt.
type Confirmation struct {
	ID      string
	Title   string
	Message string
}

// Controller interprets user intents against the current screen and applies
// them to the repository. Calls that do not apply to the current state are
// ignored.
type Controller struct {
	repo   Repository
	now    func() time.Time
	logger *log.Logger

	state   State
	cursor  int
	draft   Draft
	confirm *Confirmation
	quit    bool
	err     error
}

type Option func(*Controller)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewController starts on the main screen with the first row selected.
func NewController(repo Repository, opts ...Option) *Controller {
	c := &Controller{
		repo:   repo,
		now:    time.Now,
		logger: logging.Discard(),
		state:  StateMain,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Cursor() int { return c.cursor }

// Draft returns the detail content, nil outside the detail screen.
func (c *Controller) Draft() Draft { return c.draft }

// Confirmation returns the pending prompt, nil outside the confirm screen.
func (c *Controller) Confirmation() *Confirmation { return c.confirm }

// Err is the last persistence failure, cleared by the next handled action.
func (c *Controller) Err() error { return c.err }

func (c *Controller) ShouldQuit() bool { return c.quit }

// Listing returns the items in presentation order.
func (c *Controller) Listing() []model.Item { return c.repo.List() }

// Selected resolves the cursor against a fresh listing, so the selected item
// can change when a mutation reorders the list.
func (c *Controller) Selected() (model.Item, bool) {
	items := c.repo.List()
	if c.cursor < 0 || c.cursor >= len(items) {
		return model.Item{}, false
	}
	return items[c.cursor], true
}

func (c *Controller) SelectNext() {
	if c.state != StateMain {
		return
	}
	n := len(c.repo.List())
	if n == 0 {
		return
	}
	if c.cursor >= n-1 {
		c.cursor = 0
	} else {
		c.cursor++
	}
}

func (c *Controller) SelectPrevious() {
	if c.state != StateMain {
		return
	}
	n := len(c.repo.List())
	if n == 0 {
		return
	}
	if c.cursor <= 0 || c.cursor > n-1 {
		c.cursor = n - 1
	} else {
		c.cursor--
	}
}

// Open shows the selected item read-only.
func (c *Controller) Open() {
	if c.state != StateMain {
		return
	}
	it, ok := c.Selected()
	if !ok {
		return
	}
	c.enterDetail(&Viewing{Item: it})
}

// Edit opens the selected item for editing.
func (c *Controller) Edit() {
	if c.state != StateMain {
		return
	}
	it, ok := c.Selected()
	if !ok {
		return
	}
	c.enterDetail(editingFrom(it))
}

// New opens an empty draft.
func (c *Controller) New() {
	if c.state != StateMain {
		return
	}
	c.enterDetail(&Creating{})
}

func (c *Controller) enterDetail(d Draft) {
	c.err = nil
	c.draft = d
	c.state = StateDetail
	c.logger.Debug("detail opened", "draft", fmt.Sprintf("%T", d))
}

// Toggle flips completion of the selected item.
func (c *Controller) Toggle() error {
	if c.state != StateMain {
		return nil
	}
	it, ok := c.Selected()
	if !ok {
		return nil
	}
	c.err = nil
	it.Toggle(c.now())
	if err := c.repo.Update(it); err != nil {
		return c.fail("toggle", err)
	}
	c.logger.Info("item toggled", "id", it.ID, "completed", it.Completed())
	return nil
}

// RequestDelete asks for confirmation before deleting the selected item.
func (c *Controller) RequestDelete() {
	if c.state != StateMain {
		return
	}
	it, ok := c.Selected()
	if !ok {
		return
	}
	c.err = nil
	c.confirm = &Confirmation{
		ID:      it.ID,
		Title:   "Delete Todo",
		Message: fmt.Sprintf("Delete todo: \"%s\"?", it.Subject),
	}
	c.state = StateConfirm
}

func (c *Controller) Quit() {
	c.quit = true
}

// SwitchToEdit turns a read-only view into an edit of the same item.
func (c *Controller) SwitchToEdit() {
	v, ok := c.draft.(*Viewing)
	if c.state != StateDetail || !ok {
		return
	}
	c.draft = editingFrom(v.Item)
}

func (c *Controller) InsertRune(r rune) {
	if b := c.editBuffer(); b != nil {
		b.insert(r)
	}
}

// DeleteRune removes the last rune of the active field.
func (c *Controller) DeleteRune() {
	if b := c.editBuffer(); b != nil {
		b.backspace()
	}
}

func (c *Controller) NextField() {
	if b := c.editBuffer(); b != nil {
		b.cycle(1)
	}
}

func (c *Controller) PreviousField() {
	if b := c.editBuffer(); b != nil {
		b.cycle(-1)
	}
}

// ActiveField reports the focused field; ok is false for read-only drafts.
func (c *Controller) ActiveField() (Field, bool) {
	if b := c.editBuffer(); b != nil {
		return b.Field, true
	}
	return 0, false
}

func (c *Controller) editBuffer() *Buffer {
	if c.state != StateDetail {
		return nil
	}
	return buffer(c.draft)
}

// Save stores the draft and keeps the detail screen open. An invalid draft
// is ignored.
func (c *Controller) Save() error {
	if c.state != StateDetail {
		return nil
	}
	c.err = nil
	return c.persist()
}

// Close stores a valid draft and returns to the main screen. If storing
// fails the draft stays open so no text is lost.
func (c *Controller) Close() error {
	if c.state != StateDetail {
		return nil
	}
	c.err = nil
	if err := c.persist(); err != nil {
		return err
	}
	c.draft = nil
	c.state = StateMain
	return nil
}

func (c *Controller) persist() error {
	switch d := c.draft.(type) {
	case *Creating:
		if !d.Buffer.Valid() {
			return nil
		}
		it := model.New(d.Buffer.Subject, d.Buffer.Description, c.now())
		if err := c.repo.Add(it); err != nil {
			return c.fail("add", err)
		}
		c.logger.Info("item created", "id", it.ID)
		// Later saves must update the stored item, not add another one.
		e := editingFrom(it)
		e.Buffer.Field = d.Buffer.Field
		c.draft = e
	case *Editing:
		if !d.Buffer.Valid() {
			return nil
		}
		it, ok := c.repo.Get(d.ID)
		if !ok {
			c.logger.Warn("edited item no longer exists", "id", d.ID)
			return nil
		}
		it.Update(d.Buffer.Subject, d.Buffer.Description, c.now())
		if err := c.repo.Update(it); err != nil {
			return c.fail("update", err)
		}
		d.LastModifiedAt = it.LastModifiedAt
		d.ClosedAt = it.ClosedAt
		c.logger.Info("item updated", "id", it.ID)
	}
	return nil
}

// ConfirmYes deletes the item captured by RequestDelete.
func (c *Controller) ConfirmYes() error {
	if c.state != StateConfirm || c.confirm == nil {
		return nil
	}
	c.err = nil
	id := c.confirm.ID
	if err := c.repo.Delete(id); err != nil {
		return c.fail("delete", err)
	}
	c.logger.Info("item deleted", "id", id)
	c.closeConfirm()
	if n := len(c.repo.List()); c.cursor >= n {
		c.cursor = max(n-1, 0)
	}
	return nil
}

// ConfirmNo dismisses the prompt without deleting.
func (c *Controller) ConfirmNo() {
	if c.state != StateConfirm {
		return
	}
	c.err = nil
	c.closeConfirm()
}

func (c *Controller) closeConfirm() {
	c.confirm = nil
	c.state = StateMain
}

func (c *Controller) fail(op string, err error) error {
	c.err = fmt.Errorf("%s: %w", op, err)
	c.logger.Error("mutation failed", "op", op, "state", c.state, "err", err)
	return c.err
}
