package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todotui/internal/app"
	"github.com/idilsaglam/todotui/internal/model"
	"github.com/idilsaglam/todotui/internal/store/snapstore"
)

func newTestModel(t *testing.T, items ...model.Item) (Model, *app.Controller, *snapstore.Store) {
	t.Helper()
	store, err := snapstore.Open(filepath.Join(t.TempDir(), "todo.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	for _, it := range items {
		if err := store.Add(it); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	ctrl := app.NewController(store, app.WithClock(clock))
	return New(ctrl), ctrl, store
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func keyOf(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

// send feeds msgs through Update and returns the final model and command.
func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestCreateThroughKeys(t *testing.T) {
	m, ctrl, store := newTestModel(t)

	m, _ = send(t, m, runes("n"))
	if !strings.Contains(m.View(), "New Todo") {
		t.Fatalf("expected creation popup, got:\n%s", m.View())
	}

	m, _ = send(t, m,
		runes("Buy milk"),
		keyOf(tea.KeyTab),
		runes("2%"),
		keyOf(tea.KeyEnter),
		runes("organic"),
		keyOf(tea.KeyCtrlS),
		keyOf(tea.KeyEsc),
	)
	if ctrl.State() != app.StateMain {
		t.Fatalf("expected main, got %v", ctrl.State())
	}
	items := store.List()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Subject != "Buy milk" || items[0].Description != "2%\norganic" {
		t.Fatalf("unexpected item %+v", items[0])
	}
	if !strings.Contains(m.View(), "Buy milk") {
		t.Fatalf("listing missing subject:\n%s", m.View())
	}
}

func TestEnterInSubjectDoesNotInsertNewline(t *testing.T) {
	m, ctrl, _ := newTestModel(t)

	send(t, m, runes("n"), runes("a"), keyOf(tea.KeyEnter), runes("b"))
	d, ok := ctrl.Draft().(*app.Creating)
	if !ok {
		t.Fatalf("expected creating draft, got %T", ctrl.Draft())
	}
	if d.Buffer.Subject != "ab" {
		t.Fatalf("subject = %q", d.Buffer.Subject)
	}
}

func TestSpaceAndBackspaceEditBuffer(t *testing.T) {
	m, ctrl, _ := newTestModel(t)

	send(t, m, runes("n"), runes("ab"), keyOf(tea.KeySpace), runes("c"), keyOf(tea.KeyBackspace))
	d := ctrl.Draft().(*app.Creating)
	if d.Buffer.Subject != "ab " {
		t.Fatalf("subject = %q", d.Buffer.Subject)
	}
}

func TestEscWithBlankDraftCreatesNothing(t *testing.T) {
	m, ctrl, store := newTestModel(t)

	send(t, m, runes("n"), keyOf(tea.KeyEsc))
	if ctrl.State() != app.StateMain || store.Len() != 0 {
		t.Fatalf("state %v, items %d", ctrl.State(), store.Len())
	}
}

func TestViewThenEditThroughKeys(t *testing.T) {
	it := model.New("Test Todo", "details", time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC))
	m, ctrl, store := newTestModel(t, it)

	m, _ = send(t, m, keyOf(tea.KeyEnter))
	if _, ok := ctrl.Draft().(*app.Viewing); !ok {
		t.Fatalf("expected viewing draft, got %T", ctrl.Draft())
	}
	if v := m.View(); !strings.Contains(v, "Todo Details") || !strings.Contains(v, "Test Todo") {
		t.Fatalf("unexpected detail view:\n%s", v)
	}

	// Runes are ignored while viewing.
	send(t, m, runes("zz"))
	if _, ok := ctrl.Draft().(*app.Viewing); !ok {
		t.Fatalf("viewing draft changed to %T", ctrl.Draft())
	}

	m, _ = send(t, m, runes("e"), runes("!"), keyOf(tea.KeyEsc))
	if ctrl.State() != app.StateMain {
		t.Fatalf("expected main, got %v", ctrl.State())
	}
	got, _ := store.Get(it.ID)
	if got.Subject != "Test Todo!" {
		t.Fatalf("subject = %q", got.Subject)
	}
	if !got.LastModifiedAt.After(it.LastModifiedAt) {
		t.Fatal("last modified did not advance")
	}
}

func TestToggleThroughKeys(t *testing.T) {
	it := model.New("Test Todo", "", time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC))
	m, _, store := newTestModel(t, it)

	send(t, m, runes("d"))
	got, _ := store.Get(it.ID)
	if !got.Completed() {
		t.Fatal("expected completed after d")
	}
	send(t, m, runes("d"))
	got, _ = store.Get(it.ID)
	if got.Completed() {
		t.Fatal("expected open after second d")
	}
}

func TestDeleteConfirmFlow(t *testing.T) {
	it := model.New("Test Todo", "", time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC))
	m, ctrl, store := newTestModel(t, it)

	m, _ = send(t, m, runes("x"))
	if ctrl.State() != app.StateConfirm {
		t.Fatalf("expected confirm, got %v", ctrl.State())
	}
	if v := m.View(); !strings.Contains(v, `Delete todo: "Test Todo"?`) {
		t.Fatalf("confirm view missing message:\n%s", v)
	}

	m, _ = send(t, m, runes("n"))
	if ctrl.State() != app.StateMain || store.Len() != 1 {
		t.Fatalf("cancel: state %v, items %d", ctrl.State(), store.Len())
	}

	send(t, m, runes("x"), runes("y"))
	if ctrl.State() != app.StateMain || store.Len() != 0 {
		t.Fatalf("confirm: state %v, items %d", ctrl.State(), store.Len())
	}
}

func TestEscDismissesConfirm(t *testing.T) {
	it := model.New("Test Todo", "", time.Now())
	m, ctrl, store := newTestModel(t, it)

	send(t, m, runes("x"), keyOf(tea.KeyEsc))
	if ctrl.State() != app.StateMain || store.Len() != 1 {
		t.Fatalf("state %v, items %d", ctrl.State(), store.Len())
	}
}

func TestNavigationKeys(t *testing.T) {
	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	m, ctrl, _ := newTestModel(t,
		model.New("a", "", base),
		model.New("b", "", base.Add(time.Minute)),
	)

	tests := []struct {
		msg  tea.KeyMsg
		want int
	}{
		{runes("j"), 1},
		{keyOf(tea.KeyDown), 0},
		{runes("k"), 1},
		{keyOf(tea.KeyUp), 0},
	}
	for _, tc := range tests {
		m, _ = send(t, m, tc.msg)
		if ctrl.Cursor() != tc.want {
			t.Fatalf("after %q cursor = %d, want %d", tc.msg.String(), ctrl.Cursor(), tc.want)
		}
	}
}

func TestQuitKeys(t *testing.T) {
	m, ctrl, _ := newTestModel(t)

	if _, cmd := send(t, m, runes("q")); !isQuit(cmd) || !ctrl.ShouldQuit() {
		t.Fatal("q on main should quit")
	}

	m, ctrl, _ = newTestModel(t)
	m, _ = send(t, m, runes("n"))
	if _, cmd := send(t, m, runes("q")); isQuit(cmd) {
		t.Fatal("q while editing must be typed, not quit")
	}
	if _, cmd := send(t, m, keyOf(tea.KeyCtrlC)); !isQuit(cmd) || !ctrl.ShouldQuit() {
		t.Fatal("ctrl+c should quit from any screen")
	}
}

func TestTickOnlyReschedules(t *testing.T) {
	it := model.New("Test Todo", "", time.Now())
	m, ctrl, _ := newTestModel(t, it)

	before := m.View()
	m, cmd := send(t, m, tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if ctrl.State() != app.StateMain || m.View() != before {
		t.Fatal("tick changed state")
	}
	if m.Init() == nil {
		t.Fatal("Init should start the tick")
	}
}

func TestWindowSizeUpdatesLayout(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.height != 40 || m.help.Width != 120 {
		t.Fatalf("size = %dx%d help %d", m.width, m.height, m.help.Width)
	}
	if got := m.popupWidth(50); got != 60 {
		t.Fatalf("popupWidth = %d", got)
	}
}

func TestEmptyListingHint(t *testing.T) {
	m, _, _ := newTestModel(t)
	if v := m.View(); !strings.Contains(v, "No todos yet") {
		t.Fatalf("expected empty hint:\n%s", v)
	}
}

func TestFirstLine(t *testing.T) {
	tests := map[string]string{
		"plain":      "plain",
		"one\ntwo":   "one…",
		"":           "",
		"trailing\n": "trailing…",
	}
	for in, want := range tests {
		if got := firstLine(in); got != want {
			t.Fatalf("firstLine(%q) = %q, want %q", in, got, want)
		}
	}
}
